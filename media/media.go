// Package media models the source files of a slideshow: their classification,
// the ordinal embedded in their names, and the deterministic assembly order
// produced from a directory scan.
package media

import "path/filepath"

// Kind classifies a discovered file by how it is rendered.
type Kind int8

const (
	// Other marks a file outside the recognized classes. Discovery never
	// emits it; the pairing rule tolerates it without crashing.
	Other Kind = iota
	Image
	Video
)

// String returns the lowercase identifier of the kind.
func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	default:
		return "other"
	}
}

// Item is a single entry of the assembly order. Suppression flags are set
// exclusively by the pairing rule: a video paired with a same-ordinal image
// keeps its fade-in but loses its fade-out, and the image the reverse, so the
// two play as one continuous shot.
type Item struct {
	Path            string
	Kind            Kind
	Ordinal         int
	SuppressFadeIn  bool
	SuppressFadeOut bool
}

// Name returns the base filename of the item.
func (i Item) Name() string {
	return filepath.Base(i.Path)
}
