package media

import (
	"path/filepath"

	"github.com/fadeshow-cli/fadeshow/filesystem"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// DiscoverOptions narrows a directory scan.
type DiscoverOptions struct {
	// ExcludeOutput drops any file whose name equals this path's base name,
	// so a previous run's result is never re-ingested.
	ExcludeOutput string

	// ExcludeGlobs drops files whose name matches any of the patterns.
	ExcludeGlobs []string

	// Filter keeps only files fuzzy-matching the given term.
	Filter string
}

// classify maps a filename to its kind. Extensions are matched exactly, so
// uppercase variants like "IMG.PNG" are not picked up.
func classify(name string) Kind {
	switch filepath.Ext(name) {
	case ".png":
		return Image
	case ".mp4", ".mov":
		return Video
	default:
		return Other
	}
}

// Discover scans a directory and returns the assembly order: recognized files
// grouped by ordinal, groups ascending, each group resolved by the pairing
// rule. An empty directory yields an empty order and no error.
func Discover(dir string, options DiscoverOptions) ([]Item, error) {
	infos, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	excludeName := filepath.Base(options.ExcludeOutput)

	var candidates []Item
	for _, info := range infos {
		if info.IsDir() {
			continue
		}

		name := info.Name()
		kind := classify(name)
		if kind == Other {
			continue
		}
		if options.ExcludeOutput != "" && name == excludeName {
			continue
		}
		if matchesAny(name, options.ExcludeGlobs) {
			continue
		}
		if options.Filter != "" && !fuzzy.MatchFold(options.Filter, name) {
			continue
		}

		candidates = append(candidates, Item{
			Path:    filepath.Join(dir, name),
			Kind:    kind,
			Ordinal: ExtractOrdinal(name),
		})
	}

	groups := lo.GroupBy(candidates, func(item Item) int { return item.Ordinal })
	ordinals := lo.Keys(groups)
	slices.Sort(ordinals)

	items := make([]Item, 0, len(candidates))
	for _, ordinal := range ordinals {
		items = append(items, resolveGroup(groups[ordinal])...)
	}
	return items, nil
}

// resolveGroup orders a single ordinal group. When the group holds both
// videos and images, the videos come first with their fade-out suppressed and
// the images follow with their fade-in suppressed; any other composition is
// emitted as videos, images, others with no suppression. Directory listings
// arrive sorted, so same-kind siblings keep a stable filename order.
func resolveGroup(group []Item) []Item {
	videos := lo.Filter(group, func(item Item, _ int) bool { return item.Kind == Video })
	images := lo.Filter(group, func(item Item, _ int) bool { return item.Kind == Image })
	others := lo.Filter(group, func(item Item, _ int) bool { return item.Kind == Other })

	resolved := make([]Item, 0, len(group))
	if len(videos) > 0 && len(images) > 0 {
		for _, video := range videos {
			video.SuppressFadeOut = true
			resolved = append(resolved, video)
		}
		for _, image := range images {
			image.SuppressFadeIn = true
			resolved = append(resolved, image)
		}
		return append(resolved, others...)
	}

	resolved = append(resolved, videos...)
	resolved = append(resolved, images...)
	return append(resolved, others...)
}

func matchesAny(name string, globs []string) bool {
	for _, glob := range globs {
		if matched, err := filepath.Match(glob, name); err == nil && matched {
			return true
		}
	}
	return false
}

// FindMusic locates the soundtrack for a directory: the first *.mp3 in the
// directory itself, then in its media subdirectory. Listings arrive sorted,
// so several candidates always resolve to the same file.
func FindMusic(dir string) mo.Option[string] {
	for _, searchDir := range []string{dir, filepath.Join(dir, "media")} {
		infos, err := filesystem.API().ReadDir(searchDir)
		if err != nil {
			continue
		}

		for _, info := range infos {
			if info.IsDir() {
				continue
			}
			if filepath.Ext(info.Name()) == ".mp3" {
				return mo.Some(filepath.Join(searchDir, info.Name()))
			}
		}
	}
	return mo.None[string]()
}
