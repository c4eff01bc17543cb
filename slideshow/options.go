package slideshow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Options configure one assembly run. All durations are seconds.
type Options struct {
	// MediaDir is the directory that was scanned for stills and clips.
	MediaDir string `validate:"required"`

	// Output is the path of the published video.
	Output string `validate:"required"`

	// SlideDuration is the unscaled screen time of a still image.
	SlideDuration float64 `validate:"gt=0"`

	// FadeDuration is the nominal fade length; zero disables fades.
	FadeDuration float64 `validate:"gte=0"`

	FPS        int    `validate:"min=1,max=240"`
	Resolution string `validate:"required,resolution"`

	// Music is the optional soundtrack shaping.
	Music mo.Option[Music]
}

// Music configures the soundtrack: which track plays, how much of its start
// is dropped, and the fade lengths at either end of the show.
type Music struct {
	Path      string  `validate:"required"`
	TrimStart float64 `validate:"gte=0"`
	FadeIn    float64 `validate:"gte=0"`
	FadeOut   float64 `validate:"gte=0"`
	Bitrate   string  `validate:"required"`
}

var validate = func() *validator.Validate {
	v := validator.New()

	lo.Must0(v.RegisterValidation("resolution", func(fl validator.FieldLevel) bool {
		_, _, err := ParseResolution(fl.Field().String())
		return err == nil
	}))

	return v
}()

// Validate checks the run configuration before anything touches the disk.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if music, ok := o.Music.Get(); ok {
		if err := validate.Struct(music); err != nil {
			return fmt.Errorf("invalid music options: %w", err)
		}
	}

	return nil
}

// ParseResolution splits a WIDTHxHEIGHT string into positive dimensions.
func ParseResolution(resolution string) (width, height int, err error) {
	invalid := fmt.Errorf("invalid resolution %q, want WIDTHxHEIGHT", resolution)

	parts := strings.Split(resolution, "x")
	if len(parts) != 2 {
		return 0, 0, invalid
	}

	width, err = strconv.Atoi(parts[0])
	if err != nil || width <= 0 {
		return 0, 0, invalid
	}

	height, err = strconv.Atoi(parts[1])
	if err != nil || height <= 0 {
		return 0, 0, invalid
	}

	return width, height, nil
}
