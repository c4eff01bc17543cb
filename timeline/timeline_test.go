package timeline

import (
	"errors"
	"testing"

	"github.com/fadeshow-cli/fadeshow/media"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func fixedClipDuration(seconds float64) func(string) float64 {
	return func(string) float64 { return seconds }
}

func TestCompute(t *testing.T) {
	image := media.Item{Path: "/m/a 1 of 3.png", Kind: media.Image, Ordinal: 1}
	clip := media.Item{Path: "/m/b 2 of 3.mov", Kind: media.Video, Ordinal: 2}

	Convey("Compute", t, func() {
		Convey("Without a target", func() {
			plan, err := Compute([]media.Item{image, clip}, Options{
				BaseSlideDuration: 4,
				FadeDuration:      0.5,
				Target:            mo.None[float64](),
				ClipDuration:      fixedClipDuration(10),
			})
			So(err, ShouldBeNil)

			Convey("Images stay at base length and clips at native length", func() {
				So(plan.Scale, ShouldEqual, 1.0)
				So(plan.TotalNeeded, ShouldEqual, 14)
				So(plan.Slots[0].Effective, ShouldEqual, 4)
				So(plan.Slots[1].Effective, ShouldEqual, 10)
				So(plan.Duration(), ShouldEqual, 14)
			})
		})

		Convey("With a target", func() {
			plan, err := Compute([]media.Item{image, image, clip}, Options{
				BaseSlideDuration: 4,
				FadeDuration:      0.5,
				Target:            mo.Some(36.0),
				ClipDuration:      fixedClipDuration(10),
			})
			So(err, ShouldBeNil)

			Convey("Only image durations absorb the scale factor", func() {
				So(plan.TotalNeeded, ShouldEqual, 18)
				So(plan.Scale, ShouldEqual, 2.0)
				So(plan.Slots[0].Effective, ShouldEqual, 8)
				So(plan.Slots[1].Effective, ShouldEqual, 8)
				So(plan.Slots[2].Effective, ShouldEqual, 10)
				So(plan.Slots[2].Raw, ShouldEqual, plan.Slots[2].Effective)
			})
		})

		Convey("With a zero target", func() {
			plan, err := Compute([]media.Item{image}, Options{
				BaseSlideDuration: 4,
				FadeDuration:      0.5,
				Target:            mo.Some(0.0),
				ClipDuration:      fixedClipDuration(10),
			})
			So(err, ShouldBeNil)
			So(plan.Scale, ShouldEqual, 1.0)
			So(plan.Slots[0].Effective, ShouldEqual, 4)
		})

		Convey("With a negative target", func() {
			_, err := Compute([]media.Item{image}, Options{
				BaseSlideDuration: 4,
				FadeDuration:      0.5,
				Target:            mo.Some(-3.0),
				ClipDuration:      fixedClipDuration(10),
			})
			So(errors.Is(err, ErrTargetNegative), ShouldBeTrue)
		})

		Convey("With no items", func() {
			plan, err := Compute(nil, Options{
				BaseSlideDuration: 4,
				FadeDuration:      0.5,
				Target:            mo.Some(60.0),
				ClipDuration:      fixedClipDuration(10),
			})
			So(err, ShouldBeNil)
			So(plan.Slots, ShouldBeEmpty)
			So(plan.Scale, ShouldEqual, 1.0)
			So(plan.Duration(), ShouldEqual, 0)
		})

		Convey("Counts", func() {
			plan, err := Compute([]media.Item{image, clip, clip}, Options{
				BaseSlideDuration: 4,
				FadeDuration:      0.5,
				Target:            mo.None[float64](),
				ClipDuration:      fixedClipDuration(2),
			})
			So(err, ShouldBeNil)

			images, videos := plan.Counts()
			So(images, ShouldEqual, 1)
			So(videos, ShouldEqual, 2)
		})
	})
}

func TestFadeWindows(t *testing.T) {
	Convey("Fade windows", t, func() {
		options := Options{
			BaseSlideDuration: 4,
			FadeDuration:      0.5,
			Target:            mo.None[float64](),
			ClipDuration:      fixedClipDuration(10),
		}

		Convey("A plain slot fades in at the start and out before the end", func() {
			plan, err := Compute([]media.Item{{Path: "/m/a.png", Kind: media.Image}}, options)
			So(err, ShouldBeNil)

			slot := plan.Slots[0]
			So(slot.FadeIn.MustGet(), ShouldResemble, Window{Start: 0, Duration: 0.5})
			So(slot.FadeOut.MustGet(), ShouldResemble, Window{Start: 3.5, Duration: 0.5})
		})

		Convey("Suppression removes exactly one window", func() {
			leading := media.Item{Path: "/m/a.mov", Kind: media.Video, SuppressFadeOut: true}
			trailing := media.Item{Path: "/m/a.png", Kind: media.Image, SuppressFadeIn: true}

			plan, err := Compute([]media.Item{leading, trailing}, options)
			So(err, ShouldBeNil)

			So(plan.Slots[0].FadeIn.IsPresent(), ShouldBeTrue)
			So(plan.Slots[0].FadeOut.IsAbsent(), ShouldBeTrue)
			So(plan.Slots[1].FadeIn.IsAbsent(), ShouldBeTrue)
			So(plan.Slots[1].FadeOut.IsPresent(), ShouldBeTrue)
		})

		Convey("A fade longer than the slot is clamped", func() {
			short := Options{
				BaseSlideDuration: 0.3,
				FadeDuration:      0.5,
				Target:            mo.None[float64](),
				ClipDuration:      fixedClipDuration(10),
			}

			plan, err := Compute([]media.Item{{Path: "/m/a.png", Kind: media.Image}}, short)
			So(err, ShouldBeNil)

			out := plan.Slots[0].FadeOut.MustGet()
			So(out.Start, ShouldEqual, 0)
			So(out.Duration, ShouldEqual, 0.3)
		})

		Convey("A zero fade produces no windows", func() {
			none := Options{
				BaseSlideDuration: 4,
				FadeDuration:      0,
				Target:            mo.None[float64](),
				ClipDuration:      fixedClipDuration(10),
			}

			plan, err := Compute([]media.Item{{Path: "/m/a.png", Kind: media.Image}}, none)
			So(err, ShouldBeNil)
			So(plan.Slots[0].FadeIn.IsAbsent(), ShouldBeTrue)
			So(plan.Slots[0].FadeOut.IsAbsent(), ShouldBeTrue)
		})
	})
}
