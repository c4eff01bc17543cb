package slideshow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fadeshow-cli/fadeshow/ffmpeg"
	"github.com/fadeshow-cli/fadeshow/filesystem"
	"github.com/fadeshow-cli/fadeshow/media"
	"github.com/fadeshow-cli/fadeshow/timeline"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

type fakeEncoder struct {
	rendered   []string
	segments   []string
	concatFrom []string
	finalized  string
	mixed      *ffmpeg.MusicMix
	failAt     int
}

func (f *fakeEncoder) RenderSegment(slot timeline.Slot, out string) error {
	if f.failAt > 0 && len(f.rendered)+1 == f.failAt {
		return errors.New("encode failed")
	}

	f.rendered = append(f.rendered, slot.Item.Name())
	f.segments = append(f.segments, out)
	lo.Must0(afero.WriteFile(filesystem.API(), out, []byte("segment"), 0o644))
	return nil
}

func (f *fakeEncoder) Concat(segments []string, listPath, out string) error {
	f.concatFrom = segments
	lo.Must0(afero.WriteFile(filesystem.API(), listPath, []byte("list"), 0o644))
	lo.Must0(afero.WriteFile(filesystem.API(), out, []byte("video"), 0o644))
	return nil
}

func (f *fakeEncoder) Finalize(video, out string) error {
	f.finalized = video
	lo.Must0(afero.WriteFile(filesystem.API(), out, []byte("final"), 0o644))
	return nil
}

func (f *fakeEncoder) FinalizeWithMusic(video string, videoDuration float64, mix ffmpeg.MusicMix, out string) error {
	f.mixed = &mix
	lo.Must0(afero.WriteFile(filesystem.API(), out, []byte("final"), 0o644))
	return nil
}

type fakeProber struct {
	clips map[string]float64
	audio map[string]float64
}

func (f fakeProber) VideoDuration(path string) (float64, bool) {
	if duration, ok := f.clips[path]; ok {
		return duration, true
	}
	return ffmpeg.DefaultClipSeconds, false
}

func (f fakeProber) AudioDuration(path string) (float64, bool) {
	if duration, ok := f.audio[path]; ok && duration > 0 {
		return duration, true
	}
	return 0, false
}

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) Started(items []media.Item, music mo.Option[Music]) {
	r.events = append(r.events, fmt.Sprintf("started %d", len(items)))
}

func (r *recordingReporter) TargetDerived(target float64) {
	r.events = append(r.events, fmt.Sprintf("target %.0f", target))
}

func (r *recordingReporter) MusicDropped(path string) {
	r.events = append(r.events, "music dropped")
}

func (r *recordingReporter) PlanReady(plan *timeline.Plan) {
	r.events = append(r.events, fmt.Sprintf("plan scale=%.3f", plan.Scale))
}

func (r *recordingReporter) SegmentStarted(index, total int, slot timeline.Slot) {
	r.events = append(r.events, fmt.Sprintf("segment %d/%d %s", index, total, slot.Item.Name()))
}

func (r *recordingReporter) Concatenating() {
	r.events = append(r.events, "concatenating")
}

func (r *recordingReporter) Mixing(videoDuration, trimmedAudio float64) {
	r.events = append(r.events, fmt.Sprintf("mixing %.0f", videoDuration))
}

func (r *recordingReporter) CleaningUp() {
	r.events = append(r.events, "cleaning")
}

func (r *recordingReporter) Done(output string) {
	r.events = append(r.events, "done "+output)
}

func testItems() []media.Item {
	return []media.Item{
		{Path: "/media/clip 1 of 2.mov", Kind: media.Video, Ordinal: 1, SuppressFadeOut: true},
		{Path: "/media/photo 1 of 2.png", Kind: media.Image, Ordinal: 1, SuppressFadeIn: true},
	}
}

const silentCut = "/out/.fadeshow_temp/video_no_audio.mp4"

func TestRun(t *testing.T) {
	Convey("A run without music", t, func() {
		filesystem.SetMemMapFs()
		encoder := &fakeEncoder{}
		prober := fakeProber{clips: map[string]float64{
			"/media/clip 1 of 2.mov": 6,
			silentCut:                10,
		}}
		reporter := &recordingReporter{}
		builder := New(validOptions(), encoder, prober, reporter)

		err := builder.Run(testItems())

		Convey("Should succeed", func() {
			So(err, ShouldBeNil)
		})

		Convey("Should render every item in plan order", func() {
			So(encoder.rendered, ShouldResemble, []string{"clip 1 of 2.mov", "photo 1 of 2.png"})
			So(encoder.segments, ShouldResemble, []string{
				"/out/.fadeshow_temp/segment_001.mp4",
				"/out/.fadeshow_temp/segment_002.mp4",
			})
		})

		Convey("Should concatenate the rendered segments", func() {
			So(encoder.concatFrom, ShouldResemble, encoder.segments)
		})

		Convey("Should publish the silent cut unchanged", func() {
			So(encoder.finalized, ShouldEqual, silentCut)
			So(encoder.mixed, ShouldBeNil)
			So(lo.Must(filesystem.API().Exists("/out/slideshow.mp4")), ShouldBeTrue)
		})

		Convey("Should remove all intermediates", func() {
			So(lo.Must(filesystem.API().Exists("/out/.fadeshow_temp/segment_001.mp4")), ShouldBeFalse)
			So(lo.Must(filesystem.API().Exists(silentCut)), ShouldBeFalse)
			So(lo.Must(filesystem.API().Exists("/out/.fadeshow_temp")), ShouldBeFalse)
		})

		Convey("Should report the lifecycle in order", func() {
			So(reporter.events[0], ShouldEqual, "started 2")
			So(reporter.events, ShouldContain, "segment 1/2 clip 1 of 2.mov")
			So(reporter.events, ShouldContain, "segment 2/2 photo 1 of 2.png")
			So(reporter.events, ShouldContain, "concatenating")
			So(reporter.events, ShouldContain, "done /out/slideshow.mp4")
			So(reporter.events[len(reporter.events)-1], ShouldEqual, "cleaning")
		})
	})

	Convey("A run with music", t, func() {
		filesystem.SetMemMapFs()
		encoder := &fakeEncoder{}
		prober := fakeProber{
			clips: map[string]float64{
				"/media/clip 1 of 2.mov": 6,
				silentCut:                10,
			},
			audio: map[string]float64{"/media/track.mp3": 200},
		}
		reporter := &recordingReporter{}

		options := validOptions()
		options.Music = mo.Some(Music{
			Path:      "/media/track.mp3",
			TrimStart: 20,
			FadeIn:    2,
			FadeOut:   6,
			Bitrate:   "192k",
		})

		err := New(options, encoder, prober, reporter).Run(testItems())

		Convey("Should derive the target from the trimmed track", func() {
			So(err, ShouldBeNil)
			So(reporter.events, ShouldContain, "target 180")
			So(reporter.events, ShouldContain, "plan scale=18.000")
		})

		Convey("Should mux with the measured soundtrack", func() {
			So(encoder.mixed, ShouldNotBeNil)
			So(encoder.mixed.TrimStart, ShouldEqual, 20)
			So(encoder.mixed.TrackDuration, ShouldEqual, 200)
			So(encoder.mixed.Bitrate, ShouldEqual, "192k")
			So(encoder.finalized, ShouldBeEmpty)
			So(reporter.events, ShouldContain, "mixing 10")
		})
	})

	Convey("A run with an unreadable soundtrack", t, func() {
		filesystem.SetMemMapFs()
		encoder := &fakeEncoder{}
		prober := fakeProber{clips: map[string]float64{"/media/clip 1 of 2.mov": 6}}
		reporter := &recordingReporter{}

		options := validOptions()
		options.Music = mo.Some(Music{Path: "/media/track.mp3", TrimStart: 20, Bitrate: "192k"})

		err := New(options, encoder, prober, reporter).Run(testItems())

		Convey("Should drop the music and publish silent", func() {
			So(err, ShouldBeNil)
			So(reporter.events, ShouldContain, "music dropped")
			So(reporter.events, ShouldNotContain, "target 180")
			So(encoder.mixed, ShouldBeNil)
			So(encoder.finalized, ShouldEqual, silentCut)
		})
	})

	Convey("A run whose music trim exceeds the track", t, func() {
		filesystem.SetMemMapFs()
		encoder := &fakeEncoder{}
		prober := fakeProber{
			clips: map[string]float64{"/media/clip 1 of 2.mov": 6},
			audio: map[string]float64{"/media/track.mp3": 10},
		}
		reporter := &recordingReporter{}

		options := validOptions()
		options.Music = mo.Some(Music{Path: "/media/track.mp3", TrimStart: 20, Bitrate: "192k"})

		err := New(options, encoder, prober, reporter).Run(testItems())

		Convey("Should surface a configuration error before rendering", func() {
			So(errors.Is(err, timeline.ErrTargetNegative), ShouldBeTrue)
			So(encoder.rendered, ShouldBeEmpty)
			So(lo.Must(filesystem.API().Exists("/out/.fadeshow_temp")), ShouldBeFalse)
		})
	})

	Convey("A run that fails mid-render", t, func() {
		filesystem.SetMemMapFs()
		encoder := &fakeEncoder{failAt: 2}
		prober := fakeProber{clips: map[string]float64{"/media/clip 1 of 2.mov": 6}}
		reporter := &recordingReporter{}

		err := New(validOptions(), encoder, prober, reporter).Run(testItems())

		Convey("Should abort naming the failing item", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "photo 1 of 2.png")
		})

		Convey("Should never reach concatenation", func() {
			So(encoder.concatFrom, ShouldBeNil)
			So(reporter.events, ShouldNotContain, "concatenating")
		})

		Convey("Should clean up what was already rendered", func() {
			So(lo.Must(filesystem.API().Exists("/out/.fadeshow_temp/segment_001.mp4")), ShouldBeFalse)
			So(lo.Must(filesystem.API().Exists("/out/.fadeshow_temp")), ShouldBeFalse)
			So(reporter.events[len(reporter.events)-1], ShouldEqual, "cleaning")
		})
	})

	Convey("A run without items", t, func() {
		filesystem.SetMemMapFs()
		err := New(validOptions(), &fakeEncoder{}, fakeProber{}, &recordingReporter{}).Run(nil)

		Convey("Should report nothing to do", func() {
			So(errors.Is(err, ErrNoMedia), ShouldBeTrue)
		})
	})
}
