package metadata

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fadeshow-cli/fadeshow/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

type fakeScrubber struct {
	stripped []string

	// emptyResult leaves an empty temp file behind, failOn returns an error.
	emptyResult bool
	failOn      string
}

func (f *fakeScrubber) strip(src, dst string) error {
	if filepath.Base(src) == f.failOn {
		return errors.New("strip failed")
	}

	f.stripped = append(f.stripped, filepath.Base(src))

	content := []byte("stripped")
	if f.emptyResult {
		content = nil
	}
	return afero.WriteFile(filesystem.API(), dst, content, 0o644)
}

func (f *fakeScrubber) StripImage(src, dst string) error { return f.strip(src, dst) }
func (f *fakeScrubber) StripVideo(src, dst string) error { return f.strip(src, dst) }

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) Started(count int) {
	r.events = append(r.events, fmt.Sprintf("started %d", count))
}

func (r *recordingReporter) FileDone(name string, outcome Outcome) {
	r.events = append(r.events, fmt.Sprintf("file %s %d", name, outcome))
}

func (r *recordingReporter) Done(tally Tally) {
	r.events = append(r.events, "done")
}

func write(path string) {
	lo.Must0(afero.WriteFile(filesystem.API(), path, []byte("original"), 0o644))
}

func read(path string) string {
	return string(lo.Must(afero.ReadFile(filesystem.API(), path)))
}

func TestCandidates(t *testing.T) {
	Convey("Candidate listing", t, func() {
		filesystem.SetMemMapFs()
		lo.Must0(filesystem.API().MkdirAll("media", 0o755))

		Convey("Should cover images, videos, and audio, sorted by name", func() {
			for _, name := range []string{"c.mov", "a.png", "b.mp3", "d.jpg"} {
				write(filepath.Join("media", name))
			}

			files := lo.Must(Candidates("media"))

			So(files, ShouldResemble, []string{
				filepath.Join("media", "a.png"),
				filepath.Join("media", "b.mp3"),
				filepath.Join("media", "c.mov"),
				filepath.Join("media", "d.jpg"),
			})
		})

		Convey("Should match extensions case-insensitively", func() {
			write(filepath.Join("media", "IMG_0001.JPG"))

			files := lo.Must(Candidates("media"))

			So(files, ShouldHaveLength, 1)
		})

		Convey("Should skip unrecognized files and interrupted leftovers", func() {
			write(filepath.Join("media", "notes.txt"))
			write(filepath.Join("media", ".tmp_a.png"))
			write(filepath.Join("media", "a.png"))

			files := lo.Must(Candidates("media"))

			So(files, ShouldResemble, []string{filepath.Join("media", "a.png")})
		})

		Convey("Should propagate a missing directory", func() {
			_, err := Candidates("nowhere")

			So(err, ShouldNotBeNil)
		})
	})
}

func TestStrip(t *testing.T) {
	Convey("A strip run", t, func() {
		filesystem.SetMemMapFs()
		lo.Must0(filesystem.API().MkdirAll("media", 0o755))

		image := filepath.Join("media", "photo.png")
		clip := filepath.Join("media", "clip.mov")
		track := filepath.Join("media", "song.mp3")
		write(image)
		write(clip)
		write(track)

		reporter := &recordingReporter{}

		Convey("Should rewrite images and videos and keep audio", func() {
			scrubber := &fakeScrubber{}
			tally := Strip([]string{image, clip, track}, scrubber, reporter)

			So(tally, ShouldResemble, Tally{Stripped: 2, Kept: 1})
			So(scrubber.stripped, ShouldResemble, []string{"photo.png", "clip.mov"})
			So(read(image), ShouldEqual, "stripped")
			So(read(clip), ShouldEqual, "stripped")
			So(read(track), ShouldEqual, "original")
		})

		Convey("Should swap through a dot-prefixed sibling", func() {
			Strip([]string{image}, &fakeScrubber{}, reporter)

			exists := lo.Must(afero.Exists(filesystem.API(), filepath.Join("media", ".tmp_photo.png")))
			So(exists, ShouldBeFalse)
		})

		Convey("Should keep the original when the pass errors", func() {
			tally := Strip([]string{image, clip}, &fakeScrubber{failOn: "photo.png"}, reporter)

			So(tally, ShouldResemble, Tally{Stripped: 1, Failed: 1})
			So(read(image), ShouldEqual, "original")
			So(read(clip), ShouldEqual, "stripped")
		})

		Convey("Should treat an empty result as a failure", func() {
			tally := Strip([]string{image}, &fakeScrubber{emptyResult: true}, reporter)

			So(tally, ShouldResemble, Tally{Failed: 1})
			So(read(image), ShouldEqual, "original")

			exists := lo.Must(afero.Exists(filesystem.API(), filepath.Join("media", ".tmp_photo.png")))
			So(exists, ShouldBeFalse)
		})

		Convey("Should report every file and the final tally", func() {
			Strip([]string{image, track}, &fakeScrubber{}, reporter)

			So(reporter.events, ShouldResemble, []string{
				"started 2",
				fmt.Sprintf("file photo.png %d", Stripped),
				fmt.Sprintf("file song.mp3 %d", Kept),
				"done",
			})
		})
	})
}
