package media

import (
	"path/filepath"
	"testing"

	"github.com/fadeshow-cli/fadeshow/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func touch(t *testing.T, paths ...string) {
	t.Helper()
	for _, path := range paths {
		if err := filesystem.API().WriteFile(path, []byte("stub"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func names(items []Item) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = item.Name()
	}
	return result
}

func TestDiscover(t *testing.T) {
	Convey("Discover", t, func() {
		filesystem.SetMemMapFs()

		Convey("Given a paired image and clip with a trailing image", func() {
			touch(t,
				"/show/A - 1 of 2.png",
				"/show/A - 1 of 2.mov",
				"/show/A - 2 of 2.png",
				"/show/slideshow.mp4",
			)

			items, err := Discover("/show", DiscoverOptions{ExcludeOutput: "/show/slideshow.mp4"})
			So(err, ShouldBeNil)

			Convey("The clip leads without a fade-out, the image follows without a fade-in", func() {
				So(names(items), ShouldResemble, []string{"A - 1 of 2.mov", "A - 1 of 2.png", "A - 2 of 2.png"})

				So(items[0].Kind, ShouldEqual, Video)
				So(items[0].SuppressFadeOut, ShouldBeTrue)
				So(items[0].SuppressFadeIn, ShouldBeFalse)

				So(items[1].Kind, ShouldEqual, Image)
				So(items[1].SuppressFadeIn, ShouldBeTrue)
				So(items[1].SuppressFadeOut, ShouldBeFalse)

				So(items[2].SuppressFadeIn, ShouldBeFalse)
				So(items[2].SuppressFadeOut, ShouldBeFalse)
			})

			Convey("The prior output never re-enters the scan", func() {
				for _, item := range items {
					So(item.Name(), ShouldNotEqual, "slideshow.mp4")
				}
			})
		})

		Convey("Given an empty directory", func() {
			So(filesystem.API().MkdirAll("/empty", 0755), ShouldBeNil)

			items, err := Discover("/empty", DiscoverOptions{})
			So(err, ShouldBeNil)
			So(items, ShouldBeEmpty)
		})

		Convey("Given a missing directory", func() {
			_, err := Discover("/nowhere", DiscoverOptions{})
			So(err, ShouldNotBeNil)
		})

		Convey("Given unrelated and uppercase files", func() {
			touch(t,
				"/mixed/notes.txt",
				"/mixed/track.mp3",
				"/mixed/LOUD.PNG",
				"/mixed/photo 1 of 1.png",
			)

			items, err := Discover("/mixed", DiscoverOptions{})
			So(err, ShouldBeNil)
			So(names(items), ShouldResemble, []string{"photo 1 of 1.png"})
		})

		Convey("Given files with and without ordinals", func() {
			touch(t,
				"/order/z 2 of 3.png",
				"/order/a 3 of 3.png",
				"/order/cover.png",
			)

			items, err := Discover("/order", DiscoverOptions{})
			So(err, ShouldBeNil)

			Convey("Unnumbered files lead, the rest ascend", func() {
				So(names(items), ShouldResemble, []string{"cover.png", "z 2 of 3.png", "a 3 of 3.png"})
			})
		})

		Convey("Given several clips paired with one image", func() {
			touch(t,
				"/multi/b 4 of 9.mov",
				"/multi/a 4 of 9.mov",
				"/multi/still 4 of 9.png",
			)

			items, err := Discover("/multi", DiscoverOptions{})
			So(err, ShouldBeNil)

			Convey("Clips keep filename order ahead of the image", func() {
				So(names(items), ShouldResemble, []string{"a 4 of 9.mov", "b 4 of 9.mov", "still 4 of 9.png"})
				So(items[0].SuppressFadeOut, ShouldBeTrue)
				So(items[1].SuppressFadeOut, ShouldBeTrue)
				So(items[2].SuppressFadeIn, ShouldBeTrue)
			})
		})

		Convey("Given a group with only images", func() {
			touch(t,
				"/plain/a 2 of 2.png",
				"/plain/b 2 of 2.png",
			)

			items, err := Discover("/plain", DiscoverOptions{})
			So(err, ShouldBeNil)
			for _, item := range items {
				So(item.SuppressFadeIn, ShouldBeFalse)
				So(item.SuppressFadeOut, ShouldBeFalse)
			}
		})

		Convey("Given extra exclusion globs", func() {
			touch(t,
				"/globs/draft 1 of 2.png",
				"/globs/final 2 of 2.png",
			)

			items, err := Discover("/globs", DiscoverOptions{ExcludeGlobs: []string{"draft*"}})
			So(err, ShouldBeNil)
			So(names(items), ShouldResemble, []string{"final 2 of 2.png"})
		})

		Convey("Given a fuzzy filter", func() {
			touch(t,
				"/filter/beach 1 of 2.png",
				"/filter/city 2 of 2.png",
			)

			items, err := Discover("/filter", DiscoverOptions{Filter: "beach"})
			So(err, ShouldBeNil)
			So(names(items), ShouldResemble, []string{"beach 1 of 2.png"})
		})
	})
}

func TestFindMusic(t *testing.T) {
	Convey("FindMusic", t, func() {
		filesystem.SetMemMapFs()

		Convey("Should prefer the scan directory over its media subdirectory", func() {
			touch(t,
				"/show/theme.mp3",
				filepath.Join("/show", "media", "fallback.mp3"),
			)

			So(FindMusic("/show").MustGet(), ShouldEqual, filepath.Join("/show", "theme.mp3"))
		})

		Convey("Should fall back to the media subdirectory", func() {
			touch(t, filepath.Join("/only-sub", "media", "song.mp3"))

			So(FindMusic("/only-sub").MustGet(), ShouldEqual, filepath.Join("/only-sub", "media", "song.mp3"))
		})

		Convey("Should pick the first candidate by name", func() {
			touch(t,
				"/many/b.mp3",
				"/many/a.mp3",
			)

			So(FindMusic("/many").MustGet(), ShouldEqual, filepath.Join("/many", "a.mp3"))
		})

		Convey("Should report absence", func() {
			So(filesystem.API().MkdirAll("/silent", 0755), ShouldBeNil)
			So(FindMusic("/silent").IsAbsent(), ShouldBeTrue)
		})
	})
}
