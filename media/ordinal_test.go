package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractOrdinal(t *testing.T) {
	Convey("ExtractOrdinal", t, func() {
		Convey("Should extract the embedded sequence number", func() {
			So(ExtractOrdinal("Vacation - 3 of 10.png"), ShouldEqual, 3)
			So(ExtractOrdinal("2 of 2.mov"), ShouldEqual, 2)
			So(ExtractOrdinal("intro 12 of 12 final.mp4"), ShouldEqual, 12)
		})

		Convey("Should default to zero without the marker", func() {
			So(ExtractOrdinal("holiday.png"), ShouldEqual, 0)
			So(ExtractOrdinal(""), ShouldEqual, 0)
			So(ExtractOrdinal("3of10.png"), ShouldEqual, 0)
		})

		Convey("Should match case-sensitively", func() {
			So(ExtractOrdinal("shot 3 OF 10.png"), ShouldEqual, 0)
		})

		Convey("Should take the first marker when several occur", func() {
			So(ExtractOrdinal("1 of 2 then 3 of 4.png"), ShouldEqual, 1)
		})

		Convey("Should tolerate digits elsewhere in the name", func() {
			So(ExtractOrdinal("IMG_2024 - 5 of 9.png"), ShouldEqual, 5)
		})
	})
}
