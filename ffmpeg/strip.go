package ffmpeg

import (
	"path/filepath"
	"strings"

	ffmpeg_go "github.com/u2takey/ffmpeg-go"
)

// StripImage rewrites an image into dst with every metadata block dropped.
// PNG sources are re-encoded as RGBA so textual chunks cannot survive; other
// formats keep their codec and lose only the metadata.
func StripImage(src, dst string) error {
	return run(stripImage(src, dst))
}

func stripImage(src, dst string) *ffmpeg_go.Stream {
	args := ffmpeg_go.KwArgs{
		"map_metadata": "-1",
		"update":       "1",
		"frames:v":     "1",
	}

	if strings.ToLower(filepath.Ext(src)) == ".png" {
		args["pix_fmt"] = "rgba"
	} else {
		args["codec"] = "copy"
	}

	return ffmpeg_go.Input(src).Output(dst, args)
}

// StripVideo stream-copies a video into dst with its metadata dropped. The
// location keys are cleared explicitly on top of map_metadata because some
// muxers re-derive them from the container.
func StripVideo(src, dst string) error {
	return run(stripVideo(src, dst))
}

func stripVideo(src, dst string) *ffmpeg_go.Stream {
	return ffmpeg_go.Input(src).Output(dst, ffmpeg_go.KwArgs{
		"map_metadata": "-1",
		"metadata": []string{
			"location=",
			"com.apple.quicktime.location=",
			"com.apple.quicktime.location.ISO6709=",
		},
		"codec": "copy",
	})
}
