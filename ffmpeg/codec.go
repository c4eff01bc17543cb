package ffmpeg

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/fadeshow-cli/fadeshow/constant"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	ffmpeg_go "github.com/u2takey/ffmpeg-go"
)

// Codec family names accepted on the command line.
const (
	H264 = "h264"
	H265 = "h265"
)

// Families lists the selectable codec families.
var Families = []string{H264, H265}

var ErrUnknownCodec = errors.New("unknown codec")

// Codec is a concrete encoder together with its quality setting. Quality is
// a CRF value for software encoders and a q:v value for hardware ones.
type Codec struct {
	Encoder string
	Quality string
}

var (
	softwareCodecs = map[string]Codec{
		H264: {Encoder: "libx264", Quality: "23"},
		H265: {Encoder: "libx265", Quality: "28"},
	}

	hardwareCodecs = map[string]Codec{
		H264: {Encoder: "h264_videotoolbox", Quality: "23"},
		H265: {Encoder: "hevc_videotoolbox", Quality: "28"},
	}
)

// Hardware reports whether the encoder is hardware-accelerated.
func (c Codec) Hardware() bool {
	return strings.HasSuffix(c.Encoder, "_videotoolbox")
}

// OutputArgs returns the encoding arguments shared by every video-producing
// pass. Hardware encoders take a fixed q:v instead of a preset and CRF.
func (c Codec) OutputArgs() ffmpeg_go.KwArgs {
	args := ffmpeg_go.KwArgs{
		"c:v":     c.Encoder,
		"pix_fmt": "yuv420p",
	}

	if c.Hardware() {
		args["q:v"] = c.Quality
	} else {
		args["preset"] = "medium"
		args["crf"] = c.Quality
	}

	return args
}

// SelectCodec resolves a codec family name to a concrete encoder. On macOS
// the VideoToolbox encoder is preferred when ffmpeg reports it and hardware
// encoding is enabled; everywhere else the software encoder is used.
func SelectCodec(family string, hardware bool) (Codec, error) {
	software, known := softwareCodecs[family]
	if !known {
		return Codec{}, errUnknownCodec(family)
	}

	if hardware && runtime.GOOS == constant.Darwin {
		candidate := hardwareCodecs[family]
		if encoderAvailable(candidate.Encoder) {
			return candidate, nil
		}
	}

	return software, nil
}

func errUnknownCodec(family string) error {
	closest := lo.MinBy(Families, func(a string, b string) bool {
		return levenshtein.Distance(family, a) < levenshtein.Distance(family, b)
	})

	return fmt.Errorf("%w %q, did you mean %q?", ErrUnknownCodec, family, closest)
}

// listEncoders fetches ffmpeg's encoder listing once per run.
var listEncoders = sync.OnceValue(func() string {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").Output()
	if err != nil {
		return ""
	}

	return string(out)
})

func encoderAvailable(encoder string) bool {
	return strings.Contains(listEncoders(), encoder)
}
