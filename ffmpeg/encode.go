package ffmpeg

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fadeshow-cli/fadeshow/filesystem"
	"github.com/fadeshow-cli/fadeshow/log"
	"github.com/fadeshow-cli/fadeshow/media"
	"github.com/fadeshow-cli/fadeshow/timeline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	ffmpeg_go "github.com/u2takey/ffmpeg-go"
)

// Renderer builds and runs the encode passes of one assembly run. Every pass
// shares the same codec, canvas, and frame rate.
type Renderer struct {
	codec  Codec
	width  int
	height int
	fps    int
	prober *Prober
}

// NewRenderer returns a Renderer encoding onto the given canvas.
func NewRenderer(codec Codec, width, height, fps int, prober *Prober) *Renderer {
	return &Renderer{
		codec:  codec,
		width:  width,
		height: height,
		fps:    fps,
		prober: prober,
	}
}

// RenderSegment encodes one slot into a normalized segment file. Still
// images loop for their scheduled screen time while clips keep their native
// length; either way the picture is rotated upright, fitted to the canvas,
// and faded per the slot's windows. Segments carry no audio.
func (r *Renderer) RenderSegment(slot timeline.Slot, out string) error {
	return run(r.segment(slot, out))
}

func (r *Renderer) segment(slot timeline.Slot, out string) *ffmpeg_go.Stream {
	var stream *ffmpeg_go.Stream
	if slot.Item.Kind == media.Image {
		stream = ffmpeg_go.Input(slot.Item.Path, ffmpeg_go.KwArgs{
			"loop": 1,
			"t":    seconds(slot.Effective),
		})
	} else {
		stream = ffmpeg_go.Input(slot.Item.Path)
	}

	stream = fades(r.frame(r.upright(stream, slot.Item.Path)), slot)

	args := r.codec.OutputArgs()
	if slot.Item.Kind == media.Video {
		args["an"] = ""
	}

	return stream.Output(out, args)
}

// upright counteracts the orientation recorded in the source's metadata.
// Only the three right-angle rotations need a transpose; anything else
// passes through untouched.
func (r *Renderer) upright(stream *ffmpeg_go.Stream, path string) *ffmpeg_go.Stream {
	rotation, _ := r.prober.Rotation(path)

	switch rotation {
	case 90:
		return stream.Filter("transpose", ffmpeg_go.Args{"1"})
	case 180:
		return stream.Filter("transpose", ffmpeg_go.Args{"1"}).Filter("transpose", ffmpeg_go.Args{"1"})
	case 270:
		return stream.Filter("transpose", ffmpeg_go.Args{"2"})
	default:
		return stream
	}
}

// frame fits the picture onto the canvas: scale preserving aspect ratio,
// letterbox onto black, square pixels, constant frame rate.
func (r *Renderer) frame(stream *ffmpeg_go.Stream) *ffmpeg_go.Stream {
	return stream.
		Filter("scale", ffmpeg_go.Args{
			fmt.Sprintf("%d:%d", r.width, r.height),
		}, ffmpeg_go.KwArgs{
			"force_original_aspect_ratio": "decrease",
		}).
		Filter("pad", ffmpeg_go.Args{
			fmt.Sprintf("%d:%d:(ow-iw)/2:(oh-ih)/2", r.width, r.height),
		}, ffmpeg_go.KwArgs{
			"color": "black",
		}).
		Filter("setsar", ffmpeg_go.Args{"1"}).
		Filter("fps", ffmpeg_go.Args{strconv.Itoa(r.fps)})
}

// fades applies the slot's fade windows. Suppressed fades are absent from
// the slot, so nothing is emitted for them.
func fades(stream *ffmpeg_go.Stream, slot timeline.Slot) *ffmpeg_go.Stream {
	if window, ok := slot.FadeIn.Get(); ok {
		stream = stream.Filter("fade", ffmpeg_go.Args{}, ffmpeg_go.KwArgs{
			"t":  "in",
			"st": seconds(window.Start),
			"d":  seconds(window.Duration),
		})
	}

	if window, ok := slot.FadeOut.Get(); ok {
		stream = stream.Filter("fade", ffmpeg_go.Args{}, ffmpeg_go.KwArgs{
			"t":  "out",
			"st": seconds(window.Start),
			"d":  seconds(window.Duration),
		})
	}

	return stream
}

// Concat splices the segment files into one continuous silent video without
// re-encoding, going through a concat demuxer list written to listPath.
func (r *Renderer) Concat(segments []string, listPath, out string) error {
	err := afero.WriteFile(filesystem.API(), listPath, []byte(concatList(segments)), 0o644)
	if err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	stream := ffmpeg_go.
		Input(listPath, ffmpeg_go.KwArgs{"f": "concat", "safe": "0"}).
		Output(out, ffmpeg_go.KwArgs{"c:v": "copy", "an": ""})

	return run(stream)
}

// concatList renders the concat demuxer list, escaping single quotes the
// way the demuxer expects.
func concatList(segments []string) string {
	var list strings.Builder
	for _, segment := range segments {
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(segment, "'", `'\''`))
	}

	return list.String()
}

// Finalize publishes the silent cut as the final output.
func (r *Renderer) Finalize(video, out string) error {
	return run(ffmpeg_go.Input(video).Output(out, ffmpeg_go.KwArgs{"c": "copy"}))
}

// MusicMix describes how the soundtrack is shaped for the final mux.
type MusicMix struct {
	// Path is the audio file.
	Path string

	// TrimStart is how many seconds to drop from the track's beginning.
	TrimStart float64

	// TrackDuration is the track's total length, bounding the trim.
	TrackDuration float64

	// FadeIn and FadeOut are the soundtrack's own fade lengths. The
	// fade-out is anchored to end exactly when the video does.
	FadeIn  float64
	FadeOut float64

	// Bitrate is the AAC bitrate of the published track.
	Bitrate string
}

// FinalizeWithMusic muxes the silent cut with the shaped soundtrack. The
// trimmed track is rebased to zero, faded at both ends, and mixed over a
// silence bed spanning the whole video so shows longer than the track still
// end quietly instead of cutting off.
func (r *Renderer) FinalizeWithMusic(video string, videoDuration float64, mix MusicMix, out string) error {
	return run(r.musicGraph(video, videoDuration, mix, out))
}

func (r *Renderer) musicGraph(video string, videoDuration float64, mix MusicMix, out string) *ffmpeg_go.Stream {
	picture := ffmpeg_go.Input(video).Get("v").Filter("copy", ffmpeg_go.Args{})

	bed := ffmpeg_go.Input(
		fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=44100:duration=%s", seconds(videoDuration)),
		ffmpeg_go.KwArgs{"f": "lavfi"},
	)

	shaped := ffmpeg_go.Input(mix.Path).Get("a").
		Filter("atrim", ffmpeg_go.Args{
			fmt.Sprintf("%s:%s", seconds(mix.TrimStart), seconds(mix.TrackDuration)),
		}).
		Filter("asetpts", ffmpeg_go.Args{"PTS-STARTPTS"}).
		Filter("afade", ffmpeg_go.Args{}, ffmpeg_go.KwArgs{
			"t":  "in",
			"st": seconds(0),
			"d":  seconds(mix.FadeIn),
		}).
		Filter("afade", ffmpeg_go.Args{}, ffmpeg_go.KwArgs{
			"t":  "out",
			"st": seconds(videoDuration - mix.FadeOut),
			"d":  seconds(mix.FadeOut),
		})

	mixed := ffmpeg_go.Filter(
		[]*ffmpeg_go.Stream{bed, shaped},
		"amix",
		ffmpeg_go.Args{},
		ffmpeg_go.KwArgs{
			"inputs":             2,
			"duration":           "first",
			"dropout_transition": 2,
		},
	)

	args := r.codec.OutputArgs()
	args["c:a"] = "aac"
	args["b:a"] = mix.Bitrate
	args["shortest"] = ""

	return ffmpeg_go.Output([]*ffmpeg_go.Stream{picture, mixed}, out, args)
}

// run executes one compiled pass. Stderr is captured for the error report
// and forwarded to the debug log.
func run(stream *ffmpeg_go.Stream) error {
	stream = stream.OverWriteOutput()
	log.Debugf("ffmpeg: %s", stream.String())

	var stderr strings.Builder
	cmd := stream.Compile()
	cmd.Stderr = io.MultiWriter(&stderr, log.Writer(logrus.DebugLevel))

	if err := cmd.Run(); err != nil {
		return &Error{
			Command: stream.String(),
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	return nil
}
