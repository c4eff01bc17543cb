// Package slideshow orchestrates an assembly run: timing plan, sequential
// segment renders, concatenation, and the final mux.
package slideshow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fadeshow-cli/fadeshow/ffmpeg"
	"github.com/fadeshow-cli/fadeshow/filesystem"
	"github.com/fadeshow-cli/fadeshow/log"
	"github.com/fadeshow-cli/fadeshow/media"
	"github.com/fadeshow-cli/fadeshow/timeline"
	"github.com/fadeshow-cli/fadeshow/util"
	"github.com/samber/mo"
)

// WorkDirName is the transient directory created next to the output file
// for segments and intermediates. It is removed when the run ends.
const WorkDirName = ".fadeshow_temp"

// ErrNoMedia reports an assembly run invoked without any items.
var ErrNoMedia = errors.New("no media files to assemble")

// Encoder runs the external encode passes of a run. *ffmpeg.Renderer is the
// production implementation.
type Encoder interface {
	RenderSegment(slot timeline.Slot, out string) error
	Concat(segments []string, listPath, out string) error
	Finalize(video, out string) error
	FinalizeWithMusic(video string, videoDuration float64, mix ffmpeg.MusicMix, out string) error
}

// Prober reports media durations. *ffmpeg.Prober is the production
// implementation.
type Prober interface {
	VideoDuration(path string) (float64, bool)
	AudioDuration(path string) (float64, bool)
}

// Builder drives one assembly run from plan to published file.
type Builder struct {
	options  Options
	encoder  Encoder
	prober   Prober
	reporter Reporter
}

// New returns a Builder for one run configuration.
func New(options Options, encoder Encoder, prober Prober, reporter Reporter) *Builder {
	return &Builder{
		options:  options,
		encoder:  encoder,
		prober:   prober,
		reporter: reporter,
	}
}

// resolvedMusic is a soundtrack whose track length has been measured.
type resolvedMusic struct {
	Music
	TrackDuration float64
}

func (m resolvedMusic) mix() ffmpeg.MusicMix {
	return ffmpeg.MusicMix{
		Path:          m.Path,
		TrimStart:     m.TrimStart,
		TrackDuration: m.TrackDuration,
		FadeIn:        m.FadeIn,
		FadeOut:       m.FadeOut,
		Bitrate:       m.Bitrate,
	}
}

// Run assembles the items into the final video. Items render strictly in
// order, one at a time, and the first failure aborts the whole run.
// Intermediate artifacts are removed on success and failure alike.
func (b *Builder) Run(items []media.Item) error {
	if len(items) == 0 {
		return ErrNoMedia
	}

	b.reporter.Started(items, b.options.Music)

	music := b.resolveMusic()

	target := mo.None[float64]()
	if resolved, ok := music.Get(); ok {
		target = mo.Some(resolved.TrackDuration - resolved.TrimStart)
		b.reporter.TargetDerived(resolved.TrackDuration - resolved.TrimStart)
	}

	plan, err := timeline.Compute(items, timeline.Options{
		BaseSlideDuration: b.options.SlideDuration,
		FadeDuration:      b.options.FadeDuration,
		Target:            target,
		ClipDuration: func(path string) float64 {
			duration, _ := b.prober.VideoDuration(path)
			return duration
		},
	})
	if err != nil {
		return err
	}

	b.reporter.PlanReady(plan)

	workDir := filepath.Join(filepath.Dir(b.options.Output), WorkDirName)
	if err := filesystem.API().MkdirAll(workDir, os.ModePerm); err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}

	var artifacts []string
	defer func() {
		b.cleanup(workDir, artifacts)
	}()

	segments := make([]string, 0, len(plan.Slots))
	for i, slot := range plan.Slots {
		segment := filepath.Join(workDir, fmt.Sprintf("segment_%03d.mp4", i+1))
		b.reporter.SegmentStarted(i+1, len(plan.Slots), slot)

		if err := b.encoder.RenderSegment(slot, segment); err != nil {
			return fmt.Errorf("render %s: %w", slot.Item.Name(), err)
		}

		segments = append(segments, segment)
		artifacts = append(artifacts, segment)
	}

	b.reporter.Concatenating()

	listPath := filepath.Join(workDir, "concat_list.txt")
	silent := filepath.Join(workDir, "video_no_audio.mp4")
	artifacts = append(artifacts, listPath, silent)

	if err := b.encoder.Concat(segments, listPath, silent); err != nil {
		return fmt.Errorf("concatenate segments: %w", err)
	}

	videoDuration, _ := b.prober.VideoDuration(silent)

	if resolved, ok := music.Get(); ok {
		b.reporter.Mixing(videoDuration, resolved.TrackDuration-resolved.TrimStart)

		if err := b.encoder.FinalizeWithMusic(silent, videoDuration, resolved.mix(), b.options.Output); err != nil {
			return fmt.Errorf("mix music: %w", err)
		}
	} else if err := b.encoder.Finalize(silent, b.options.Output); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}

	b.reporter.Done(b.options.Output)
	return nil
}

// resolveMusic measures the soundtrack. An unreadable track is dropped with
// a warning instead of failing the run.
func (b *Builder) resolveMusic() mo.Option[resolvedMusic] {
	music, ok := b.options.Music.Get()
	if !ok {
		return mo.None[resolvedMusic]()
	}

	duration, measured := b.prober.AudioDuration(music.Path)
	if !measured {
		log.Warnf("cannot measure %s, assembling without music", music.Path)
		b.reporter.MusicDropped(music.Path)
		return mo.None[resolvedMusic]()
	}

	return mo.Some(resolvedMusic{Music: music, TrackDuration: duration})
}

// cleanup removes every intermediate artifact plus the work directory.
// Failures are swallowed: cleanup never outranks the run's own outcome.
func (b *Builder) cleanup(workDir string, artifacts []string) {
	b.reporter.CleaningUp()

	for _, artifact := range artifacts {
		util.Ignore(func() error { return filesystem.API().Remove(artifact) })
	}

	util.Ignore(func() error { return filesystem.API().Remove(workDir) })
}
