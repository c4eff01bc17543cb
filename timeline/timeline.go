// Package timeline turns an assembly order into concrete render timings: how
// long every slot plays, where its fades sit, and the scale factor that
// stretches still images toward a target duration.
package timeline

import (
	"errors"
	"fmt"

	"github.com/fadeshow-cli/fadeshow/media"
	"github.com/fadeshow-cli/fadeshow/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrTargetNegative reports a target duration below zero, which happens when
// the music trim exceeds the track length.
var ErrTargetNegative = errors.New("target duration is negative")

// Options parameterize plan computation.
type Options struct {
	// BaseSlideDuration is the unscaled screen time of a still image.
	BaseSlideDuration float64

	// FadeDuration is the nominal length of fade-ins and fade-outs.
	FadeDuration float64

	// Target is the desired total duration, typically the trimmed music
	// length. Absent or zero leaves image durations unscaled.
	Target mo.Option[float64]

	// ClipDuration reports the native length of a video clip. Probing is
	// fallible; implementations return a default instead of failing.
	ClipDuration func(path string) float64
}

// Window is a fade interval within a slot, relative to the slot start.
type Window struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Slot is one scheduled item: the media it shows and the timings its render
// must honor.
type Slot struct {
	Item media.Item

	// Raw is the native duration: the base slide duration for images, the
	// probed clip length for videos.
	Raw float64

	// Effective is the screen time after scaling. Clips are never re-timed,
	// so for videos it equals Raw.
	Effective float64

	// FadeIn and FadeOut are the fade windows; a suppressed fade is absent.
	FadeIn  mo.Option[Window]
	FadeOut mo.Option[Window]
}

// Plan is the complete timing schedule of one assembly run.
type Plan struct {
	Slots []Slot

	// TotalNeeded is the unscaled sum of all native durations.
	TotalNeeded float64

	// Target is the requested total duration, when one was derived.
	Target mo.Option[float64]

	// Scale is the factor applied to image durations.
	Scale float64
}

// Duration returns the scheduled total screen time.
func (p *Plan) Duration() float64 {
	return lo.SumBy(p.Slots, func(slot Slot) float64 { return slot.Effective })
}

// Counts reports how many slots show images and videos respectively.
func (p *Plan) Counts() (images, videos int) {
	images = lo.CountBy(p.Slots, func(slot Slot) bool { return slot.Item.Kind == media.Image })
	videos = lo.CountBy(p.Slots, func(slot Slot) bool { return slot.Item.Kind == media.Video })
	return
}

// Compute derives the timing plan for an assembly order. Clips keep their
// native length; still images absorb the gap between the target and the
// unscaled total. A negative target is a configuration error, a zero or
// absent one disables scaling.
func Compute(items []media.Item, options Options) (*Plan, error) {
	if target, ok := options.Target.Get(); ok && target < 0 {
		return nil, fmt.Errorf("%w: %.2fs", ErrTargetNegative, target)
	}

	plan := &Plan{Scale: 1.0, Target: options.Target}

	raws := make([]float64, len(items))
	for i, item := range items {
		if item.Kind == media.Video {
			raws[i] = options.ClipDuration(item.Path)
		} else {
			raws[i] = options.BaseSlideDuration
		}
		plan.TotalNeeded += raws[i]
	}

	if target, ok := options.Target.Get(); ok && target > 0 && plan.TotalNeeded > 0 {
		plan.Scale = target / plan.TotalNeeded
	}

	plan.Slots = make([]Slot, len(items))
	for i, item := range items {
		effective := raws[i]
		if item.Kind != media.Video {
			effective = raws[i] * plan.Scale
		}

		plan.Slots[i] = Slot{
			Item:      item,
			Raw:       raws[i],
			Effective: effective,
			FadeIn:    fadeIn(item, effective, options.FadeDuration),
			FadeOut:   fadeOut(item, effective, options.FadeDuration),
		}
	}

	return plan, nil
}

// fadeIn returns the opening fade window unless the item suppresses it.
func fadeIn(item media.Item, effective, fade float64) mo.Option[Window] {
	if item.SuppressFadeIn || fade <= 0 {
		return mo.None[Window]()
	}
	return mo.Some(Window{Start: 0, Duration: util.Min(fade, effective)})
}

// fadeOut returns the closing fade window unless the item suppresses it.
// A fade longer than the slot is clamped so the window never starts early.
func fadeOut(item media.Item, effective, fade float64) mo.Option[Window] {
	if item.SuppressFadeOut || fade <= 0 {
		return mo.None[Window]()
	}

	length := util.Min(fade, effective)
	return mo.Some(Window{Start: util.Max(0, effective-length), Duration: length})
}
