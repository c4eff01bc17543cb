package slideshow

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fadeshow-cli/fadeshow/color"
	"github.com/fadeshow-cli/fadeshow/icon"
	"github.com/fadeshow-cli/fadeshow/media"
	"github.com/fadeshow-cli/fadeshow/style"
	"github.com/fadeshow-cli/fadeshow/timeline"
	"github.com/fadeshow-cli/fadeshow/util"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Reporter observes an assembly run. The terminal reporter renders progress
// for a human; tests substitute a recording implementation.
type Reporter interface {
	Started(items []media.Item, music mo.Option[Music])
	TargetDerived(target float64)
	MusicDropped(path string)
	PlanReady(plan *timeline.Plan)
	SegmentStarted(index, total int, slot timeline.Slot)
	Concatenating()
	Mixing(videoDuration, trimmedAudio float64)
	CleaningUp()
	Done(output string)
}

// terminalReporter prints one line per event, each kept within the
// terminal's width. The progress bar is a bubbles model rendered statically,
// without an event loop.
type terminalReporter struct {
	bar progress.Model
}

// NewTerminalReporter returns the standard stdout reporter.
func NewTerminalReporter() Reporter {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(24),
		progress.WithoutPercentage(),
	)

	return terminalReporter{bar: bar}
}

func (terminalReporter) Started(items []media.Item, music mo.Option[Music]) {
	images := lo.CountBy(items, func(item media.Item) bool { return item.Kind == media.Image })
	videos := lo.CountBy(items, func(item media.Item) bool { return item.Kind == media.Video })

	fmt.Printf(
		"Found %s (%s, %s)\n",
		util.Quantify(len(items), "file", "files"),
		util.Quantify(images, "image", "images"),
		util.Quantify(videos, "video", "videos"),
	)

	if track, ok := music.Get(); ok {
		fmt.Printf(
			"%s Music: %s (trim first %.1fs, fade in %.1fs, fade out %.1fs at end)\n",
			icon.Get(icon.Music),
			style.Fg(color.Purple)(filepath.Base(track.Path)),
			track.TrimStart,
			track.FadeIn,
			track.FadeOut,
		)
	}
}

func (terminalReporter) TargetDerived(target float64) {
	fmt.Printf("Target slideshow duration: %.2fs (from trimmed audio)\n", target)
}

func (terminalReporter) MusicDropped(path string) {
	fmt.Printf(
		"%s Cannot read %s, continuing without music\n",
		icon.Get(icon.Fail),
		style.Fg(color.Yellow)(filepath.Base(path)),
	)
}

func (terminalReporter) PlanReady(plan *timeline.Plan) {
	if plan.Scale != 1.0 {
		fmt.Printf("Duration scale factor: %.3f\n", plan.Scale)
	}

	fmt.Println("\nProcessing files...")
}

func (r terminalReporter) SegmentStarted(index, total int, slot timeline.Slot) {
	line := fmt.Sprintf(
		"  %s [%d/%d] %s (%s)%s",
		r.bar.ViewAs(float64(index-1)/float64(total)),
		index, total,
		slot.Item.Name(),
		slot.Item.Kind,
		notes(slot.Item),
	)

	if width, _, err := util.TerminalSize(); err == nil && width > 0 {
		line = truncate.StringWithTail(line, uint(width), "…")
	}

	fmt.Println(line)
}

// notes renders the fade suppression markers of a progress line.
func notes(item media.Item) string {
	parts := make([]string, 0, 2)
	if item.SuppressFadeIn {
		parts = append(parts, "no fade-in")
	}
	if item.SuppressFadeOut {
		parts = append(parts, "no fade-out")
	}

	if len(parts) == 0 {
		return ""
	}

	return style.Faint(fmt.Sprintf(" [%s]", strings.Join(parts, ", ")))
}

func (terminalReporter) Concatenating() {
	fmt.Println("\nConcatenating segments...")
}

func (terminalReporter) Mixing(videoDuration, trimmedAudio float64) {
	fmt.Println("\nAdding background music...")
	fmt.Printf("Video duration: %.2fs, Trimmed audio: %.2fs\n", videoDuration, trimmedAudio)
}

func (terminalReporter) CleaningUp() {
	fmt.Println("\nCleaning up temporary files...")
}

func (terminalReporter) Done(output string) {
	fmt.Printf(
		"\n%s Slideshow created: %s\n",
		icon.Get(icon.Success),
		style.Fg(color.Green)(output),
	)
}
