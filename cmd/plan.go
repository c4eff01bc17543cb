// Package cmd implements the command-line interface for fadeshow.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fadeshow-cli/fadeshow/ffmpeg"
	"github.com/fadeshow-cli/fadeshow/style"
	"github.com/fadeshow-cli/fadeshow/timeline"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolP("json", "j", false, "Format the plan as a JSON document")

	planCmd.SetOut(os.Stdout)
}

// planCmd prints the ordered, annotated assembly plan without rendering.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the computed assembly plan without rendering anything",
	Long: `Print the computed assembly plan: the ordered media files, their screen
times after scaling, and the fade windows each render would honor. Clip
durations come from ffprobe, so the toolchain must be installed.`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		options := buildOptions(cmd)
		handleErr(options.Validate())

		items, err := discoverItems(cmd, options)
		handleErr(err)

		if len(items) == 0 {
			cmd.Printf("No media files found in %s\n", options.MediaDir)
			return
		}

		prober := ffmpeg.NewProber()

		target := mo.None[float64]()
		if music, ok := options.Music.Get(); ok {
			if duration, measured := prober.AudioDuration(music.Path); measured {
				target = mo.Some(duration - music.TrimStart)
			}
		}

		plan, err := timeline.Compute(items, timeline.Options{
			BaseSlideDuration: options.SlideDuration,
			FadeDuration:      options.FadeDuration,
			Target:            target,
			ClipDuration: func(path string) float64 {
				duration, _ := prober.VideoDuration(path)
				return duration
			},
		})
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(plan.Document()))
			return
		}

		printPlan(cmd, plan)
	},
}

// printPlan renders the human-readable plan listing.
func printPlan(cmd *cobra.Command, plan *timeline.Plan) {
	images, videos := plan.Counts()
	cmd.Printf("%d slots (%d images, %d videos)\n", len(plan.Slots), images, videos)

	if target, ok := plan.Target.Get(); ok {
		cmd.Printf("Target: %.2fs, unscaled total: %.2fs, scale: %.3f\n", target, plan.TotalNeeded, plan.Scale)
	}
	cmd.Printf("Total duration: %.2fs\n\n", plan.Duration())

	for i, slot := range plan.Slots {
		cmd.Printf(
			"  [%d/%d] %s (%s, ordinal %d) %.2fs%s\n",
			i+1, len(plan.Slots),
			slot.Item.Name(),
			slot.Item.Kind,
			slot.Item.Ordinal,
			slot.Effective,
			style.Faint(planFades(slot)),
		)
	}
}

// planFades renders the fade windows of one listing line.
func planFades(slot timeline.Slot) string {
	var parts []string
	if window, ok := slot.FadeIn.Get(); ok {
		parts = append(parts, fmt.Sprintf("in %.2fs", window.Duration))
	}
	if window, ok := slot.FadeOut.Get(); ok {
		parts = append(parts, fmt.Sprintf("out %.2fs@%.2fs", window.Duration, window.Start))
	}

	if len(parts) == 0 {
		return " [no fades]"
	}
	return fmt.Sprintf(" [fade %s]", strings.Join(parts, ", "))
}

func init() {
	planCmd.AddCommand(planSchemaCmd)
}

// planSchemaCmd generates the JSON schema of the plan document.
var planSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the plan document",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true

		schema := reflector.Reflect(&timeline.Document{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
