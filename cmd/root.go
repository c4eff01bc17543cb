// Package cmd implements the command-line interface for fadeshow.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fadeshow-cli/fadeshow/color"
	"github.com/fadeshow-cli/fadeshow/constant"
	"github.com/fadeshow-cli/fadeshow/ffmpeg"
	"github.com/fadeshow-cli/fadeshow/icon"
	"github.com/fadeshow-cli/fadeshow/key"
	"github.com/fadeshow-cli/fadeshow/log"
	"github.com/fadeshow-cli/fadeshow/media"
	"github.com/fadeshow-cli/fadeshow/open"
	"github.com/fadeshow-cli/fadeshow/slideshow"
	"github.com/fadeshow-cli/fadeshow/style"
	"github.com/fadeshow-cli/fadeshow/util"
	"github.com/fadeshow-cli/fadeshow/version"
	"github.com/fadeshow-cli/fadeshow/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	rootCmd.Flags().BoolP("no-play", "y", false, "Skip the playback prompt after a successful build")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	// Build parameters are persistent so the plan preview shares them.
	rootCmd.PersistentFlags().StringP("dir", "d", "media", "Directory scanned for source images and clips")
	lo.Must0(viper.BindPFlag(key.MediaDir, rootCmd.PersistentFlags().Lookup("dir")))

	rootCmd.PersistentFlags().StringP("output", "o", "slideshow.mp4", "Path of the assembled video")
	lo.Must0(viper.BindPFlag(key.SlideshowOutput, rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.PersistentFlags().Float64P("slide-duration", "s", 4.0, "Seconds each still image is shown before scaling")
	lo.Must0(viper.BindPFlag(key.SlideshowSlideDuration, rootCmd.PersistentFlags().Lookup("slide-duration")))

	rootCmd.PersistentFlags().Float64P("fade-duration", "f", 0.5, "Seconds of the fade applied at either end of a slot")
	lo.Must0(viper.BindPFlag(key.SlideshowFadeDuration, rootCmd.PersistentFlags().Lookup("fade-duration")))

	rootCmd.PersistentFlags().Int("fps", 30, "Frame rate of the assembled video")
	lo.Must0(viper.BindPFlag(key.SlideshowFPS, rootCmd.PersistentFlags().Lookup("fps")))

	rootCmd.PersistentFlags().StringP("resolution", "r", "1920x1080", "Output canvas as WIDTHxHEIGHT")
	lo.Must0(viper.BindPFlag(key.SlideshowResolution, rootCmd.PersistentFlags().Lookup("resolution")))

	rootCmd.PersistentFlags().StringP("codec", "c", "h264", "Video codec family")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("codec", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ffmpeg.Families, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.SlideshowCodec, rootCmd.PersistentFlags().Lookup("codec")))

	rootCmd.PersistentFlags().Bool("hardware", true, "Prefer a hardware encoder when the platform offers one")
	lo.Must0(viper.BindPFlag(key.SlideshowHardware, rootCmd.PersistentFlags().Lookup("hardware")))

	rootCmd.PersistentFlags().String("music", "", "Music file mixed under the video (default: first *.mp3 found)")
	rootCmd.PersistentFlags().Bool("no-music", false, "Assemble without a soundtrack")

	rootCmd.PersistentFlags().Float64("music-trim", 20.0, "Seconds cut from the start of the music")
	lo.Must0(viper.BindPFlag(key.MusicTrim, rootCmd.PersistentFlags().Lookup("music-trim")))

	rootCmd.PersistentFlags().Float64("music-fade-in", 2.0, "Seconds the music takes to fade in")
	lo.Must0(viper.BindPFlag(key.MusicFadeIn, rootCmd.PersistentFlags().Lookup("music-fade-in")))

	rootCmd.PersistentFlags().Float64("music-fade-out", 6.0, "Seconds the music takes to fade out before the end")
	lo.Must0(viper.BindPFlag(key.MusicFadeOut, rootCmd.PersistentFlags().Lookup("music-fade-out")))

	rootCmd.PersistentFlags().String("filter", "", "Keep only files fuzzy-matching the given term")

	rootCmd.PersistentFlags().StringSlice("exclude", []string{}, "Additional filename globs excluded from discovery")
	lo.Must0(viper.BindPFlag(key.MediaExcludeGlobs, rootCmd.PersistentFlags().Lookup("exclude")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd assembles the slideshow; subcommands cover the plan preview,
// metadata stripping, and housekeeping.
var rootCmd = &cobra.Command{
	Use:   constant.Fadeshow,
	Short: "Assemble a fading slideshow video from a directory of images and clips",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiPurple).Render("    - Assemble a fading slideshow video from images and clips, set to music"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := buildOptions(cmd)
		handleErr(options.Validate())

		codec, err := ffmpeg.SelectCodec(viper.GetString(key.SlideshowCodec), viper.GetBool(key.SlideshowHardware))
		handleErr(err)

		items, err := discoverItems(cmd, options)
		handleErr(err)

		if len(items) == 0 {
			fmt.Printf("No media files found in %s\n", options.MediaDir)
			return
		}

		width, height := lo.Must2(slideshow.ParseResolution(options.Resolution))
		prober := ffmpeg.NewProber()
		renderer := ffmpeg.NewRenderer(codec, width, height, options.FPS, prober)

		builder := slideshow.New(options, renderer, prober, slideshow.NewTerminalReporter())
		handleErr(builder.Run(items))

		maybePlay(cmd, options.Output)
	},
}

// buildOptions assembles the run configuration from flags and config.
func buildOptions(cmd *cobra.Command) slideshow.Options {
	return slideshow.Options{
		MediaDir:      viper.GetString(key.MediaDir),
		Output:        viper.GetString(key.SlideshowOutput),
		SlideDuration: viper.GetFloat64(key.SlideshowSlideDuration),
		FadeDuration:  viper.GetFloat64(key.SlideshowFadeDuration),
		FPS:           viper.GetInt(key.SlideshowFPS),
		Resolution:    viper.GetString(key.SlideshowResolution),
		Music:         resolveMusic(cmd),
	}
}

// resolveMusic picks the soundtrack: an explicit --music path wins, otherwise
// the first *.mp3 near the media directory, unless music is disabled.
func resolveMusic(cmd *cobra.Command) mo.Option[slideshow.Music] {
	if lo.Must(cmd.Flags().GetBool("no-music")) || !viper.GetBool(key.MusicEnable) {
		return mo.None[slideshow.Music]()
	}

	path := lo.Must(cmd.Flags().GetString("music"))
	if path == "" {
		found, ok := media.FindMusic(filepath.Dir(viper.GetString(key.MediaDir))).Get()
		if !ok {
			return mo.None[slideshow.Music]()
		}
		path = found
	}

	return mo.Some(slideshow.Music{
		Path:      path,
		TrimStart: viper.GetFloat64(key.MusicTrim),
		FadeIn:    viper.GetFloat64(key.MusicFadeIn),
		FadeOut:   viper.GetFloat64(key.MusicFadeOut),
		Bitrate:   viper.GetString(key.MusicBitrate),
	})
}

// discoverItems scans the media directory with the configured exclusions.
func discoverItems(cmd *cobra.Command, options slideshow.Options) ([]media.Item, error) {
	return media.Discover(options.MediaDir, media.DiscoverOptions{
		ExcludeOutput: options.Output,
		ExcludeGlobs:  viper.GetStringSlice(key.MediaExcludeGlobs),
		Filter:        lo.Must(cmd.Flags().GetString("filter")),
	})
}

// maybePlay offers to open the finished video in the default media player.
func maybePlay(cmd *cobra.Command, output string) {
	if lo.Must(cmd.Flags().GetBool("no-play")) || !viper.GetBool(key.PlaybackAsk) {
		return
	}

	var play bool
	confirm := survey.Confirm{
		Message: "Play the slideshow in the default media player?",
		Default: true,
	}
	if err := survey.AskOne(&confirm, &play); err != nil || !play {
		return
	}

	if err := open.Run(output); err != nil {
		log.Error(err)
		fmt.Printf("%s Cannot open %s\n", icon.Get(icon.Fail), output)
	}
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
