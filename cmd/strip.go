// Package cmd implements the command-line interface for fadeshow.
package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fadeshow-cli/fadeshow/key"
	"github.com/fadeshow-cli/fadeshow/metadata"
	"github.com/fadeshow-cli/fadeshow/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(stripCmd)
	stripCmd.Flags().BoolP("yes", "Y", false, "Skip the confirmation prompt")
}

// stripCmd removes embedded metadata from the media files of the directory.
var stripCmd = &cobra.Command{
	Use:   "strip",
	Short: "Strip embedded metadata from the media files",
	Long: `Strip embedded metadata, such as EXIF blocks and location tags, from the
media files of the directory. Images are re-encoded, videos are stream-copied
with their metadata dropped, and audio files keep their tags. Originals are
replaced in place; a file whose strip pass fails stays untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		dir := viper.GetString(key.MediaDir)

		files, err := metadata.Candidates(dir)
		handleErr(err)

		if len(files) == 0 {
			fmt.Printf("No media files found in %s\n", dir)
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var proceed bool
			confirm := survey.Confirm{
				Message: fmt.Sprintf("Strip metadata from %s in %s?", util.Quantify(len(files), "file", "files"), dir),
				Default: true,
			}
			if err := survey.AskOne(&confirm, &proceed); err != nil || !proceed {
				return
			}
		}

		metadata.Strip(files, metadata.NewScrubber(), metadata.NewTerminalReporter())
	},
}
