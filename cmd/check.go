// Package cmd implements the command-line interface for fadeshow.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fadeshow-cli/fadeshow/constant"
	"github.com/fadeshow-cli/fadeshow/ffmpeg"
	"github.com/fadeshow-cli/fadeshow/icon"
	"github.com/fadeshow-cli/fadeshow/style"
	"github.com/charmbracelet/lipgloss"
)

// CheckDependencies verifies the availability of the external toolchain.
// Every assembly and strip pass goes through ffmpeg and ffprobe, so nothing
// runs without them.
func CheckDependencies() {
	if err := ffmpeg.Available(); err != nil {
		printMissingDependencyError("ffmpeg")
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install ffmpeg"
	case constant.Linux:
		installCmd = "sudo apt install ffmpeg" // Generic, maybe check distro
	case constant.Windows:
		installCmd = "scoop install ffmpeg"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
