// Package ffmpeg wraps the external ffmpeg toolchain: availability checks,
// media probing, codec selection, and the segment, concat, and mux encodes
// of an assembly run.
package ffmpeg

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNotInstalled reports a missing ffmpeg or ffprobe binary.
var ErrNotInstalled = errors.New("ffmpeg is not installed")

// Available verifies that both ffmpeg and ffprobe resolve on PATH.
func Available() error {
	for _, binary := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(binary); err != nil {
			return fmt.Errorf("%w: %s not found in PATH", ErrNotInstalled, binary)
		}
	}
	return nil
}

// Error describes a failed ffmpeg invocation.
type Error struct {
	Command string
	Stderr  string
	Err     error
}

func (e *Error) Error() string {
	if line := lastLine(e.Stderr); line != "" {
		return fmt.Sprintf("ffmpeg: %v: %s", e.Err, line)
	}
	return fmt.Sprintf("ffmpeg: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// lastLine extracts the final non-empty stderr line, which is where ffmpeg
// leaves its actionable message.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// seconds renders a duration argument the way ffmpeg expects, without
// exponent notation or trailing zeros.
func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
