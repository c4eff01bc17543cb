package metadata

import (
	"fmt"

	"github.com/fadeshow-cli/fadeshow/icon"
	"github.com/fadeshow-cli/fadeshow/style"
	"github.com/fadeshow-cli/fadeshow/util"
)

// Reporter observes a strip run.
type Reporter interface {
	Started(count int)
	FileDone(name string, outcome Outcome)
	Done(tally Tally)
}

type terminalReporter struct{}

// NewTerminalReporter returns the standard stdout reporter.
func NewTerminalReporter() Reporter {
	return terminalReporter{}
}

func (terminalReporter) Started(count int) {
	fmt.Printf("Found %s to process\n", util.Quantify(count, "file", "files"))
	fmt.Println("Stripping metadata...")
	fmt.Println()
}

func (terminalReporter) FileDone(name string, outcome Outcome) {
	switch outcome {
	case Stripped:
		fmt.Printf("%s %s\n", icon.Get(icon.Success), name)
	case Kept:
		fmt.Printf("%s %s %s\n", icon.Get(icon.Success), name, style.Faint("(skipped, keeping metadata)"))
	case Failed:
		fmt.Printf("%s %s\n", icon.Get(icon.Fail), name)
	}
}

func (terminalReporter) Done(tally Tally) {
	fmt.Printf(
		"\nDone! Stripped: %d, Kept: %d, Failed: %d\n",
		tally.Stripped, tally.Kept, tally.Failed,
	)
}
