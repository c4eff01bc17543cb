package media

import (
	"regexp"
	"strconv"

	"github.com/fadeshow-cli/fadeshow/util"
)

// ordinalPattern matches the sequence marker embedded in filenames such as
// "Trip - 3 of 12.png". The literal " of " is case-sensitive.
var ordinalPattern = regexp.MustCompile(`(?P<ordinal>\d+) of \d+`)

// ExtractOrdinal returns the sequence number embedded in a filename.
// Filenames without the marker yield 0 and therefore sort first.
func ExtractOrdinal(filename string) int {
	groups := util.ReGroups(ordinalPattern, filename)
	raw, ok := groups["ordinal"]
	if !ok {
		return 0
	}

	ordinal, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return ordinal
}
