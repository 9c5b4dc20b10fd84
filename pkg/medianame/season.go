package medianame

import (
	"strconv"
	"strings"
)

// ParseSeason recognizes season directory names: "Specials", "Season 2",
// "S02" and the like. Specials map to season 0. ok is false for names
// that are not season directories.
func ParseSeason(dirname string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(dirname))

	switch lower {
	case "specials", "season 0", "s0":
		return 0, true
	}

	if rest, ok := strings.CutPrefix(lower, "season"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && n >= 0 {
			return n, true
		}
		return 0, false
	}

	if rest, ok := strings.CutPrefix(lower, "s"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 {
			return n, true
		}
	}

	return 0, false
}
