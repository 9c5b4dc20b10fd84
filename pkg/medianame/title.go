package medianame

import (
	"regexp"
	"strconv"
	"strings"
)

var yearInParens = regexp.MustCompile(`\((19|20)\d{2}\)`)

// CleanTitle derives a display title from an episode file name. The
// extension and everything from the first episode pattern onward are
// dropped, dots and underscores become spaces.
func CleanTitle(filename string) string {
	title := filename
	if i := strings.LastIndexByte(title, '.'); i >= 0 {
		title = title[:i]
	}
	if _, pos, ok := findEpisode(title); ok {
		title = title[:pos]
	}
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, ".", " ")
	return strings.Trim(title, " -")
}

// ParseTitle splits a movie or show directory name like "Beta (2020)" into
// the display title and year. Names without a parenthesized year come back
// unchanged with year 0.
func ParseTitle(name string) (string, int) {
	locs := yearInParens.FindAllStringIndex(name, -1)
	if locs == nil {
		return strings.TrimSpace(name), 0
	}
	loc := locs[len(locs)-1]
	year, err := strconv.Atoi(name[loc[0]+1 : loc[1]-1])
	if err != nil {
		return strings.TrimSpace(name), 0
	}
	title := strings.TrimSpace(name[:loc[0]])
	if title == "" {
		title = strings.TrimSpace(name)
	}
	return title, year
}
