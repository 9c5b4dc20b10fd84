// Package medianame extracts episode placement, titles, years, and
// subtitle languages from media file and directory names.
package medianame

import (
	"regexp"
	"strconv"
)

// Episode is a placement parsed from a file name. Date-named episodes
// (daily shows) use the year as season and month*100+day as episode so
// they order chronologically.
type Episode struct {
	Season     int
	Episode    int
	EndEpisode int    // last episode of a multi-episode file; 0 when single
	Date       string // YYYY-MM-DD when the name carried a date
}

type patternKind int

const (
	patternSxE patternKind = iota
	patternCross
	patternVerbose
	patternDate
)

// Patterns are tried in order; the first match wins.
var episodePatterns = []struct {
	kind patternKind
	re   *regexp.Regexp
}{
	{patternSxE, regexp.MustCompile(`(?i)s(\d+)e(\d+)(?:e(\d+))?`)},
	{patternCross, regexp.MustCompile(`(?i)(\d+)x(\d+)(?:x(\d+))?`)},
	{patternVerbose, regexp.MustCompile(`(?i)season\s*(\d+).*episode\s*(\d+)`)},
	{patternDate, regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)},
}

// ParseEpisode scans a file name for an episode numbering pattern.
// ok is false when no pattern matched; the name then has no usable
// placement and the caller decides what to do with the file.
func ParseEpisode(name string) (Episode, bool) {
	ep, _, ok := findEpisode(name)
	return ep, ok
}

// findEpisode returns the placement and the byte offset where the pattern
// match begins, for title cutting.
func findEpisode(name string) (Episode, int, bool) {
	for _, p := range episodePatterns {
		m := p.re.FindStringSubmatchIndex(name)
		if m == nil {
			continue
		}
		group := func(i int) (int, bool) {
			if 2*i >= len(m) || m[2*i] < 0 {
				return 0, false
			}
			n, err := strconv.Atoi(name[m[2*i]:m[2*i+1]])
			return n, err == nil
		}

		if p.kind == patternDate {
			year, ok1 := group(1)
			month, ok2 := group(2)
			day, ok3 := group(3)
			if ok1 && ok2 && ok3 {
				return Episode{
					Season:  year,
					Episode: month*100 + day,
					Date:    name[m[0]:m[1]],
				}, m[0], true
			}
			continue
		}

		season, ok1 := group(1)
		episode, ok2 := group(2)
		if !ok1 || !ok2 {
			continue
		}
		ep := Episode{Season: season, Episode: episode}
		if end, ok := group(3); ok {
			ep.EndEpisode = end
		}
		return ep, m[0], true
	}
	return Episode{}, 0, false
}
