package medianame

import "strings"

// SubtitleLanguage pulls a trailing language token from a subtitle file
// stem: "Movie.en" yields "en". The token must be two or three letters;
// anything else means the language is unknown.
func SubtitleLanguage(stem string) string {
	i := strings.LastIndexByte(stem, '.')
	if i < 0 {
		return ""
	}
	tok := stem[i+1:]
	if len(tok) < 2 || len(tok) > 3 {
		return ""
	}
	for _, r := range tok {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return ""
		}
	}
	return strings.ToLower(tok)
}
