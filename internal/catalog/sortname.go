package catalog

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var yearSuffix = regexp.MustCompile(`\s*\(\d{4}\)\s*$`)

// SortTitle normalizes a display title for ordering: lowercased, leading
// article dropped, leading punctuation stripped, trailing "(YYYY)" removed.
func SortTitle(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))

	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(t, article) {
			t = strings.TrimLeft(t[len(article):], " ")
			break
		}
	}

	t = strings.TrimLeftFunc(t, func(r rune) bool {
		return unicode.IsSpace(r) || isASCIIPunct(r)
	})

	t = yearSuffix.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

func isASCIIPunct(r rune) bool {
	return r < utf8.RuneSelf && strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r)
}
