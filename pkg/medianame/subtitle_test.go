package medianame

import "testing"

func TestSubtitleLanguage(t *testing.T) {
	tests := []struct {
		stem string
		want string
	}{
		{"Movie.en", "en"},
		{"Movie.EN", "en"},
		{"Movie.eng", "eng"},
		{"My.Show.s01e01.en", "en"},
		{"Movie", ""},
		{"Movie.x", ""},
		{"Movie.v2", ""},
		{"Movie.forced", ""},
		{"Movie.2019", ""},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			if got := SubtitleLanguage(tt.stem); got != tt.want {
				t.Errorf("SubtitleLanguage(%q) = %q, want %q", tt.stem, got, tt.want)
			}
		})
	}
}
