package medianame

import "testing"

func TestParseEpisode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Episode
		ok   bool
	}{
		{"sxxeyy", "Show.Name.S01E04.mkv", Episode{Season: 1, Episode: 4}, true},
		{"sxxeyy lowercase", "show name s01e02.mkv", Episode{Season: 1, Episode: 2}, true},
		{"multi episode", "Show.Name.S03E04E05.mkv", Episode{Season: 3, Episode: 4, EndEpisode: 5}, true},
		{"cross form", "Show.Name.3x08.mkv", Episode{Season: 3, Episode: 8}, true},
		{"cross multi", "Show.Name.1x02x03.mkv", Episode{Season: 1, Episode: 2, EndEpisode: 3}, true},
		{"verbose", "Show Season 2 Episode 7.mkv", Episode{Season: 2, Episode: 7}, true},
		{"date", "Show.Name.2023-05-15.mkv", Episode{Season: 2023, Episode: 515, Date: "2023-05-15"}, true},
		{"date january", "Daily.2024-01-15.mkv", Episode{Season: 2024, Episode: 115, Date: "2024-01-15"}, true},
		{"season zero", "Show.S00E03.mkv", Episode{Season: 0, Episode: 3}, true},
		{"no pattern", "Plain Movie.mkv", Episode{}, false},
		{"empty", "", Episode{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEpisode(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseEpisode(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseEpisode(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEpisodePatternOrder(t *testing.T) {
	// SxxEyy wins over the cross form when both could match.
	got, ok := ParseEpisode("Show.S02E03.1x99.mkv")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Season != 2 || got.Episode != 3 {
		t.Errorf("got %+v, want season 2 episode 3", got)
	}
}
