package catalog

import (
	"fmt"
	"sort"
)

// Role classifies a credited person.
type Role string

const (
	RoleActor    Role = "actor"
	RoleDirector Role = "director"
	RoleWriter   Role = "writer"
	RoleProducer Role = "producer"
)

// Person is one credit on a movie or show.
type Person struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// ImageSet holds artwork paths by role. An empty path means the artwork
// was not found during the scan.
type ImageSet struct {
	Primary  string `json:"primary,omitempty"`
	Backdrop string `json:"backdrop,omitempty"`
	Logo     string `json:"logo,omitempty"`
	Thumb    string `json:"thumb,omitempty"`
	Banner   string `json:"banner,omitempty"`
}

// Image returns the path stored for the named artwork kind, accepting the
// filename spellings ("poster", "fanart") as aliases.
func (s ImageSet) Image(kind string) string {
	switch kind {
	case "primary", "poster":
		return s.Primary
	case "backdrop", "fanart":
		return s.Backdrop
	case "logo":
		return s.Logo
	case "thumb":
		return s.Thumb
	case "banner":
		return s.Banner
	}
	return ""
}

// IsZero reports whether no artwork was found at all.
func (s ImageSet) IsZero() bool {
	return s == ImageSet{}
}

// SubtitleFormat is the container format of a subtitle file.
type SubtitleFormat string

const (
	SubtitleSRT SubtitleFormat = "srt"
	SubtitleVTT SubtitleFormat = "vtt"
)

// Subtitle is a sidecar subtitle file associated with a media source.
type Subtitle struct {
	Path     string         `json:"path"`
	Language string         `json:"language,omitempty"` // empty when unknown
	Format   SubtitleFormat `json:"format"`
}

// MediaSource is one playable file backing an item.
type MediaSource struct {
	Path      string     `json:"path"`
	Size      int64      `json:"size"`
	Subtitles []Subtitle `json:"subtitles,omitempty"`
}

// Movie is a single film. Sources are ordered largest first; the first
// entry is the primary version.
type Movie struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	SortTitle string        `json:"sort_title,omitempty"`
	Overview  string        `json:"overview,omitempty"`
	Tagline   string        `json:"tagline,omitempty"`
	MPAA      string        `json:"mpaa,omitempty"`
	Runtime   int           `json:"runtime,omitempty"` // minutes
	Year      int           `json:"year,omitempty"`
	Premiered string        `json:"premiered,omitempty"` // YYYY-MM-DD
	Rating    float64       `json:"rating,omitempty"`
	Genres    []string      `json:"genres,omitempty"`
	Studios   []string      `json:"studios,omitempty"`
	People    []Person      `json:"people,omitempty"`
	Images    ImageSet      `json:"images"`
	Sources   []MediaSource `json:"sources"`
}

func (m *Movie) ItemID() string     { return m.ID }
func (m *Movie) ItemKind() ItemKind { return ItemMovie }
func (m *Movie) ItemName() string   { return m.Title }

// Show is a series holding seasons keyed by season number.
type Show struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	SortTitle string          `json:"sort_title,omitempty"`
	Overview  string          `json:"overview,omitempty"`
	Tagline   string          `json:"tagline,omitempty"`
	MPAA      string          `json:"mpaa,omitempty"`
	Runtime   int             `json:"runtime,omitempty"`
	Year      int             `json:"year,omitempty"`
	Premiered string          `json:"premiered,omitempty"`
	Rating    float64         `json:"rating,omitempty"`
	Genres    []string        `json:"genres,omitempty"`
	Studios   []string        `json:"studios,omitempty"`
	People    []Person        `json:"people,omitempty"`
	Images    ImageSet        `json:"images"`
	Seasons   map[int]*Season `json:"seasons"`
}

func (s *Show) ItemID() string     { return s.ID }
func (s *Show) ItemKind() ItemKind { return ItemShow }
func (s *Show) ItemName() string   { return s.Title }

// SortedSeasons returns seasons ordered by number.
func (s *Show) SortedSeasons() []*Season {
	out := make([]*Season, 0, len(s.Seasons))
	for _, season := range s.Seasons {
		out = append(out, season)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// EpisodeCount sums episodes across all seasons.
func (s *Show) EpisodeCount() int {
	n := 0
	for _, season := range s.Seasons {
		n += len(season.Episodes)
	}
	return n
}

// Season groups a show's episodes by episode number. Season 0 holds specials.
type Season struct {
	ID       string           `json:"id"`
	Number   int              `json:"season"`
	Images   ImageSet         `json:"images"`
	Episodes map[int]*Episode `json:"episodes"`
}

func (s *Season) ItemID() string     { return s.ID }
func (s *Season) ItemKind() ItemKind { return ItemSeason }

func (s *Season) ItemName() string {
	if s.Number == 0 {
		return "Specials"
	}
	return fmt.Sprintf("Season %d", s.Number)
}

// SortedEpisodes returns episodes ordered by episode number.
func (s *Season) SortedEpisodes() []*Episode {
	out := make([]*Episode, 0, len(s.Episodes))
	for _, ep := range s.Episodes {
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Episode < out[j].Episode })
	return out
}

// Episode is one episode of a show.
type Episode struct {
	ID        string        `json:"id"`
	Season    int           `json:"season"`
	Episode   int           `json:"episode"`
	Title     string        `json:"title"`
	Overview  string        `json:"overview,omitempty"`
	Runtime   int           `json:"runtime,omitempty"`
	Premiered string        `json:"premiered,omitempty"`
	Rating    float64       `json:"rating,omitempty"`
	Images    ImageSet      `json:"images"`
	Sources   []MediaSource `json:"sources"`
}

func (e *Episode) ItemID() string     { return e.ID }
func (e *Episode) ItemKind() ItemKind { return ItemEpisode }
func (e *Episode) ItemName() string   { return e.Title }

// ItemImages returns the artwork set attached to any catalog item.
func ItemImages(it Item) ImageSet {
	switch v := it.(type) {
	case *Movie:
		return v.Images
	case *Show:
		return v.Images
	case *Season:
		return v.Images
	case *Episode:
		return v.Images
	}
	return ImageSet{}
}
