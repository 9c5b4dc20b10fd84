// Package nfo reads Kodi-style sidecar metadata files (movie.nfo,
// tvshow.nfo, per-episode .nfo). Parsing is tolerant: unknown elements are
// ignored and malformed field values leave the field unset. Only a missing
// title makes a file unusable.
package nfo

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoTitle marks a structurally valid NFO that carries no title element.
var ErrNoTitle = errors.New("nfo has no title")

// Details carries the fields a sidecar file contributed. Zero values mean
// the file did not provide the field; Season and Episode use -1 for absent.
type Details struct {
	Title         string
	OriginalTitle string
	SortTitle     string
	Overview      string
	Tagline       string
	MPAA          string
	Runtime       int // minutes
	Rating        float64
	Year          int
	Premiered     string // YYYY-MM-DD
	Genres        []string
	Studios       []string
	Actors        []Actor
	Directors     []string
	Writers       []string
	Producers     []string

	Season  int
	Episode int
}

// Actor is one cast credit.
type Actor struct {
	Name string
	Role string
}

type xmlMovie struct {
	XMLName       xml.Name     `xml:"movie"`
	Title         string       `xml:"title"`
	OriginalTitle string       `xml:"originaltitle"`
	SortTitle     string       `xml:"sorttitle"`
	Plot          string       `xml:"plot"`
	Outline       string       `xml:"outline"`
	Tagline       string       `xml:"tagline"`
	MPAA          string       `xml:"mpaa"`
	Runtime       string       `xml:"runtime"`
	Rating        string       `xml:"rating"`
	Ratings       *xmlRatings  `xml:"ratings"`
	Year          string       `xml:"year"`
	Premiered     string       `xml:"premiered"`
	Aired         string       `xml:"aired"`
	Genres        []string     `xml:"genre"`
	Studios       []string     `xml:"studio"`
	Actors        []xmlActor   `xml:"actor"`
	Directors     []string     `xml:"director"`
	Credits       []string     `xml:"credits"`
	Producers     []string     `xml:"producer"`
	FileInfo      *xmlFileInfo `xml:"fileinfo"`
}

type xmlShow struct {
	XMLName       xml.Name    `xml:"tvshow"`
	Title         string      `xml:"title"`
	OriginalTitle string      `xml:"originaltitle"`
	SortTitle     string      `xml:"sorttitle"`
	Plot          string      `xml:"plot"`
	Tagline       string      `xml:"tagline"`
	MPAA          string      `xml:"mpaa"`
	Runtime       string      `xml:"runtime"`
	Rating        string      `xml:"rating"`
	Ratings       *xmlRatings `xml:"ratings"`
	Year          string      `xml:"year"`
	Premiered     string      `xml:"premiered"`
	Aired         string      `xml:"aired"`
	Genres        []string    `xml:"genre"`
	Studios       []string    `xml:"studio"`
	Actors        []xmlActor  `xml:"actor"`
	Directors     []string    `xml:"director"`
	Credits       []string    `xml:"credits"`
	Producers     []string    `xml:"producer"`
}

type xmlEpisode struct {
	XMLName   xml.Name     `xml:"episodedetails"`
	Title     string       `xml:"title"`
	Plot      string       `xml:"plot"`
	Runtime   string       `xml:"runtime"`
	Rating    string       `xml:"rating"`
	Ratings   *xmlRatings  `xml:"ratings"`
	Year      string       `xml:"year"`
	Premiered string       `xml:"premiered"`
	Aired     string       `xml:"aired"`
	Season    string       `xml:"season"`
	Episode   string       `xml:"episode"`
	Genres    []string     `xml:"genre"`
	Actors    []xmlActor   `xml:"actor"`
	Directors []string     `xml:"director"`
	Credits   []string     `xml:"credits"`
	FileInfo  *xmlFileInfo `xml:"fileinfo"`
}

type xmlActor struct {
	Name string `xml:"name"`
	Role string `xml:"role"`
}

type xmlRatings struct {
	Ratings []xmlRating `xml:"rating"`
}

type xmlRating struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type xmlFileInfo struct {
	StreamDetails struct {
		Video struct {
			DurationInSeconds string `xml:"durationinseconds"`
		} `xml:"video"`
	} `xml:"streamdetails"`
}

// ReadMovie parses a movie.nfo file.
func ReadMovie(path string) (*Details, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m xmlMovie
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if strings.TrimSpace(m.Title) == "" {
		return nil, ErrNoTitle
	}

	d := &Details{
		Title:         strings.TrimSpace(m.Title),
		OriginalTitle: strings.TrimSpace(m.OriginalTitle),
		SortTitle:     strings.TrimSpace(m.SortTitle),
		Overview:      firstNonEmpty(m.Plot, m.Outline),
		Tagline:       strings.TrimSpace(m.Tagline),
		MPAA:          strings.TrimSpace(m.MPAA),
		Runtime:       parseRuntime(m.Runtime, m.FileInfo),
		Rating:        parseRating(m.Rating, m.Ratings),
		Year:          parseInt(m.Year),
		Premiered:     parseDate(m.Premiered, m.Aired),
		Genres:        trimAll(m.Genres),
		Studios:       trimAll(m.Studios),
		Actors:        parseActors(m.Actors),
		Directors:     trimAll(m.Directors),
		Writers:       trimAll(m.Credits),
		Producers:     trimAll(m.Producers),
		Season:        -1,
		Episode:       -1,
	}
	return d, nil
}

// ReadShow parses a tvshow.nfo file.
func ReadShow(path string) (*Details, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s xmlShow
	if err := xml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if strings.TrimSpace(s.Title) == "" {
		return nil, ErrNoTitle
	}

	d := &Details{
		Title:         strings.TrimSpace(s.Title),
		OriginalTitle: strings.TrimSpace(s.OriginalTitle),
		SortTitle:     strings.TrimSpace(s.SortTitle),
		Overview:      strings.TrimSpace(s.Plot),
		Tagline:       strings.TrimSpace(s.Tagline),
		MPAA:          strings.TrimSpace(s.MPAA),
		Runtime:       parseInt(s.Runtime),
		Rating:        parseRating(s.Rating, s.Ratings),
		Year:          parseInt(s.Year),
		Premiered:     parseDate(s.Premiered, s.Aired),
		Genres:        trimAll(s.Genres),
		Studios:       trimAll(s.Studios),
		Actors:        parseActors(s.Actors),
		Directors:     trimAll(s.Directors),
		Writers:       trimAll(s.Credits),
		Producers:     trimAll(s.Producers),
		Season:        -1,
		Episode:       -1,
	}
	return d, nil
}

// ReadEpisode parses a per-episode .nfo file.
func ReadEpisode(path string) (*Details, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var e xmlEpisode
	if err := xml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if strings.TrimSpace(e.Title) == "" {
		return nil, ErrNoTitle
	}

	d := &Details{
		Title:     strings.TrimSpace(e.Title),
		Overview:  strings.TrimSpace(e.Plot),
		Runtime:   parseRuntime(e.Runtime, e.FileInfo),
		Rating:    parseRating(e.Rating, e.Ratings),
		Year:      parseInt(e.Year),
		Premiered: parseDate(e.Premiered, e.Aired),
		Genres:    trimAll(e.Genres),
		Actors:    parseActors(e.Actors),
		Directors: trimAll(e.Directors),
		Writers:   trimAll(e.Credits),
		Season:    parseNumber(e.Season),
		Episode:   parseNumber(e.Episode),
	}
	return d, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseNumber is parseInt with -1 for absent, so season 0 stays meaningful.
func parseNumber(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// parseRuntime takes the runtime element in minutes, falling back to the
// stream duration recorded under fileinfo.
func parseRuntime(runtime string, fi *xmlFileInfo) int {
	if n := parseInt(runtime); n > 0 {
		return n
	}
	if fi != nil {
		if secs := parseInt(fi.StreamDetails.Video.DurationInSeconds); secs > 0 {
			return secs / 60
		}
	}
	return 0
}

// parseRating prefers the legacy <rating> element, then the first entry of
// a <ratings> block.
func parseRating(rating string, block *xmlRatings) float64 {
	if r, err := strconv.ParseFloat(strings.TrimSpace(rating), 64); err == nil && r >= 0 {
		return r
	}
	if block != nil {
		for _, r := range block.Ratings {
			if v, err := strconv.ParseFloat(strings.TrimSpace(r.Value), 64); err == nil && v >= 0 {
				return v
			}
		}
	}
	return 0
}

// parseDate returns the first value that parses as YYYY-MM-DD.
func parseDate(vals ...string) string {
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err == nil {
			return v
		}
	}
	return ""
}

func parseActors(in []xmlActor) []Actor {
	var out []Actor
	for _, a := range in {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		out = append(out, Actor{Name: name, Role: strings.TrimSpace(a.Role)})
	}
	return out
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
