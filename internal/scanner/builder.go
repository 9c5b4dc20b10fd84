package scanner

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vmunix/medley/internal/catalog"
	"github.com/vmunix/medley/internal/nfo"
	"github.com/vmunix/medley/pkg/medianame"
)

// build assembles one collection's items. Item identity always derives
// from the raw directory name, so ids survive sidecar edits and rescans.
type build struct {
	collectionID string
	report       *Report
}

func (b *build) movie(dir entry) *catalog.Movie {
	l, err := listDir(dir.path)
	if err != nil {
		b.report.record(SeveritySubtree, dir.path, err)
		return nil
	}
	if len(l.videos) == 0 {
		b.report.record(SeverityItem, dir.path, fmt.Errorf("no video files"))
		return nil
	}

	title, year := medianame.ParseTitle(dir.name)
	m := &catalog.Movie{
		ID:    catalog.ItemID(b.collectionID, dir.name),
		Title: title,
		Year:  year,
	}
	for _, img := range l.images {
		assignImage(&m.Images, img.name, img.path)
	}

	if path, ok := pickNFO(l.nfos, "movie.nfo"); ok {
		d, err := nfo.ReadMovie(path)
		if err != nil {
			b.report.record(SeverityDegraded, path, err)
		} else {
			mergeMovie(m, d)
		}
	}
	if m.SortTitle == "" {
		m.SortTitle = catalog.SortTitle(m.Title)
	}

	subs := attachSubtitles(l.videos, l.subs)
	for _, v := range l.videos {
		m.Sources = append(m.Sources, catalog.MediaSource{
			Path:      v.path,
			Size:      v.size,
			Subtitles: subs[v.path],
		})
	}
	sortSources(m.Sources)
	return m
}

func (b *build) show(dir entry) *catalog.Show {
	l, err := listDir(dir.path)
	if err != nil {
		b.report.record(SeveritySubtree, dir.path, err)
		return nil
	}

	title, year := medianame.ParseTitle(dir.name)
	s := &catalog.Show{
		ID:      catalog.ItemID(b.collectionID, dir.name),
		Title:   title,
		Year:    year,
		Seasons: make(map[int]*catalog.Season),
	}

	// Season-scoped artwork lives beside the season dirs; collect it here
	// and hand it out once the seasons exist.
	seasonArt := make(map[int]*catalog.ImageSet)
	var allArt catalog.ImageSet
	for _, img := range l.images {
		if scope, ok := seasonArtScope(img.name); ok {
			if scope == seasonScopeAll {
				assignImage(&allArt, img.name, img.path)
				continue
			}
			set := seasonArt[scope]
			if set == nil {
				set = &catalog.ImageSet{}
				seasonArt[scope] = set
			}
			assignImage(set, img.name, img.path)
			continue
		}
		assignImage(&s.Images, img.name, img.path)
	}

	if path, ok := pickNFO(l.nfos, "tvshow.nfo"); ok {
		d, err := nfo.ReadShow(path)
		if err != nil {
			b.report.record(SeverityDegraded, path, err)
		} else {
			mergeShow(s, d)
		}
	}
	if s.SortTitle == "" {
		s.SortTitle = catalog.SortTitle(s.Title)
	}

	for _, sub := range l.dirs {
		num, ok := medianame.ParseSeason(sub.name)
		if !ok {
			continue
		}
		if season := b.season(s.ID, num, sub); season != nil {
			s.Seasons[num] = season
		}
	}

	for num, season := range s.Seasons {
		if set := seasonArt[num]; set != nil {
			fillImages(&season.Images, *set)
		}
		fillImages(&season.Images, allArt)
	}
	return s
}

func (b *build) season(showID string, num int, dir entry) *catalog.Season {
	l, err := listDir(dir.path)
	if err != nil {
		b.report.record(SeveritySubtree, dir.path, err)
		return nil
	}

	season := &catalog.Season{
		ID:       catalog.SeasonID(showID, num),
		Number:   num,
		Episodes: make(map[int]*catalog.Episode),
	}

	subs := attachSubtitles(l.videos, l.subs)
	byStem := make(map[string]*catalog.Episode)
	for _, v := range l.videos {
		ep, sidecar := b.episodePlacement(v, l.nfos)
		if ep == nil {
			continue
		}
		if ep.Season != num {
			b.report.record(SeverityItem, v.path,
				fmt.Errorf("episode belongs to season %d, not %d", ep.Season, num))
			continue
		}

		source := catalog.MediaSource{Path: v.path, Size: v.size, Subtitles: subs[v.path]}
		if existing, ok := season.Episodes[ep.Episode]; ok {
			existing.Sources = append(existing.Sources, source)
			sortSources(existing.Sources)
			byStem[fileStem(v.name)] = existing
			continue
		}

		episode := &catalog.Episode{
			ID:      catalog.EpisodeID(season.ID, ep.Episode),
			Season:  ep.Season,
			Episode: ep.Episode,
			Title:   medianame.CleanTitle(v.name),
			Sources: []catalog.MediaSource{source},
		}
		if ep.Date != "" {
			episode.Premiered = ep.Date
		}
		if sidecar != nil {
			mergeEpisode(episode, sidecar)
		}
		season.Episodes[ep.Episode] = episode
		byStem[fileStem(v.name)] = episode
	}
	b.report.Episodes += len(season.Episodes)

	for _, img := range l.images {
		if scope, ok := seasonArtScope(img.name); ok {
			if scope == num || scope == seasonScopeAll {
				assignImage(&season.Images, img.name, img.path)
			}
			continue
		}
		stem := fileStem(img.name)
		if base, ok := strings.CutSuffix(stem, "-thumb"); ok {
			if ep := byStem[base]; ep != nil {
				ep.Images.Thumb = img.path
			}
			continue
		}
		if ep := byStem[stem]; ep != nil && ep.Images.Primary == "" {
			ep.Images.Primary = img.path
		}
	}
	return season
}

// episodePlacement works out which season and episode a video belongs to.
// A sidecar with explicit numbering wins over the filename.
func (b *build) episodePlacement(v entry, nfos []entry) (*medianame.Episode, *nfo.Details) {
	var sidecar *nfo.Details
	if path, ok := findNFO(nfos, fileStem(v.name)+".nfo"); ok {
		d, err := nfo.ReadEpisode(path)
		if err != nil {
			b.report.record(SeverityDegraded, path, err)
		} else {
			sidecar = d
		}
	}

	ep, ok := medianame.ParseEpisode(v.name)
	if sidecar != nil && sidecar.Season >= 0 && sidecar.Episode >= 0 {
		return &medianame.Episode{Season: sidecar.Season, Episode: sidecar.Episode}, sidecar
	}
	if !ok {
		b.report.record(SeverityItem, v.path, fmt.Errorf("no episode numbering in filename"))
		return nil, sidecar
	}
	return &ep, sidecar
}

func mergeMovie(m *catalog.Movie, d *nfo.Details) {
	if d.Title != "" {
		m.Title = d.Title
	}
	if d.SortTitle != "" {
		m.SortTitle = d.SortTitle
	}
	if d.Overview != "" {
		m.Overview = d.Overview
	}
	if d.Tagline != "" {
		m.Tagline = d.Tagline
	}
	if d.MPAA != "" {
		m.MPAA = d.MPAA
	}
	if d.Runtime > 0 {
		m.Runtime = d.Runtime
	}
	if d.Rating > 0 {
		m.Rating = d.Rating
	}
	if d.Year > 0 {
		m.Year = d.Year
	}
	if d.Premiered != "" {
		m.Premiered = d.Premiered
	}
	if len(d.Genres) > 0 {
		m.Genres = normalizeTerms(d.Genres)
	}
	if len(d.Studios) > 0 {
		m.Studios = normalizeTerms(d.Studios)
	}
	if people := peopleOf(d); len(people) > 0 {
		m.People = people
	}
}

func mergeShow(s *catalog.Show, d *nfo.Details) {
	if d.Title != "" {
		s.Title = d.Title
	}
	if d.SortTitle != "" {
		s.SortTitle = d.SortTitle
	}
	if d.Overview != "" {
		s.Overview = d.Overview
	}
	if d.Tagline != "" {
		s.Tagline = d.Tagline
	}
	if d.MPAA != "" {
		s.MPAA = d.MPAA
	}
	if d.Runtime > 0 {
		s.Runtime = d.Runtime
	}
	if d.Rating > 0 {
		s.Rating = d.Rating
	}
	if d.Year > 0 {
		s.Year = d.Year
	}
	if d.Premiered != "" {
		s.Premiered = d.Premiered
	}
	if len(d.Genres) > 0 {
		s.Genres = normalizeTerms(d.Genres)
	}
	if len(d.Studios) > 0 {
		s.Studios = normalizeTerms(d.Studios)
	}
	if people := peopleOf(d); len(people) > 0 {
		s.People = people
	}
}

func mergeEpisode(e *catalog.Episode, d *nfo.Details) {
	if d.Title != "" {
		e.Title = d.Title
	}
	if d.Overview != "" {
		e.Overview = d.Overview
	}
	if d.Runtime > 0 {
		e.Runtime = d.Runtime
	}
	if d.Rating > 0 {
		e.Rating = d.Rating
	}
	if d.Premiered != "" {
		e.Premiered = d.Premiered
	}
}

func peopleOf(d *nfo.Details) []catalog.Person {
	var out []catalog.Person
	for _, a := range d.Actors {
		out = append(out, catalog.Person{Name: a.Name, Role: catalog.RoleActor})
	}
	for _, name := range d.Directors {
		out = append(out, catalog.Person{Name: name, Role: catalog.RoleDirector})
	}
	for _, name := range d.Writers {
		out = append(out, catalog.Person{Name: name, Role: catalog.RoleWriter})
	}
	for _, name := range d.Producers {
		out = append(out, catalog.Person{Name: name, Role: catalog.RoleProducer})
	}
	return out
}

// normalizeTerms de-duplicates genre and studio lists case-insensitively
// and folds every entry to title case, so "sci-fi" and "Sci-Fi" collapse
// into one genre across the whole catalog.
func normalizeTerms(in []string) []string {
	caser := cases.Title(language.English)
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, caser.String(key))
	}
	return out
}

// sortSources orders media sources largest first so Sources[0] is always
// the primary version. Paths break ties to keep rescans stable.
func sortSources(sources []catalog.MediaSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Size != sources[j].Size {
			return sources[i].Size > sources[j].Size
		}
		return sources[i].Path < sources[j].Path
	})
}

// pickNFO prefers the conventionally named sidecar, then the first one found.
func pickNFO(nfos []entry, preferred string) (string, bool) {
	if path, ok := findNFO(nfos, preferred); ok {
		return path, true
	}
	if len(nfos) > 0 {
		return nfos[0].path, true
	}
	return "", false
}

func findNFO(nfos []entry, name string) (string, bool) {
	for _, n := range nfos {
		if n.name == name {
			return n.path, true
		}
	}
	return "", false
}

// fillImages copies artwork from fallback into any slot dst leaves empty.
func fillImages(dst *catalog.ImageSet, fallback catalog.ImageSet) {
	if dst.Primary == "" {
		dst.Primary = fallback.Primary
	}
	if dst.Backdrop == "" {
		dst.Backdrop = fallback.Backdrop
	}
	if dst.Logo == "" {
		dst.Logo = fallback.Logo
	}
	if dst.Thumb == "" {
		dst.Thumb = fallback.Thumb
	}
	if dst.Banner == "" {
		dst.Banner = fallback.Banner
	}
}
