package scanner

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/vmunix/medley/internal/catalog"
	"github.com/vmunix/medley/pkg/medianame"
)

var videoExts = map[string]bool{
	"mkv": true, "mp4": true, "avi": true, "m4v": true,
	"mov": true, "wmv": true, "flv": true, "webm": true,
}

var imageExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "webp": true,
}

var subtitleExts = map[string]bool{
	"srt": true, "vtt": true,
}

// entry is one classified directory member.
type entry struct {
	name string
	path string
	size int64
}

// listing groups one directory's members by what the builder cares about.
// os.ReadDir returns names sorted, so every slice here is in name order
// and scans stay deterministic.
type listing struct {
	path   string
	dirs   []entry
	videos []entry
	images []entry
	subs   []entry
	nfos   []entry
}

func listDir(path string) (*listing, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	l := &listing{path: path}
	for _, de := range entries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		e := entry{name: name, path: filepath.Join(path, name)}
		if de.IsDir() {
			l.dirs = append(l.dirs, e)
			continue
		}
		switch ext := fileExt(name); {
		case videoExts[ext]:
			if info, err := de.Info(); err == nil {
				e.size = info.Size()
			}
			l.videos = append(l.videos, e)
		case ext == "nfo":
			l.nfos = append(l.nfos, e)
		case imageExts[ext]:
			l.images = append(l.images, e)
		case subtitleExts[ext]:
			l.subs = append(l.subs, e)
		}
	}
	return l, nil
}

// fileExt returns the lowercased extension without the dot.
func fileExt(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// fileStem returns the name with its final extension removed.
func fileStem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// assignImage routes an artwork file into an image set by the role token
// in its name. The first image seen becomes the primary when nothing
// better claims the slot.
func assignImage(set *catalog.ImageSet, name, path string) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "poster"):
		set.Primary = path
	case strings.Contains(lower, "fanart"), strings.Contains(lower, "backdrop"):
		set.Backdrop = path
	case strings.Contains(lower, "logo"):
		set.Logo = path
	case strings.Contains(lower, "thumb"):
		set.Thumb = path
	case strings.Contains(lower, "banner"):
		set.Banner = path
	case fileStem(lower) == "folder", fileStem(lower) == "cover":
		set.Primary = path
	default:
		if set.Primary == "" {
			set.Primary = path
		}
	}
}

// seasonArtRe matches artwork scoped to a season rather than the show:
// "season01-poster.jpg", "season-specials-poster.png", "season-all-banner.jpg".
var seasonArtRe = regexp.MustCompile(`(?i)^season[-_ ]?(all|specials|\d+)[-_. ]`)

const (
	seasonScopeAll      = -1
	seasonScopeSpecials = 0
)

// seasonArtScope reports which season an artwork file belongs to.
// "all" maps to seasonScopeAll and applies wherever a season lacks art.
func seasonArtScope(name string) (int, bool) {
	m := seasonArtRe.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	switch strings.ToLower(m[1]) {
	case "all":
		return seasonScopeAll, true
	case "specials":
		return seasonScopeSpecials, true
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// attachSubtitles pairs every subtitle with the video whose stem is the
// longest prefix of the subtitle's stem, keyed by video path. Subtitles
// matching no video are dropped.
func attachSubtitles(videos, subs []entry) map[string][]catalog.Subtitle {
	if len(subs) == 0 || len(videos) == 0 {
		return nil
	}
	out := make(map[string][]catalog.Subtitle)
	for _, sub := range subs {
		subStem := fileStem(sub.name)
		best, bestLen := -1, -1
		for i, v := range videos {
			vs := fileStem(v.name)
			if strings.HasPrefix(subStem, vs) && len(vs) > bestLen {
				best, bestLen = i, len(vs)
			}
		}
		if best < 0 {
			continue
		}
		out[videos[best].path] = append(out[videos[best].path], catalog.Subtitle{
			Path:     sub.path,
			Language: medianame.SubtitleLanguage(subStem),
			Format:   catalog.SubtitleFormat(fileExt(sub.name)),
		})
	}
	return out
}
