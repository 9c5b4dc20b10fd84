package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/medley/internal/catalog"
)

func TestListDirClassifies(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Movie.mkv", "Movie.en.srt", "poster.jpg", "movie.nfo",
		"notes.txt", ".hidden.mkv",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "extras"), 0o755))

	l, err := listDir(dir)
	require.NoError(t, err)

	require.Len(t, l.videos, 1)
	assert.Equal(t, "Movie.mkv", l.videos[0].name)
	assert.Equal(t, int64(1), l.videos[0].size)
	require.Len(t, l.subs, 1)
	assert.Equal(t, "Movie.en.srt", l.subs[0].name)
	require.Len(t, l.images, 1)
	require.Len(t, l.nfos, 1)
	require.Len(t, l.dirs, 1)
	assert.Equal(t, "extras", l.dirs[0].name)
}

func TestAssignImage(t *testing.T) {
	var set catalog.ImageSet
	assignImage(&set, "Movie-poster.jpg", "/a/poster.jpg")
	assignImage(&set, "fanart.png", "/a/fanart.png")
	assignImage(&set, "clearlogo.png", "/a/logo.png")
	assignImage(&set, "landscape-thumb.jpg", "/a/thumb.jpg")
	assignImage(&set, "banner.jpg", "/a/banner.jpg")

	assert.Equal(t, "/a/poster.jpg", set.Primary)
	assert.Equal(t, "/a/fanart.png", set.Backdrop)
	assert.Equal(t, "/a/logo.png", set.Logo)
	assert.Equal(t, "/a/thumb.jpg", set.Thumb)
	assert.Equal(t, "/a/banner.jpg", set.Banner)
}

func TestAssignImageBackdropAlias(t *testing.T) {
	var set catalog.ImageSet
	assignImage(&set, "backdrop.jpg", "/a/backdrop.jpg")
	assert.Equal(t, "/a/backdrop.jpg", set.Backdrop)
}

func TestAssignImageFolderIsPrimary(t *testing.T) {
	var set catalog.ImageSet
	assignImage(&set, "folder.jpg", "/a/folder.jpg")
	assert.Equal(t, "/a/folder.jpg", set.Primary)
}

func TestAssignImageFirstImageFallback(t *testing.T) {
	var set catalog.ImageSet
	assignImage(&set, "scan001.jpg", "/a/scan001.jpg")
	assert.Equal(t, "/a/scan001.jpg", set.Primary)

	// a later unnamed image must not displace it
	assignImage(&set, "scan002.jpg", "/a/scan002.jpg")
	assert.Equal(t, "/a/scan001.jpg", set.Primary)
}

func TestSeasonArtScope(t *testing.T) {
	tests := []struct {
		name  string
		scope int
		ok    bool
	}{
		{"season01-poster.jpg", 1, true},
		{"Season12-banner.png", 12, true},
		{"season-02-poster.jpg", 2, true},
		{"season 3 poster.jpg", 3, true},
		{"season-specials-poster.jpg", seasonScopeSpecials, true},
		{"season-all-fanart.jpg", seasonScopeAll, true},
		{"poster.jpg", 0, false},
		{"seasoning.jpg", 0, false},
		{"my-season01-poster.jpg", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, ok := seasonArtScope(tt.name)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.scope, scope)
			}
		})
	}
}

func TestAttachSubtitles(t *testing.T) {
	videos := []entry{
		{name: "Movie.mkv", path: "/m/Movie.mkv"},
		{name: "Movie.Part2.mkv", path: "/m/Movie.Part2.mkv"},
	}
	subs := []entry{
		{name: "Movie.en.srt", path: "/m/Movie.en.srt"},
		{name: "Movie.Part2.en.srt", path: "/m/Movie.Part2.en.srt"},
		{name: "Movie.Part2.de.vtt", path: "/m/Movie.Part2.de.vtt"},
		{name: "Unrelated.en.srt", path: "/m/Unrelated.en.srt"},
	}

	got := attachSubtitles(videos, subs)

	require.Len(t, got["/m/Movie.mkv"], 1)
	assert.Equal(t, "en", got["/m/Movie.mkv"][0].Language)
	assert.Equal(t, catalog.SubtitleSRT, got["/m/Movie.mkv"][0].Format)

	// the longer stem wins even though both are prefixes
	require.Len(t, got["/m/Movie.Part2.mkv"], 2)
	assert.Equal(t, catalog.SubtitleVTT, got["/m/Movie.Part2.mkv"][1].Format)
	assert.Equal(t, "de", got["/m/Movie.Part2.mkv"][1].Language)
}

func TestAttachSubtitlesNoVideos(t *testing.T) {
	assert.Nil(t, attachSubtitles(nil, []entry{{name: "x.srt"}}))
}
