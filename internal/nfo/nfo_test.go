package nfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNFO(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadMovie(t *testing.T) {
	path := writeNFO(t, "movie.nfo", `<?xml version="1.0" encoding="UTF-8"?>
<movie>
  <title>Alpha &amp; Omega</title>
  <originaltitle>Alpha et Omega</originaltitle>
  <sorttitle>alpha omega</sorttitle>
  <plot>A test movie.</plot>
  <tagline>It begins.</tagline>
  <mpaa>PG-13</mpaa>
  <runtime>138</runtime>
  <rating>7.8</rating>
  <year>1999</year>
  <premiered>1999-03-31</premiered>
  <genre>Action</genre>
  <genre>Drama</genre>
  <studio>Test Studio</studio>
  <actor><name>Jane Doe</name><role>Lead</role></actor>
  <actor><name>John Roe</name><role>Support</role></actor>
  <director>Ann Smith</director>
  <credits>Bob Jones</credits>
</movie>`)

	d, err := ReadMovie(path)
	require.NoError(t, err)

	assert.Equal(t, "Alpha & Omega", d.Title)
	assert.Equal(t, "Alpha et Omega", d.OriginalTitle)
	assert.Equal(t, "alpha omega", d.SortTitle)
	assert.Equal(t, "A test movie.", d.Overview)
	assert.Equal(t, "It begins.", d.Tagline)
	assert.Equal(t, "PG-13", d.MPAA)
	assert.Equal(t, 138, d.Runtime)
	assert.Equal(t, 7.8, d.Rating)
	assert.Equal(t, 1999, d.Year)
	assert.Equal(t, "1999-03-31", d.Premiered)
	assert.Equal(t, []string{"Action", "Drama"}, d.Genres)
	assert.Equal(t, []string{"Test Studio"}, d.Studios)
	assert.Equal(t, []Actor{{Name: "Jane Doe", Role: "Lead"}, {Name: "John Roe", Role: "Support"}}, d.Actors)
	assert.Equal(t, []string{"Ann Smith"}, d.Directors)
	assert.Equal(t, []string{"Bob Jones"}, d.Writers)
	assert.Equal(t, -1, d.Season)
	assert.Equal(t, -1, d.Episode)
}

func TestReadMovieRatingsBlock(t *testing.T) {
	path := writeNFO(t, "movie.nfo", `<movie>
  <title>Rated</title>
  <ratings>
    <rating name="imdb" max="10"><value>8.1</value><votes>1000</votes></rating>
  </ratings>
</movie>`)

	d, err := ReadMovie(path)
	require.NoError(t, err)
	assert.Equal(t, 8.1, d.Rating)
}

func TestReadMovieRuntimeFromStreamDetails(t *testing.T) {
	path := writeNFO(t, "movie.nfo", `<movie>
  <title>Long One</title>
  <fileinfo>
    <streamdetails>
      <video><durationinseconds>7265</durationinseconds></video>
    </streamdetails>
  </fileinfo>
</movie>`)

	d, err := ReadMovie(path)
	require.NoError(t, err)
	assert.Equal(t, 121, d.Runtime)
}

func TestReadMovieToleratesBadValues(t *testing.T) {
	path := writeNFO(t, "movie.nfo", `<movie>
  <title>Oddball</title>
  <year>next year</year>
  <runtime>about two hours</runtime>
  <rating>great</rating>
  <premiered>sometime in spring</premiered>
  <aired>2001-09-08</aired>
</movie>`)

	d, err := ReadMovie(path)
	require.NoError(t, err)
	assert.Equal(t, "Oddball", d.Title)
	assert.Equal(t, 0, d.Year)
	assert.Equal(t, 0, d.Runtime)
	assert.Equal(t, 0.0, d.Rating)
	assert.Equal(t, "2001-09-08", d.Premiered, "aired is the fallback date")
}

func TestReadMovieNoTitle(t *testing.T) {
	path := writeNFO(t, "movie.nfo", `<movie><year>2001</year></movie>`)
	_, err := ReadMovie(path)
	require.ErrorIs(t, err, ErrNoTitle)
}

func TestReadMovieMalformed(t *testing.T) {
	path := writeNFO(t, "movie.nfo", `https://example.com/title/tt0000000/`)
	_, err := ReadMovie(path)
	require.Error(t, err)
}

func TestReadMovieMissingFile(t *testing.T) {
	_, err := ReadMovie(filepath.Join(t.TempDir(), "absent.nfo"))
	require.Error(t, err)
}

func TestReadShow(t *testing.T) {
	path := writeNFO(t, "tvshow.nfo", `<tvshow>
  <title>Test Show</title>
  <plot>Episodic happenings.</plot>
  <year>2010</year>
  <premiered>2010-09-20</premiered>
  <genre>Comedy</genre>
  <studio>TV Corp</studio>
</tvshow>`)

	d, err := ReadShow(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Show", d.Title)
	assert.Equal(t, "Episodic happenings.", d.Overview)
	assert.Equal(t, 2010, d.Year)
	assert.Equal(t, []string{"Comedy"}, d.Genres)
	assert.Equal(t, []string{"TV Corp"}, d.Studios)
}

func TestReadEpisode(t *testing.T) {
	path := writeNFO(t, "ep.nfo", `<episodedetails>
  <title>The Middle One</title>
  <season>2</season>
  <episode>5</episode>
  <plot>Things happen.</plot>
  <runtime>42</runtime>
  <aired>2011-02-14</aired>
</episodedetails>`)

	d, err := ReadEpisode(path)
	require.NoError(t, err)
	assert.Equal(t, "The Middle One", d.Title)
	assert.Equal(t, 2, d.Season)
	assert.Equal(t, 5, d.Episode)
	assert.Equal(t, 42, d.Runtime)
	assert.Equal(t, "2011-02-14", d.Premiered)
}

func TestReadEpisodePlacementAbsent(t *testing.T) {
	path := writeNFO(t, "ep.nfo", `<episodedetails><title>Floating</title></episodedetails>`)
	d, err := ReadEpisode(path)
	require.NoError(t, err)
	assert.Equal(t, -1, d.Season)
	assert.Equal(t, -1, d.Episode)
}

func TestReadEpisodeSeasonZero(t *testing.T) {
	path := writeNFO(t, "ep.nfo", `<episodedetails>
  <title>Behind the Scenes</title>
  <season>0</season>
  <episode>1</episode>
</episodedetails>`)
	d, err := ReadEpisode(path)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Season)
	assert.Equal(t, 1, d.Episode)
}
