package report

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franz/music-catalog/internal/store"
	"github.com/franz/music-catalog/internal/util"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()

	prev := util.SetLogOutput(io.Discard)
	t.Cleanup(func() { util.SetLogOutput(prev) })

	s, err := store.OpenWithOptions("", &store.OpenOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func countOf(counts []Count, name string) int {
	for _, c := range counts {
		if c.Name == name {
			return c.Count
		}
	}
	return -1
}

func TestGenerateCountsRows(t *testing.T) {
	s := setupStore(t)

	artist := &store.Artist{Name: "Alice"}
	require.NoError(t, s.Artists().Create(artist))
	album := &store.Album{Title: "First"}
	require.NoError(t, s.Albums().Create(album))
	for _, title := range []string{"One", "Two"} {
		song := &store.Song{Title: title}
		require.NoError(t, s.Songs().Create(song))
		require.NoError(t, s.Relations().Performs.Link(artist.ID, song.ID, "Studio"))
		require.NoError(t, s.Relations().AddSongToAlbum(album.ID, song.ID))
	}

	summary, err := Generate(s)
	require.NoError(t, err)

	assert.Equal(t, 1, countOf(summary.Entities, "artists"))
	assert.Equal(t, 2, countOf(summary.Entities, "songs"))
	assert.Equal(t, 0, countOf(summary.Entities, "awards"))
	assert.Equal(t, 2, countOf(summary.Links, "performs"))
	assert.Equal(t, 2, countOf(summary.Links, "contains"))
	assert.True(t, summary.Healthy())
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestGenerateFindsProblems(t *testing.T) {
	s := setupStore(t)

	album := &store.Album{Title: "Split"}
	require.NoError(t, s.Albums().Create(album))
	a := &store.Song{Title: "A"}
	b := &store.Song{Title: "B"}
	require.NoError(t, s.Songs().Create(a))
	require.NoError(t, s.Songs().Create(b))
	require.NoError(t, s.Relations().Contains.Link(album.ID, a.ID, 10))
	require.NoError(t, s.Relations().Contains.Link(album.ID, b.ID, 12))

	genre := &store.Genre{Name: "Gone"}
	require.NoError(t, s.Genres().Create(genre))
	require.NoError(t, s.Relations().BelongsTo.Link(a.ID, genre.ID, "manual"))
	require.NoError(t, s.Genres().Delete(genre.ID))

	summary, err := Generate(s)
	require.NoError(t, err)

	require.Len(t, summary.DivergentAlbums, 1)
	assert.Equal(t, album.ID, summary.DivergentAlbums[0].AlbumID)
	assert.Equal(t, 10, summary.DivergentAlbums[0].Min)
	assert.Equal(t, 12, summary.DivergentAlbums[0].Max)
	assert.Equal(t, 1, summary.OrphanedLinks["belongs_to"])
	assert.Equal(t, 1, summary.Orphans())
	assert.False(t, summary.Healthy())
}

func TestWriteUsesThousandsSeparators(t *testing.T) {
	summary := &Summary{
		DatabasePath: "catalog.db",
		Entities:     []Count{{Name: "songs", Count: 12345}},
		Links:        []Count{{Name: "performs", Count: 7}},
		OrphanedLinks: map[string]int{
			"performs": 0,
			"contains": 1500,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, summary.Write(&buf))
	out := buf.String()

	assert.Contains(t, out, "catalog.db")
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "album totals      consistent")
	assert.Contains(t, out, "orphaned links    1,500 rows")
	assert.Contains(t, out, "contains")
	assert.NotContains(t, out, "    performs")
}
