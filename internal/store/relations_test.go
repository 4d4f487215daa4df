package store

import (
	"errors"
	"testing"

	"github.com/franz/music-catalog/internal/util"
)

func mustCreate[T any](t *testing.T, repo *Repository[T], rec *T) {
	t.Helper()
	if err := repo.Create(rec); err != nil {
		t.Fatalf("create in %s: %v", repo.Table().Name, err)
	}
}

func TestPerformsScenario(t *testing.T) {
	s := openTestStore(t)
	rel := s.Relations()

	alice := &Artist{Name: "Alice", Country: Ptr("US"), BirthYear: Ptr(1990)}
	mustCreate(t, s.Artists(), alice)
	songA := &Song{Title: "Song A", DurationSeconds: Ptr(210), ReleaseYear: Ptr(2020)}
	mustCreate(t, s.Songs(), songA)

	if alice.ID != 1 || songA.ID != 1 {
		t.Fatalf("expected IDs 1 and 1, got %d and %d", alice.ID, songA.ID)
	}

	if err := rel.Performs.Link(1, 1, "Venue X"); err != nil {
		t.Fatalf("link: %v", err)
	}

	songs, err := rel.Performs.Rights(1)
	if err != nil {
		t.Fatalf("rights: %v", err)
	}
	if len(songs) != 1 || songs[0].Title != "Song A" || !songs[0].Equal(*songA) {
		t.Fatalf("expected [Song A], got %+v", songs)
	}

	if _, err := rel.Performs.Unlink(1, 1); err != nil {
		t.Fatalf("unlink: %v", err)
	}

	songs, err = rel.Performs.Rights(1)
	if err != nil {
		t.Fatalf("rights after unlink: %v", err)
	}
	if len(songs) != 0 {
		t.Errorf("expected no songs after unlink, got %+v", songs)
	}
}

func TestDuplicateLinksAndUnlink(t *testing.T) {
	s := openTestStore(t)
	rel := s.Relations()

	artist := &Artist{Name: "Bob"}
	mustCreate(t, s.Artists(), artist)
	award := &Award{AwardName: "Grammy", YearWon: 2020}
	mustCreate(t, s.Awards(), award)

	for i := 0; i < 2; i++ {
		if err := rel.Receives.Link(artist.ID, award.ID, "Lead"); err != nil {
			t.Fatalf("link %d: %v", i, err)
		}
	}

	if n, _ := rel.Receives.Count(); n != 2 {
		t.Fatalf("expected 2 association rows, got %d", n)
	}

	// Plain join: duplicate rows show up twice
	awards, err := rel.Receives.Rights(artist.ID)
	if err != nil {
		t.Fatalf("rights: %v", err)
	}
	if len(awards) != 2 {
		t.Errorf("expected award listed once per row, got %d", len(awards))
	}

	removed, err := rel.Receives.Unlink(artist.ID, award.ID)
	if err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected both rows removed, got %d", removed)
	}
	if n, _ := rel.Receives.Count(); n != 0 {
		t.Errorf("expected empty table, got %d rows", n)
	}

	if _, err := rel.Receives.Unlink(artist.ID, award.ID); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected not found on second unlink, got %v", err)
	}
}

func TestLeftsAndRightsOrdering(t *testing.T) {
	s := openTestStore(t)
	rel := s.Relations()

	song := &Song{Title: "Shared"}
	mustCreate(t, s.Songs(), song)

	var genres []*Genre
	for _, name := range []string{"Soul", "Funk", "Disco"} {
		g := &Genre{Name: name}
		mustCreate(t, s.Genres(), g)
		genres = append(genres, g)
		if err := rel.BelongsTo.Link(song.ID, g.ID, "curator"); err != nil {
			t.Fatalf("link: %v", err)
		}
	}

	got, err := rel.BelongsTo.Rights(song.ID)
	if err != nil {
		t.Fatalf("rights: %v", err)
	}
	want := []string{"Disco", "Funk", "Soul"}
	if len(got) != len(want) {
		t.Fatalf("expected %d genres, got %d", len(want), len(got))
	}
	for i, g := range got {
		if g.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], g.Name)
		}
	}

	songs, err := rel.BelongsTo.Lefts(genres[0].ID)
	if err != nil {
		t.Fatalf("lefts: %v", err)
	}
	if len(songs) != 1 || songs[0].Title != "Shared" {
		t.Errorf("expected [Shared], got %+v", songs)
	}
}

func TestLinkRowsCarryAttribute(t *testing.T) {
	s := openTestStore(t)
	rel := s.Relations()

	if err := rel.Performs.Link(3, 9, "Hall"); err != nil {
		t.Fatalf("link: %v", err)
	}
	if _, err := s.db.Exec("INSERT INTO performs (artist_id, song_id, venue) VALUES (3, 10, NULL)"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows, err := rel.Performs.Rows(3)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].RightID != 9 || rows[0].Attr == nil || *rows[0].Attr != "Hall" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].RightID != 10 || rows[1].Attr != nil {
		t.Errorf("expected absent venue on second row: %+v", rows[1])
	}
}

func TestAddSongToAlbumDefaultsToOne(t *testing.T) {
	s := openTestStore(t)
	rel := s.Relations()

	album := &Album{Title: "Debut"}
	mustCreate(t, s.Albums(), album)
	song := &Song{Title: "Opener"}
	mustCreate(t, s.Songs(), song)

	if _, err := rel.TotalSongsInAlbum(album.ID); !IsNotFound(err) {
		t.Fatalf("expected not found for empty album, got %v", err)
	}

	if err := rel.AddSongToAlbum(album.ID, song.ID); err != nil {
		t.Fatalf("add song: %v", err)
	}

	total, err := rel.TotalSongsInAlbum(album.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 1 {
		t.Errorf("expected default total 1, got %d", total)
	}
}

func TestAddSongToAlbumReusesExistingTotal(t *testing.T) {
	s := openTestStore(t)
	rel := s.Relations()

	album := &Album{Title: "Double"}
	mustCreate(t, s.Albums(), album)

	if err := rel.Contains.Link(album.ID, 1, 12); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := rel.AddSongToAlbum(album.ID, 2); err != nil {
		t.Fatalf("add song: %v", err)
	}

	rows, err := rel.Contains.Rows(album.ID)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Attr == nil || *r.Attr != 12 {
			t.Errorf("expected no_of_songs 12 on every row, got %+v", r)
		}
	}
}

func TestUpdateAlbumTotalSongs(t *testing.T) {
	s := openTestStore(t)
	rel := s.Relations()

	for song := int64(1); song <= 3; song++ {
		if err := rel.Contains.Link(5, song, int(song)); err != nil {
			t.Fatalf("link: %v", err)
		}
	}

	divergent, err := rel.DivergentAlbumTotals()
	if err != nil {
		t.Fatalf("divergent: %v", err)
	}
	if len(divergent) != 1 || divergent[0].AlbumID != 5 || divergent[0].Distinct != 3 {
		t.Fatalf("expected album 5 with 3 distinct totals, got %+v", divergent)
	}
	if divergent[0].Min != 1 || divergent[0].Max != 3 || divergent[0].Rows != 3 {
		t.Errorf("unexpected totals summary: %+v", divergent[0])
	}

	n, err := rel.UpdateAlbumTotalSongs(5, 3)
	if err != nil {
		t.Fatalf("update total: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows updated, got %d", n)
	}

	divergent, err = rel.DivergentAlbumTotals()
	if err != nil {
		t.Fatalf("divergent: %v", err)
	}
	if len(divergent) != 0 {
		t.Errorf("expected consistent totals after update, got %+v", divergent)
	}

	if _, err := rel.UpdateAlbumTotalSongs(99, 1); !IsNotFound(err) {
		t.Errorf("expected not found for album without rows, got %v", err)
	}
}

func TestDeleteLeavesOrphanedLinks(t *testing.T) {
	s := openTestStore(t)
	rel := s.Relations()

	artist := &Artist{Name: "Gone"}
	mustCreate(t, s.Artists(), artist)
	song := &Song{Title: "Left Behind"}
	mustCreate(t, s.Songs(), song)

	if err := rel.Performs.Link(artist.ID, song.ID, "Club"); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := s.Artists().Delete(artist.ID); err != nil {
		t.Fatalf("delete artist: %v", err)
	}

	if n, _ := rel.Performs.Count(); n != 1 {
		t.Errorf("delete must not cascade, expected 1 link row, got %d", n)
	}

	orphans, err := rel.OrphanedLinks()
	if err != nil {
		t.Fatalf("orphans: %v", err)
	}
	if orphans["performs"] != 1 {
		t.Errorf("expected 1 orphaned performs row, got %d", orphans["performs"])
	}
	for _, table := range []string{"receives", "belongs_to", "contains"} {
		if orphans[table] != 0 {
			t.Errorf("expected no orphans in %s, got %d", table, orphans[table])
		}
	}
}
