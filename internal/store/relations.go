package store

// Relations groups the four association tables
type Relations struct {
	store *Store

	Performs  *Link[Artist, Song, string]
	Receives  *Link[Artist, Award, string]
	BelongsTo *Link[Song, Genre, string]
	Contains  *Link[Album, Song, int]
}

// AlbumTotals describes an album whose contains rows disagree on no_of_songs
type AlbumTotals struct {
	AlbumID  int64
	Rows     int
	Distinct int
	Min      int
	Max      int
}

const (
	totalSongsSQL       = "SELECT no_of_songs FROM contains WHERE album_id = ? AND no_of_songs IS NOT NULL LIMIT 1"
	updateTotalSongsSQL = "UPDATE contains SET no_of_songs = ? WHERE album_id = ?"
	divergentTotalsSQL  = `
		SELECT album_id, COUNT(*), COUNT(DISTINCT no_of_songs), MIN(no_of_songs), MAX(no_of_songs)
		FROM contains
		WHERE no_of_songs IS NOT NULL
		GROUP BY album_id
		HAVING COUNT(DISTINCT no_of_songs) > 1
		ORDER BY album_id`
)

func newRelations(s *Store) *Relations {
	return &Relations{
		store:     s,
		Performs:  newLink[Artist, Song, string](s, "performs", "venue", artistTable, songTable),
		Receives:  newLink[Artist, Award, string](s, "receives", "role", artistTable, awardTable),
		BelongsTo: newLink[Song, Genre, string](s, "belongs_to", "assigned_by", songTable, genreTable),
		Contains:  newLink[Album, Song, int](s, "contains", "no_of_songs", albumTable, songTable),
	}
}

// TotalSongsInAlbum returns the no_of_songs value of one of the album's
// rows. Which row is unspecified when rows disagree.
func (r *Relations) TotalSongsInAlbum(albumID int64) (int, error) {
	var total int
	if err := r.store.db.QueryRow(totalSongsSQL, albumID).Scan(&total); err != nil {
		return 0, fail("total", "contains", err)
	}
	return total, nil
}

// AddSongToAlbum links songID to albumID, reusing the album's current
// no_of_songs value or 1 when the album has no rows yet.
func (r *Relations) AddSongToAlbum(albumID, songID int64) error {
	total, err := r.TotalSongsInAlbum(albumID)
	if IsNotFound(err) {
		total = 1
	} else if err != nil {
		return err
	}
	return r.Contains.Link(albumID, songID, total)
}

// UpdateAlbumTotalSongs overwrites no_of_songs on every row of the album
func (r *Relations) UpdateAlbumTotalSongs(albumID int64, total int) (int64, error) {
	result, err := r.store.db.Exec(updateTotalSongsSQL, total, albumID)
	if err != nil {
		return 0, fail("update total", "contains", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fail("update total", "contains", err)
	}
	if n == 0 {
		return 0, notFound("update total", "contains")
	}
	return n, nil
}

// DivergentAlbumTotals lists albums whose rows carry different no_of_songs values
func (r *Relations) DivergentAlbumTotals() ([]AlbumTotals, error) {
	rows, err := r.store.db.Query(divergentTotalsSQL)
	if err != nil {
		return nil, fail("divergent totals", "contains", err)
	}
	defer rows.Close()

	out := make([]AlbumTotals, 0)
	for rows.Next() {
		var t AlbumTotals
		if err := rows.Scan(&t.AlbumID, &t.Rows, &t.Distinct, &t.Min, &t.Max); err != nil {
			return nil, fail("divergent totals", "contains", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("divergent totals", "contains", err)
	}
	return out, nil
}

// OrphanedLinks counts, per association table, rows whose entity is gone
func (r *Relations) OrphanedLinks() (map[string]int, error) {
	counters := []struct {
		name  string
		count func() (int, error)
	}{
		{r.Performs.Name(), r.Performs.Orphans},
		{r.Receives.Name(), r.Receives.Orphans},
		{r.BelongsTo.Name(), r.BelongsTo.Orphans},
		{r.Contains.Name(), r.Contains.Orphans},
	}

	out := make(map[string]int, len(counters))
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return nil, err
		}
		out[c.name] = n
	}
	return out, nil
}
