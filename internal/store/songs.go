package store

import (
	"database/sql"
	"fmt"
)

// Song is a single recording
type Song struct {
	ID              int64
	Title           string `validate:"required"`
	DurationSeconds *int   `validate:"omitnil,gte=0"`
	ReleaseYear     *int   `validate:"omitnil,gte=0"`
}

// Key returns the surrogate key
func (s Song) Key() int64 { return s.ID }

// Equal compares songs by key only
func (s Song) Equal(other Song) bool { return s.ID == other.ID }

// Duration formats the duration as m:ss, or "-" when unknown
func (s Song) Duration() string {
	if s.DurationSeconds == nil {
		return "-"
	}
	d := *s.DurationSeconds
	return fmt.Sprintf("%d:%02d", d/60, d%60)
}

var songTable = &Table[Song]{
	Name:    "songs",
	Key:     "song_id",
	Columns: []string{"title", "duration", "release_year"},
	OrderBy: []string{"title"},
	Search:  "title",
	Scan: func(row rowScanner, s *Song) error {
		var duration, releaseYear sql.NullInt64
		if err := row.Scan(&s.ID, &s.Title, &duration, &releaseYear); err != nil {
			return err
		}
		s.DurationSeconds = intPtr(duration)
		s.ReleaseYear = intPtr(releaseYear)
		return nil
	},
	Values: func(s *Song) []any {
		return []any{s.Title, nullInt(s.DurationSeconds), nullInt(s.ReleaseYear)}
	},
	ID: func(s *Song) *int64 { return &s.ID },
}
