package store

import "database/sql"

// Album is a release grouping songs through the contains table
type Album struct {
	ID          int64
	Title       string `validate:"required"`
	ReleaseYear *int   `validate:"omitnil,gte=0"`
}

// Key returns the surrogate key
func (a Album) Key() int64 { return a.ID }

// Equal compares albums by key only
func (a Album) Equal(other Album) bool { return a.ID == other.ID }

var albumTable = &Table[Album]{
	Name:    "albums",
	Key:     "album_id",
	Columns: []string{"title", "release_year"},
	OrderBy: []string{"title"},
	Search:  "title",
	Scan: func(row rowScanner, a *Album) error {
		var releaseYear sql.NullInt64
		if err := row.Scan(&a.ID, &a.Title, &releaseYear); err != nil {
			return err
		}
		a.ReleaseYear = intPtr(releaseYear)
		return nil
	},
	Values: func(a *Album) []any {
		return []any{a.Title, nullInt(a.ReleaseYear)}
	},
	ID: func(a *Album) *int64 { return &a.ID },
}
