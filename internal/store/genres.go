package store

import "database/sql"

// Genre classifies songs through the belongs_to table
type Genre struct {
	ID          int64
	Name        string `validate:"required"`
	Description *string
}

// Key returns the surrogate key
func (g Genre) Key() int64 { return g.ID }

// Equal compares genres by key only
func (g Genre) Equal(other Genre) bool { return g.ID == other.ID }

var genreTable = &Table[Genre]{
	Name:    "genres",
	Key:     "genre_id",
	Columns: []string{"name", "description"},
	OrderBy: []string{"name"},
	Search:  "name",
	Scan: func(row rowScanner, g *Genre) error {
		var description sql.NullString
		if err := row.Scan(&g.ID, &g.Name, &description); err != nil {
			return err
		}
		g.Description = stringPtr(description)
		return nil
	},
	Values: func(g *Genre) []any {
		return []any{g.Name, nullString(g.Description)}
	},
	ID: func(g *Genre) *int64 { return &g.ID },
}
