package store

import "database/sql"

// Artist is a performer in the catalog
type Artist struct {
	ID        int64
	Name      string `validate:"required"`
	Country   *string
	BirthYear *int `validate:"omitnil,gte=0"`
}

// Key returns the surrogate key
func (a Artist) Key() int64 { return a.ID }

// Equal compares artists by key only
func (a Artist) Equal(other Artist) bool { return a.ID == other.ID }

var artistTable = &Table[Artist]{
	Name:    "artists",
	Key:     "artist_id",
	Columns: []string{"name", "country", "birth_year"},
	OrderBy: []string{"name"},
	Search:  "name",
	Scan: func(row rowScanner, a *Artist) error {
		var country sql.NullString
		var birthYear sql.NullInt64
		if err := row.Scan(&a.ID, &a.Name, &country, &birthYear); err != nil {
			return err
		}
		a.Country = stringPtr(country)
		a.BirthYear = intPtr(birthYear)
		return nil
	},
	Values: func(a *Artist) []any {
		return []any{a.Name, nullString(a.Country), nullInt(a.BirthYear)}
	},
	ID: func(a *Artist) *int64 { return &a.ID },
}
