package store

// Award is a distinction an artist receives
type Award struct {
	ID        int64
	AwardName string `validate:"required"`
	YearWon   int    `validate:"required"`
}

// Key returns the surrogate key
func (a Award) Key() int64 { return a.ID }

// Equal compares awards by key only
func (a Award) Equal(other Award) bool { return a.ID == other.ID }

// Awards list newest first, then by name
var awardTable = &Table[Award]{
	Name:    "awards",
	Key:     "award_id",
	Columns: []string{"award_name", "year_won"},
	OrderBy: []string{"year_won DESC", "award_name"},
	Search:  "award_name",
	Scan: func(row rowScanner, a *Award) error {
		return row.Scan(&a.ID, &a.AwardName, &a.YearWon)
	},
	Values: func(a *Award) []any {
		return []any{a.AwardName, a.YearWon}
	},
	ID: func(a *Award) *int64 { return &a.ID },
}
