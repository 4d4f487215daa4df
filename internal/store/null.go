package store

import "database/sql"

// Ptr returns a pointer to v, for filling optional record fields
func Ptr[T any](v T) *T {
	return &v
}

// nullInt maps an absent value to SQL NULL rather than to 0
func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// intPtr trusts the driver's NULL flag, so a stored 0 stays a non-nil 0
func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}
