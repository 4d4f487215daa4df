package store

import (
	"database/sql"
	"fmt"
)

// LinkRow is one association row with its attribute
type LinkRow[A any] struct {
	LeftID  int64
	RightID int64
	Attr    *A
}

// Link is a many-to-many association table between L and R carrying one
// attribute of type A. Rows have no identity of their own: linking the
// same pair twice stores two rows.
type Link[L, R, A any] struct {
	store *Store
	name  string
	attr  string
	left  *Table[L]
	right *Table[R]

	insertSQL string
	deleteSQL string
	rightsSQL string
	leftsSQL  string
	rowsSQL   string
	countSQL  string
	orphanSQL string
}

func newLink[L, R, A any](s *Store, name, attr string, left *Table[L], right *Table[R]) *Link[L, R, A] {
	lk, rk := left.Key, right.Key
	return &Link[L, R, A]{
		store: s,
		name:  name,
		attr:  attr,
		left:  left,
		right: right,

		insertSQL: fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)", name, lk, rk, attr),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?", name, lk, rk),
		rightsSQL: fmt.Sprintf("SELECT %s FROM %s e JOIN %s l ON l.%s = e.%s WHERE l.%s = ? ORDER BY %s",
			right.selectList("e"), right.Name, name, rk, rk, lk, right.orderClause("e")),
		leftsSQL: fmt.Sprintf("SELECT %s FROM %s e JOIN %s l ON l.%s = e.%s WHERE l.%s = ? ORDER BY %s",
			left.selectList("e"), left.Name, name, lk, lk, rk, left.orderClause("e")),
		rowsSQL:  fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = ? ORDER BY rowid", lk, rk, attr, name, lk),
		countSQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", name),
		orphanSQL: fmt.Sprintf(`SELECT COUNT(*) FROM %s l
			WHERE NOT EXISTS (SELECT 1 FROM %s WHERE %s = l.%s)
			   OR NOT EXISTS (SELECT 1 FROM %s WHERE %s = l.%s)`,
			name, left.Name, lk, lk, right.Name, rk, rk),
	}
}

// Name returns the association table name
func (k *Link[L, R, A]) Name() string {
	return k.name
}

// Link inserts one association row. No uniqueness check is made.
func (k *Link[L, R, A]) Link(leftID, rightID int64, attr A) error {
	if _, err := k.store.db.Exec(k.insertSQL, leftID, rightID, attr); err != nil {
		return fail("link", k.name, err)
	}
	return nil
}

// Unlink deletes every row for the pair and returns how many were removed
func (k *Link[L, R, A]) Unlink(leftID, rightID int64) (int64, error) {
	result, err := k.store.db.Exec(k.deleteSQL, leftID, rightID)
	if err != nil {
		return 0, fail("unlink", k.name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fail("unlink", k.name, err)
	}
	if n == 0 {
		return 0, notFound("unlink", k.name)
	}
	return n, nil
}

// Rights returns the R records linked to leftID, in R's display order
func (k *Link[L, R, A]) Rights(leftID int64) ([]R, error) {
	rows, err := k.store.db.Query(k.rightsSQL, leftID)
	if err != nil {
		return nil, fail("list", k.name, err)
	}
	defer rows.Close()
	return scanAll("list", k.right, rows)
}

// Lefts returns the L records linked to rightID, in L's display order
func (k *Link[L, R, A]) Lefts(rightID int64) ([]L, error) {
	rows, err := k.store.db.Query(k.leftsSQL, rightID)
	if err != nil {
		return nil, fail("list", k.name, err)
	}
	defer rows.Close()
	return scanAll("list", k.left, rows)
}

// Rows returns the raw association rows for leftID in insertion order
func (k *Link[L, R, A]) Rows(leftID int64) ([]LinkRow[A], error) {
	rows, err := k.store.db.Query(k.rowsSQL, leftID)
	if err != nil {
		return nil, fail("rows", k.name, err)
	}
	defer rows.Close()

	out := make([]LinkRow[A], 0)
	for rows.Next() {
		var row LinkRow[A]
		var attr sql.Null[A]
		if err := rows.Scan(&row.LeftID, &row.RightID, &attr); err != nil {
			return nil, fail("rows", k.name, err)
		}
		if attr.Valid {
			row.Attr = &attr.V
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("rows", k.name, err)
	}
	return out, nil
}

// Count returns the number of association rows
func (k *Link[L, R, A]) Count() (int, error) {
	var n int
	if err := k.store.db.QueryRow(k.countSQL).Scan(&n); err != nil {
		return 0, fail("count", k.name, err)
	}
	return n, nil
}

// Orphans counts rows pointing at an entity that no longer exists
func (k *Link[L, R, A]) Orphans() (int, error) {
	var n int
	if err := k.store.db.QueryRow(k.orphanSQL).Scan(&n); err != nil {
		return 0, fail("orphans", k.name, err)
	}
	return n, nil
}
