package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// Table maps a record type onto an entity table.
//
// Columns excludes the key column. Scan reads the key followed by Columns,
// Values returns the bind values for Columns in the same order.
type Table[T any] struct {
	Name    string
	Key     string
	Columns []string
	// OrderBy terms in display order, without table qualifier ("name", "year_won DESC")
	OrderBy []string
	// Search is the column matched by SearchByName
	Search string

	Scan   func(row rowScanner, rec *T) error
	Values func(rec *T) []any
	ID     func(rec *T) *int64
}

func (t *Table[T]) selectList(alias string) string {
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, qualify(alias, t.Key))
	for _, c := range t.Columns {
		cols = append(cols, qualify(alias, c))
	}
	return strings.Join(cols, ", ")
}

// orderClause orders by the display terms, then by key for a stable result
func (t *Table[T]) orderClause(alias string) string {
	terms := make([]string, 0, len(t.OrderBy)+1)
	for _, term := range t.OrderBy {
		terms = append(terms, qualify(alias, term))
	}
	terms = append(terms, qualify(alias, t.Key))
	return strings.Join(terms, ", ")
}

func qualify(alias, col string) string {
	if alias == "" {
		return col
	}
	return alias + "." + col
}

// Repository provides CRUD and search over one entity table
type Repository[T any] struct {
	store *Store
	table *Table[T]

	insertSQL string
	getSQL    string
	allSQL    string
	updateSQL string
	deleteSQL string
	searchSQL string
	countSQL  string
}

// NewRepository builds the statements for table once
func NewRepository[T any](s *Store, t *Table[T]) *Repository[T] {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	sets := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		sets[i] = c + " = ?"
	}

	sel := fmt.Sprintf("SELECT %s FROM %s", t.selectList(""), t.Name)
	order := t.orderClause("")

	return &Repository[T]{
		store: s,
		table: t,

		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			t.Name, strings.Join(t.Columns, ", "), placeholders),
		getSQL: fmt.Sprintf("%s WHERE %s = ?", sel, t.Key),
		allSQL: fmt.Sprintf("%s ORDER BY %s", sel, order),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
			t.Name, strings.Join(sets, ", "), t.Key),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.Name, t.Key),
		searchSQL: fmt.Sprintf("%s WHERE %s LIKE ? ORDER BY %s", sel, t.Search, order),
		countSQL:  fmt.Sprintf("SELECT COUNT(*) FROM %s", t.Name),
	}
}

// Table returns the table definition backing the repository
func (r *Repository[T]) Table() *Table[T] {
	return r.table
}

// Create inserts rec and assigns the generated key to it
func (r *Repository[T]) Create(rec *T) error {
	if err := r.store.validate.Struct(rec); err != nil {
		return fail("create", r.table.Name, err)
	}

	result, err := r.store.db.Exec(r.insertSQL, r.table.Values(rec)...)
	if err != nil {
		return fail("create", r.table.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fail("create", r.table.Name, err)
	}
	*r.table.ID(rec) = id

	return nil
}

// GetByID returns the record with the given key
func (r *Repository[T]) GetByID(id int64) (*T, error) {
	rec := new(T)
	if err := r.table.Scan(r.store.db.QueryRow(r.getSQL, id), rec); err != nil {
		return nil, fail("get", r.table.Name, err)
	}
	return rec, nil
}

// GetAll returns every record in display order
func (r *Repository[T]) GetAll() ([]T, error) {
	return r.query("list", r.allSQL)
}

// SearchByName returns records whose search column contains fragment.
// LIKE wildcards inside fragment are not escaped.
func (r *Repository[T]) SearchByName(fragment string) ([]T, error) {
	return r.query("search", r.searchSQL, "%"+fragment+"%")
}

// Update overwrites every column of the row keyed by rec's ID
func (r *Repository[T]) Update(rec *T) error {
	if err := r.store.validate.Struct(rec); err != nil {
		return fail("update", r.table.Name, err)
	}

	args := append(r.table.Values(rec), *r.table.ID(rec))
	result, err := r.store.db.Exec(r.updateSQL, args...)
	if err != nil {
		return fail("update", r.table.Name, err)
	}
	return affected("update", r.table.Name, result)
}

// Delete removes the row with the given key. Link rows referring to it
// are left in place.
func (r *Repository[T]) Delete(id int64) error {
	result, err := r.store.db.Exec(r.deleteSQL, id)
	if err != nil {
		return fail("delete", r.table.Name, err)
	}
	return affected("delete", r.table.Name, result)
}

// Count returns the number of rows in the table
func (r *Repository[T]) Count() (int, error) {
	var n int
	if err := r.store.db.QueryRow(r.countSQL).Scan(&n); err != nil {
		return 0, fail("count", r.table.Name, err)
	}
	return n, nil
}

func (r *Repository[T]) query(op, query string, args ...any) ([]T, error) {
	rows, err := r.store.db.Query(query, args...)
	if err != nil {
		return nil, fail(op, r.table.Name, err)
	}
	defer rows.Close()

	return scanAll(op, r.table, rows)
}

func scanAll[T any](op string, t *Table[T], rows *sql.Rows) ([]T, error) {
	records := make([]T, 0)
	for rows.Next() {
		var rec T
		if err := t.Scan(rows, &rec); err != nil {
			return nil, fail(op, t.Name, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(op, t.Name, err)
	}
	return records, nil
}

func affected(op, table string, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fail(op, table, err)
	}
	if n == 0 {
		return notFound(op, table)
	}
	return nil
}
