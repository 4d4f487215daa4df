package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/franz/music-catalog/internal/util"
	"github.com/go-playground/validator/v10"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Kind classifies why a store operation could not be completed
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConstraint
	KindConnection
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConstraint:
		return "constraint violation"
	case KindConnection:
		return "connection error"
	case KindInvalid:
		return "invalid input"
	default:
		return "unknown error"
	}
}

// Error is returned by every repository and relationship operation
type Error struct {
	Op    string
	Table string
	Kind  Kind
	Err   error
}

func (e *Error) Error() string {
	target := e.Op
	if e.Table != "" {
		target = e.Op + " " + e.Table
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", target, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", target, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the util sentinel errors by kind
func (e *Error) Is(target error) bool {
	switch target {
	case util.ErrNotFound:
		return e.Kind == KindNotFound
	case util.ErrConstraint:
		return e.Kind == KindConstraint
	case util.ErrConnection:
		return e.Kind == KindConnection
	case util.ErrInvalidInput:
		return e.Kind == KindInvalid
	}
	return false
}

// KindOf returns the kind carried by err, or KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a not-found store error
func IsNotFound(err error) bool {
	return errors.Is(err, util.ErrNotFound)
}

func notFound(op, table string) error {
	return &Error{Op: op, Table: table, Kind: KindNotFound}
}

// classify wraps a driver error into an *Error with its kind
func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		return err
	}

	return &Error{Op: op, Table: table, Kind: kindOf(err), Err: err}
}

func kindOf(err error) Kind {
	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return KindInvalid
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return KindConnection
	}

	var serr *sqlite.Error
	if errors.As(err, &serr) {
		// Extended result codes keep the primary code in the low byte
		switch serr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return KindConstraint
		case sqlite3.SQLITE_CANTOPEN,
			sqlite3.SQLITE_BUSY,
			sqlite3.SQLITE_LOCKED,
			sqlite3.SQLITE_IOERR,
			sqlite3.SQLITE_NOTADB,
			sqlite3.SQLITE_READONLY,
			sqlite3.SQLITE_FULL:
			return KindConnection
		}
	}

	// A closed pool and a failed open are only recognizable by message
	msg := err.Error()
	if strings.Contains(msg, "database is closed") || strings.Contains(msg, "unable to open database") {
		return KindConnection
	}

	return KindUnknown
}

// fail classifies err and logs it unless it is a plain not-found
func fail(op, table string, err error) error {
	err = classify(op, table, err)
	if KindOf(err) != KindNotFound {
		util.ErrorLog("%v", err)
	}
	return err
}
