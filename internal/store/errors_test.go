package store

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/franz/music-catalog/internal/util"
)

func TestClassifyNoRows(t *testing.T) {
	err := classify("get", "songs", sql.ErrNoRows)

	if KindOf(err) != KindNotFound {
		t.Errorf("expected not found kind, got %v", KindOf(err))
	}
	if !errors.Is(err, util.ErrNotFound) {
		t.Error("expected errors.Is to match util.ErrNotFound")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		t.Error("expected the driver error to stay in the chain")
	}
}

func TestClassifyNotNullConstraint(t *testing.T) {
	s := openTestStore(t)

	_, err := s.DB().Exec("INSERT INTO artists (name) VALUES (NULL)")
	if err == nil {
		t.Fatal("expected NOT NULL violation")
	}

	err = classify("create", "artists", err)
	if !errors.Is(err, util.ErrConstraint) {
		t.Errorf("expected constraint error, got %v", err)
	}
}

func TestRepositoryReportsConstraintViolation(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.DB().Exec("CREATE UNIQUE INDEX ux_genres_name ON genres(name)"); err != nil {
		t.Fatalf("create index: %v", err)
	}
	if err := s.Genres().Create(&Genre{Name: "Blues"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := &Genre{Name: "Blues"}
	err := s.Genres().Create(dup)
	if KindOf(err) != KindConstraint {
		t.Fatalf("expected constraint kind, got %v", err)
	}
	if dup.ID != 0 {
		t.Errorf("ID should stay unset on failure, got %d", dup.ID)
	}
}

func TestClosedStoreIsConnectionError(t *testing.T) {
	s := openTestStore(t)
	s.Close()

	if _, err := s.Artists().GetAll(); !errors.Is(err, util.ErrConnection) {
		t.Errorf("GetAll: expected connection error, got %v", err)
	}
	if err := s.Relations().Performs.Link(1, 1, "x"); KindOf(err) != KindConnection {
		t.Errorf("Link: expected connection kind, got %v", err)
	}
}

func TestClassifyKeepsExistingError(t *testing.T) {
	orig := notFound("delete", "albums")
	wrapped := fmt.Errorf("removing album: %w", orig)

	if got := classify("other", "x", wrapped); got != wrapped {
		t.Errorf("expected classified error to pass through, got %v", got)
	}
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("expected kind to survive wrapping, got %v", KindOf(wrapped))
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Op: "get", Table: "artists", Kind: KindNotFound}
	if got := err.Error(); got != "get artists: not found" {
		t.Errorf("unexpected message %q", got)
	}

	err = &Error{Op: "open", Kind: KindConnection, Err: errors.New("boom")}
	if got := err.Error(); got != "open: connection error: boom" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestUnknownErrorsMatchNoSentinel(t *testing.T) {
	err := classify("list", "songs", errors.New("something odd"))

	if KindOf(err) != KindUnknown {
		t.Errorf("expected unknown kind, got %v", KindOf(err))
	}
	for _, sentinel := range []error{util.ErrNotFound, util.ErrConstraint, util.ErrConnection, util.ErrInvalidInput} {
		if errors.Is(err, sentinel) {
			t.Errorf("unknown error should not match %v", sentinel)
		}
	}
}
