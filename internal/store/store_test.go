package store

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/franz/music-catalog/internal/util"
)

// openTestStore opens a private in-memory catalog and silences store error logs
func openTestStore(t *testing.T) *Store {
	t.Helper()

	prev := util.SetLogOutput(io.Discard)
	t.Cleanup(func() { util.SetLogOutput(prev) })

	s, err := OpenWithOptions("", &OpenOptions{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreOpenAndMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	version, err := s.getSchemaVersion()
	if err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("expected schema version %d, got %d", currentSchemaVersion, version)
	}

	tables := []string{
		"artists", "albums", "songs", "genres", "awards",
		"performs", "receives", "belongs_to", "contains", "schema_version",
	}
	for _, table := range tables {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}

	v2Indexes := []string{"idx_performs_artist", "idx_contains_album", "idx_awards_year"}
	for _, index := range v2Indexes {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query index %s: %v", index, err)
		}
		if count != 1 {
			t.Errorf("expected index %s to exist (schema v2)", index)
		}
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	artist := &Artist{Name: "Alice"}
	if err := s.Artists().Create(artist); err != nil {
		t.Fatalf("failed to create artist: %v", err)
	}
	s.Close()

	s, err = Open(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()

	got, err := s.Artists().GetByID(artist.ID)
	if err != nil {
		t.Fatalf("expected artist after reopen: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("expected name Alice, got %q", got.Name)
	}

	var versions int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&versions); err != nil {
		t.Fatalf("failed to count versions: %v", err)
	}
	if versions != currentSchemaVersion {
		t.Errorf("migrations should not be re-applied, got %d version rows", versions)
	}
}

func TestStoreCheckIntegrity(t *testing.T) {
	s := openTestStore(t)

	if err := s.CheckIntegrity(); err != nil {
		t.Errorf("expected fresh database to pass integrity check: %v", err)
	}
}

func TestOpenUnreachablePath(t *testing.T) {
	prev := util.SetLogOutput(io.Discard)
	defer util.SetLogOutput(prev)

	dbPath := filepath.Join(t.TempDir(), "missing", "dir", "catalog.db")

	_, err := Open(dbPath)
	if err == nil {
		t.Fatal("expected open to fail for a missing directory")
	}
	if !errors.Is(err, util.ErrConnection) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestSQLiteVersion(t *testing.T) {
	if v := SQLiteVersion(); v == "" {
		t.Error("expected a SQLite version string")
	}
}
