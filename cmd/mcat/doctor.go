package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/franz/music-catalog/internal/store"
	"github.com/franz/music-catalog/internal/util"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the catalog database",
	Long: `Run diagnostic checks to ensure the catalog is usable and consistent.

This command checks:
- SQLite version
- Database accessibility and integrity
- Albums whose rows disagree on the song total
- Association rows that reference deleted records

Divergent totals and orphaned rows are reported as warnings; they are not
repaired.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.InfoLog("=== mcat doctor ===")

	results := []checkResult{checkSQLite()}

	dbPath := GetConfigString("db", defaultDB)
	dbResult, db := checkDatabase(dbPath)
	results = append(results, dbResult)
	if db != nil {
		defer db.Close()
		results = append(results, checkAlbumTotals(db), checkOrphanedLinks(db))
	}

	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		symbol := "✓"
		if r.error {
			symbol = "✗"
			hasErrors = true
		} else if r.warning {
			symbol = "⚠"
			hasWarnings = true
		}

		line := fmt.Sprintf("[%s] %s", symbol, r.name)
		if r.message != "" {
			line += fmt.Sprintf(": %s", r.message)
		}

		if r.error {
			util.ErrorLog("%s", line)
		} else if r.warning {
			util.WarnLog("%s", line)
		} else {
			util.SuccessLog("%s", line)
		}
	}

	if hasErrors {
		return fmt.Errorf("catalog diagnostics failed")
	} else if hasWarnings {
		util.WarnLog("Some checks produced warnings")
	} else {
		util.SuccessLog("All checks passed")
	}

	return nil
}

// checkSQLite verifies SQLite version
func checkSQLite() checkResult {
	version := store.SQLiteVersion()
	if version == "" {
		return checkResult{
			name:    "SQLite",
			error:   true,
			message: "unable to determine version",
		}
	}

	return checkResult{
		name:    "SQLite",
		message: fmt.Sprintf("version %s (built-in)", version),
	}
}

// checkDatabase verifies the database file and returns it opened when usable
func checkDatabase(dbPath string) (checkResult, *store.Store) {
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return checkResult{
				name:    "Database",
				message: fmt.Sprintf("%s (will be created on first use)", dbPath),
			}, nil
		}
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("cannot access %s: %v", dbPath, err),
		}, nil
	}

	if !info.Mode().IsRegular() {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("%s is not a regular file", dbPath),
		}, nil
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("cannot open %s: %v", dbPath, err),
		}, nil
	}

	if err := db.CheckIntegrity(); err != nil {
		db.Close()
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("integrity check failed: %v", err),
		}, nil
	}

	result := describeCatalog(db, dbPath, info.Size())
	if result.error {
		db.Close()
		return result, nil
	}
	return result, db
}

// describeCatalog summarizes row counts, failing when a table cannot be read
func describeCatalog(db *store.Store, dbPath string, size int64) checkResult {
	artists, err := db.Artists().Count()
	if err != nil {
		return checkResult{name: "Database", error: true, message: fmt.Sprintf("cannot count artists: %v", err)}
	}
	songs, err := db.Songs().Count()
	if err != nil {
		return checkResult{name: "Database", error: true, message: fmt.Sprintf("cannot count songs: %v", err)}
	}

	return checkResult{
		name: "Database",
		message: fmt.Sprintf("%s (%s, %s artists, %s songs)", dbPath,
			humanize.Bytes(uint64(size)), humanize.Comma(int64(artists)), humanize.Comma(int64(songs))),
	}
}

// checkAlbumTotals warns about albums whose rows carry different song totals
func checkAlbumTotals(db *store.Store) checkResult {
	divergent, err := db.Relations().DivergentAlbumTotals()
	if err != nil {
		return checkResult{name: "Album totals", error: true, message: err.Error()}
	}
	if len(divergent) == 0 {
		return checkResult{name: "Album totals", message: "consistent"}
	}

	ids := make([]string, 0, len(divergent))
	for _, d := range divergent {
		ids = append(ids, fmt.Sprintf("%d (%d..%d)", d.AlbumID, d.Min, d.Max))
	}
	return checkResult{
		name:    "Album totals",
		warning: true,
		message: fmt.Sprintf("%d albums disagree: %s", len(divergent), strings.Join(ids, ", ")),
	}
}

// checkOrphanedLinks warns about association rows whose records were deleted
func checkOrphanedLinks(db *store.Store) checkResult {
	orphans, err := db.Relations().OrphanedLinks()
	if err != nil {
		return checkResult{name: "Orphaned links", error: true, message: err.Error()}
	}

	var parts []string
	for name, n := range orphans {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", name, humanize.Comma(int64(n))))
		}
	}
	if len(parts) == 0 {
		return checkResult{name: "Orphaned links", message: "none"}
	}

	sort.Strings(parts)
	return checkResult{
		name:    "Orphaned links",
		warning: true,
		message: strings.Join(parts, ", "),
	}
}
