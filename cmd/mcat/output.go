package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/franz/music-catalog/internal/store"
	"github.com/franz/music-catalog/internal/util"
	"github.com/spf13/cobra"
)

// Text columns in list output on a terminal are sized to share the
// terminal width, within these bounds.
const (
	minCell = 8
	maxCell = 48
)

// cellWidth is the widest a cell may be when columns share the terminal
func cellWidth(columns int) int {
	if columns <= 0 {
		return maxCell
	}
	width := util.GetTerminalWidth()/columns - 2
	return max(minCell, min(maxCell, width))
}

// view renders records of one type as table rows
type view[T any] struct {
	header []string
	row    func(*T) []string
}

// printTable writes a header and rows as aligned columns
func printTable(w io.Writer, header []string, rows [][]string) error {
	truncate := w == os.Stdout && util.IsTerminal(os.Stdout.Fd())

	limit := cellWidth(len(header))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		if truncate {
			for i := range row {
				row[i] = util.Truncate(row[i], limit)
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func printRecords[T any](w io.Writer, v view[T], recs []T) error {
	rows := make([][]string, 0, len(recs))
	for i := range recs {
		rows = append(rows, v.row(&recs[i]))
	}
	return printTable(w, v.header, rows)
}

func orDash(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func intOrDash(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

// optionalString returns nil unless the flag was given
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// optionalInt returns nil unless the flag was given
func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// parseID parses a positional surrogate key
func parseID(arg string) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", arg, util.ErrInvalidInput)
	}
	return n, nil
}

// withStore opens the configured database for the duration of fn
func withStore(fn func(*store.Store) error) error {
	dbPath := GetConfigString("db", defaultDB)
	util.DebugLog("Opening database: %s", dbPath)

	db, err := store.OpenWithOptions(dbPath, &store.OpenOptions{
		NetworkOptimized: GetConfigBool("network_optimized"),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return fn(db)
}
