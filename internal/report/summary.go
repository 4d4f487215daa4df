package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/franz/music-catalog/internal/store"
)

// Summary is a snapshot of catalog contents and consistency
type Summary struct {
	GeneratedAt  time.Time
	DatabasePath string

	// Entity counts, in display order
	Entities []Count

	// Association row counts, in display order
	Links []Count

	// Consistency
	DivergentAlbums []store.AlbumTotals
	OrphanedLinks   map[string]int
}

// Count is a named row count
type Count struct {
	Name  string
	Count int
}

// Orphans returns the total number of orphaned association rows
func (s *Summary) Orphans() int {
	total := 0
	for _, n := range s.OrphanedLinks {
		total += n
	}
	return total
}

// Healthy reports whether no consistency problems were found
func (s *Summary) Healthy() bool {
	return len(s.DivergentAlbums) == 0 && s.Orphans() == 0
}

// Generate aggregates counts and consistency checks from db
func Generate(db *store.Store) (*Summary, error) {
	summary := &Summary{GeneratedAt: time.Now()}

	entities := []struct {
		name  string
		count func() (int, error)
	}{
		{"artists", db.Artists().Count},
		{"albums", db.Albums().Count},
		{"songs", db.Songs().Count},
		{"genres", db.Genres().Count},
		{"awards", db.Awards().Count},
	}
	for _, e := range entities {
		n, err := e.count()
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", e.name, err)
		}
		summary.Entities = append(summary.Entities, Count{Name: e.name, Count: n})
	}

	rel := db.Relations()
	links := []struct {
		name  string
		count func() (int, error)
	}{
		{rel.Performs.Name(), rel.Performs.Count},
		{rel.Receives.Name(), rel.Receives.Count},
		{rel.BelongsTo.Name(), rel.BelongsTo.Count},
		{rel.Contains.Name(), rel.Contains.Count},
	}
	for _, l := range links {
		n, err := l.count()
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", l.name, err)
		}
		summary.Links = append(summary.Links, Count{Name: l.name, Count: n})
	}

	divergent, err := rel.DivergentAlbumTotals()
	if err != nil {
		return nil, fmt.Errorf("failed to check album totals: %w", err)
	}
	summary.DivergentAlbums = divergent

	orphans, err := rel.OrphanedLinks()
	if err != nil {
		return nil, fmt.Errorf("failed to check orphaned links: %w", err)
	}
	summary.OrphanedLinks = orphans

	return summary, nil
}

// Write renders the summary as plain text
func (s *Summary) Write(w io.Writer) error {
	var b strings.Builder

	b.WriteString("Music Catalog - Summary\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05")))
	if s.DatabasePath != "" {
		b.WriteString(fmt.Sprintf("Database:  %s\n", s.DatabasePath))
	}

	b.WriteString("\nEntities\n")
	writeCounts(&b, s.Entities)

	b.WriteString("\nAssociations\n")
	writeCounts(&b, s.Links)

	b.WriteString("\nConsistency\n")
	if len(s.DivergentAlbums) == 0 {
		b.WriteString("  album totals      consistent\n")
	} else {
		b.WriteString(fmt.Sprintf("  album totals      %s albums disagree\n", humanize.Comma(int64(len(s.DivergentAlbums)))))
		for _, a := range s.DivergentAlbums {
			b.WriteString(fmt.Sprintf("    album %d: %d rows, %d distinct values (%d..%d)\n",
				a.AlbumID, a.Rows, a.Distinct, a.Min, a.Max))
		}
	}

	if s.Orphans() == 0 {
		b.WriteString("  orphaned links    none\n")
	} else {
		names := make([]string, 0, len(s.OrphanedLinks))
		for name, n := range s.OrphanedLinks {
			if n > 0 {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		b.WriteString(fmt.Sprintf("  orphaned links    %s rows\n", humanize.Comma(int64(s.Orphans()))))
		for _, name := range names {
			b.WriteString(fmt.Sprintf("    %-12s %s\n", name, humanize.Comma(int64(s.OrphanedLinks[name]))))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeCounts(b *strings.Builder, counts []Count) {
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("  %-16s %10s\n", c.Name, humanize.Comma(int64(c.Count))))
	}
}
