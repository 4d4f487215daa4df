package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/franz/music-catalog/internal/store"
	"github.com/franz/music-catalog/internal/util"
	"github.com/spf13/cobra"
)

// linkKind binds one association table to the link commands
type linkKind struct {
	name string

	link   func(rel *store.Relations, left, right int64, attr string) error
	unlink func(rel *store.Relations, left, right int64) (int64, error)
	rights func(w io.Writer, rel *store.Relations, left int64) error
	lefts  func(w io.Writer, rel *store.Relations, right int64) error
	rows   func(w io.Writer, rel *store.Relations, left int64) error

	// unset links a pair when no attribute is given, if set
	unset func(rel *store.Relations, left, right int64) error
}

func newLinkKind[L, R, A any](name, attr string, pick func(*store.Relations) *store.Link[L, R, A],
	parse func(string) (A, error), left view[L], right view[R]) linkKind {
	return linkKind{
		name: name,
		link: func(rel *store.Relations, l, r int64, raw string) error {
			v, err := parse(raw)
			if err != nil {
				return err
			}
			return pick(rel).Link(l, r, v)
		},
		unlink: func(rel *store.Relations, l, r int64) (int64, error) {
			return pick(rel).Unlink(l, r)
		},
		rights: func(w io.Writer, rel *store.Relations, l int64) error {
			recs, err := pick(rel).Rights(l)
			if err != nil {
				return err
			}
			return printRecords(w, right, recs)
		},
		lefts: func(w io.Writer, rel *store.Relations, r int64) error {
			recs, err := pick(rel).Lefts(r)
			if err != nil {
				return err
			}
			return printRecords(w, left, recs)
		},
		rows: func(w io.Writer, rel *store.Relations, l int64) error {
			rows, err := pick(rel).Rows(l)
			if err != nil {
				return err
			}
			out := make([][]string, 0, len(rows))
			for _, row := range rows {
				value := "-"
				if row.Attr != nil {
					value = fmt.Sprint(*row.Attr)
				}
				out = append(out, []string{id(row.LeftID), id(row.RightID), value})
			}
			return printTable(w, []string{"LEFT", "RIGHT", strings.ToUpper(attr)}, out)
		},
	}
}

func parseText(raw string) (string, error) {
	return raw, nil
}

func parseTotal(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid song total %q: %w", raw, util.ErrInvalidInput)
	}
	return n, nil
}

var linkKinds = map[string]linkKind{
	"performs": newLinkKind("performs", "venue",
		func(r *store.Relations) *store.Link[store.Artist, store.Song, string] { return r.Performs },
		parseText, artistView, songView),
	"receives": newLinkKind("receives", "role",
		func(r *store.Relations) *store.Link[store.Artist, store.Award, string] { return r.Receives },
		parseText, artistView, awardView),
	"belongs-to": newLinkKind("belongs-to", "assigned_by",
		func(r *store.Relations) *store.Link[store.Song, store.Genre, string] { return r.BelongsTo },
		parseText, songView, genreView),
	"contains": withUnset(newLinkKind("contains", "no_of_songs",
		func(r *store.Relations) *store.Link[store.Album, store.Song, int] { return r.Contains },
		parseTotal, albumView, songView),
		(*store.Relations).AddSongToAlbum),
}

func withUnset(k linkKind, unset func(*store.Relations, int64, int64) error) linkKind {
	k.unset = unset
	return k
}

func kindNames() []string {
	names := make([]string, 0, len(linkKinds))
	for name := range linkKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupKind(name string) (linkKind, error) {
	k, ok := linkKinds[name]
	if !ok {
		return linkKind{}, fmt.Errorf("unknown link kind %q (want one of %s): %w",
			name, strings.Join(kindNames(), ", "), util.ErrInvalidInput)
	}
	return k, nil
}

// parsePair resolves the kind and the two ids shared by link and unlink
func parsePair(args []string) (linkKind, int64, int64, error) {
	k, err := lookupKind(args[0])
	if err != nil {
		return linkKind{}, 0, 0, err
	}
	left, err := parseID(args[1])
	if err != nil {
		return linkKind{}, 0, 0, err
	}
	right, err := parseID(args[2])
	if err != nil {
		return linkKind{}, 0, 0, err
	}
	return k, left, right, nil
}

var linkCmd = &cobra.Command{
	Use:   "link <kind> <leftID> <rightID> [value]",
	Short: "Associate two records",
	Long: `Associate two records. Kinds and their optional value:

  performs   <artistID> <songID> [venue]
  receives   <artistID> <awardID> [role]
  belongs-to <songID> <genreID> [assigned by]
  contains   <albumID> <songID> [song total]

Linking the same pair twice stores two rows. A contains link without a song
total reuses the album's current total, or 1.`,
	Args:      cobra.RangeArgs(3, 4),
	ValidArgs: []string{"performs", "receives", "belongs-to", "contains"},
	RunE:      runLink,
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <kind> <leftID> <rightID>",
	Short: "Remove every association row between two records",
	Args:  cobra.ExactArgs(3),
	RunE:  runUnlink,
}

var relatedCmd = &cobra.Command{
	Use:   "related <kind> (--left ID | --right ID)",
	Short: "List records associated with one record",
	Long: `List records associated with one record.

With --left, lists the right-hand records of the kind (songs an artist
performs, awards an artist received, genres of a song, songs on an album).
With --right, lists the left-hand records. --rows prints the raw rows of a
left-hand record including their value.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

func init() {
	rootCmd.AddCommand(linkCmd, unlinkCmd, relatedCmd)

	relatedCmd.Flags().Int64("left", 0, "left-hand record id")
	relatedCmd.Flags().Int64("right", 0, "right-hand record id")
	relatedCmd.Flags().Bool("rows", false, "print raw association rows (with --left)")
	relatedCmd.MarkFlagsMutuallyExclusive("left", "right")
	relatedCmd.MarkFlagsOneRequired("left", "right")
}

func runLink(cmd *cobra.Command, args []string) error {
	k, left, right, err := parsePair(args)
	if err != nil {
		return err
	}

	return withStore(func(db *store.Store) error {
		rel := db.Relations()
		switch {
		case len(args) == 4:
			err = k.link(rel, left, right, args[3])
		case k.unset != nil:
			err = k.unset(rel, left, right)
		default:
			err = k.link(rel, left, right, "")
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s %d -> %d\n", k.name, left, right)
		return nil
	})
}

func runUnlink(cmd *cobra.Command, args []string) error {
	k, left, right, err := parsePair(args)
	if err != nil {
		return err
	}

	return withStore(func(db *store.Store) error {
		n, err := k.unlink(db.Relations(), left, right)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s rows\n", n, k.name)
		return nil
	})
}

func runRelated(cmd *cobra.Command, args []string) error {
	k, err := lookupKind(args[0])
	if err != nil {
		return err
	}
	left, _ := cmd.Flags().GetInt64("left")
	right, _ := cmd.Flags().GetInt64("right")
	rows, _ := cmd.Flags().GetBool("rows")
	byRight := cmd.Flags().Changed("right")
	if rows && byRight {
		return fmt.Errorf("--rows requires --left: %w", util.ErrInvalidInput)
	}

	return withStore(func(db *store.Store) error {
		w := cmd.OutOrStdout()
		rel := db.Relations()
		switch {
		case byRight:
			return k.lefts(w, rel, right)
		case rows:
			return k.rows(w, rel, left)
		default:
			return k.rights(w, rel, left)
		}
	})
}
