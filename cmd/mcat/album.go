package main

import (
	"fmt"
	"strconv"

	"github.com/franz/music-catalog/internal/store"
	"github.com/franz/music-catalog/internal/util"
	"github.com/spf13/cobra"
)

var albumView = view[store.Album]{
	header: []string{"ID", "TITLE", "YEAR"},
	row: func(a *store.Album) []string {
		return []string{id(a.ID), a.Title, intOrDash(a.ReleaseYear)}
	},
}

var albumEntity = entity[store.Album]{
	name:   "album",
	plural: "albums",
	repo:   (*store.Store).Albums,
	view:   albumView,
	flags: func(c *cobra.Command) {
		c.Flags().String("title", "", "album title (required)")
		c.Flags().Int("year", 0, "release year")
		c.MarkFlagRequired("title")
	},
	build: func(c *cobra.Command) *store.Album {
		title, _ := c.Flags().GetString("title")
		return &store.Album{Title: title, ReleaseYear: optionalInt(c, "year")}
	},
}

var albumAddSongCmd = &cobra.Command{
	Use:   "add-song <albumID> <songID>",
	Short: "Add a song to an album",
	Long: `Add a song to an album.

The new row reuses the album's current song total, or 1 when the album
has no songs yet.`,
	Args: cobra.ExactArgs(2),
	RunE: runAlbumAddSong,
}

var albumTotalCmd = &cobra.Command{
	Use:   "total <albumID>",
	Short: "Show an album's song total",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbumTotal,
}

var albumSetTotalCmd = &cobra.Command{
	Use:   "set-total <albumID> <n>",
	Short: "Set the song total on every row of an album",
	Args:  cobra.ExactArgs(2),
	RunE:  runAlbumSetTotal,
}

func init() {
	albumCmd := newEntityCmd(albumEntity)
	albumCmd.AddCommand(albumAddSongCmd, albumTotalCmd, albumSetTotalCmd)
	rootCmd.AddCommand(albumCmd)
}

func runAlbumAddSong(cmd *cobra.Command, args []string) error {
	albumID, err := parseID(args[0])
	if err != nil {
		return err
	}
	songID, err := parseID(args[1])
	if err != nil {
		return err
	}

	return withStore(func(db *store.Store) error {
		rel := db.Relations()
		if err := rel.AddSongToAlbum(albumID, songID); err != nil {
			return err
		}
		total, err := rel.TotalSongsInAlbum(albumID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added song %d to album %d (total %d)\n", songID, albumID, total)
		return nil
	})
}

func runAlbumTotal(cmd *cobra.Command, args []string) error {
	albumID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(func(db *store.Store) error {
		total, err := db.Relations().TotalSongsInAlbum(albumID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), total)
		return nil
	})
}

func runAlbumSetTotal(cmd *cobra.Command, args []string) error {
	albumID, err := parseID(args[0])
	if err != nil {
		return err
	}
	total, err := strconv.Atoi(args[1])
	if err != nil || total < 0 {
		return fmt.Errorf("invalid song total %q: %w", args[1], util.ErrInvalidInput)
	}

	return withStore(func(db *store.Store) error {
		n, err := db.Relations().UpdateAlbumTotalSongs(albumID, total)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d rows of album %d\n", n, albumID)
		return nil
	})
}
