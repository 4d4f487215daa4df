package main

import (
	"github.com/franz/music-catalog/internal/store"
	"github.com/spf13/cobra"
)

var songView = view[store.Song]{
	header: []string{"ID", "TITLE", "DURATION", "YEAR"},
	row: func(s *store.Song) []string {
		return []string{id(s.ID), s.Title, s.Duration(), intOrDash(s.ReleaseYear)}
	},
}

var songEntity = entity[store.Song]{
	name:   "song",
	plural: "songs",
	repo:   (*store.Store).Songs,
	view:   songView,
	flags: func(c *cobra.Command) {
		c.Flags().String("title", "", "song title (required)")
		c.Flags().Int("duration", 0, "duration in seconds")
		c.Flags().Int("year", 0, "release year")
		c.MarkFlagRequired("title")
	},
	build: func(c *cobra.Command) *store.Song {
		title, _ := c.Flags().GetString("title")
		return &store.Song{
			Title:           title,
			DurationSeconds: optionalInt(c, "duration"),
			ReleaseYear:     optionalInt(c, "year"),
		}
	},
}

func init() {
	rootCmd.AddCommand(newEntityCmd(songEntity))
}
