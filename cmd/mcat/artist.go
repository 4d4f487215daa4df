package main

import (
	"github.com/franz/music-catalog/internal/store"
	"github.com/spf13/cobra"
)

var artistView = view[store.Artist]{
	header: []string{"ID", "NAME", "COUNTRY", "BORN"},
	row: func(a *store.Artist) []string {
		return []string{id(a.ID), a.Name, orDash(a.Country), intOrDash(a.BirthYear)}
	},
}

var artistEntity = entity[store.Artist]{
	name:   "artist",
	plural: "artists",
	repo:   (*store.Store).Artists,
	view:   artistView,
	flags: func(c *cobra.Command) {
		c.Flags().String("name", "", "artist name (required)")
		c.Flags().String("country", "", "country of origin")
		c.Flags().Int("birth-year", 0, "year of birth")
		c.MarkFlagRequired("name")
	},
	build: func(c *cobra.Command) *store.Artist {
		name, _ := c.Flags().GetString("name")
		return &store.Artist{
			Name:      name,
			Country:   optionalString(c, "country"),
			BirthYear: optionalInt(c, "birth-year"),
		}
	},
}

func init() {
	rootCmd.AddCommand(newEntityCmd(artistEntity))
}
