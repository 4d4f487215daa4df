package main

import (
	"github.com/franz/music-catalog/internal/store"
	"github.com/spf13/cobra"
)

var genreView = view[store.Genre]{
	header: []string{"ID", "NAME", "DESCRIPTION"},
	row: func(g *store.Genre) []string {
		return []string{id(g.ID), g.Name, orDash(g.Description)}
	},
}

var genreEntity = entity[store.Genre]{
	name:   "genre",
	plural: "genres",
	repo:   (*store.Store).Genres,
	view:   genreView,
	flags: func(c *cobra.Command) {
		c.Flags().String("name", "", "genre name (required)")
		c.Flags().String("description", "", "free-form description")
		c.MarkFlagRequired("name")
	},
	build: func(c *cobra.Command) *store.Genre {
		name, _ := c.Flags().GetString("name")
		return &store.Genre{Name: name, Description: optionalString(c, "description")}
	},
}

func init() {
	rootCmd.AddCommand(newEntityCmd(genreEntity))
}
