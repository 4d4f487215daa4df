package main

import (
	"strconv"

	"github.com/franz/music-catalog/internal/store"
	"github.com/spf13/cobra"
)

var awardView = view[store.Award]{
	header: []string{"ID", "AWARD", "YEAR"},
	row: func(a *store.Award) []string {
		return []string{id(a.ID), a.AwardName, strconv.Itoa(a.YearWon)}
	},
}

var awardEntity = entity[store.Award]{
	name:   "award",
	plural: "awards",
	repo:   (*store.Store).Awards,
	view:   awardView,
	flags: func(c *cobra.Command) {
		c.Flags().String("name", "", "award name (required)")
		c.Flags().Int("year", 0, "year won (required)")
		c.MarkFlagRequired("name")
		c.MarkFlagRequired("year")
	},
	build: func(c *cobra.Command) *store.Award {
		name, _ := c.Flags().GetString("name")
		year, _ := c.Flags().GetInt("year")
		return &store.Award{AwardName: name, YearWon: year}
	},
}

func init() {
	rootCmd.AddCommand(newEntityCmd(awardEntity))
}
