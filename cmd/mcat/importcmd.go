package main

import (
	"fmt"

	"github.com/franz/music-catalog/internal/importer"
	"github.com/franz/music-catalog/internal/store"
	"github.com/franz/music-catalog/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// maxListedErrors bounds per-file errors printed after an import
const maxListedErrors = 10

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import tagged audio files into the catalog",
	Long: `Walk a directory of audio files and catalog their tags.

For each file the artist, album and genre are matched by name (ignoring case
and extra spaces) or created, then a song is created and linked:
- performs (artist, song) with the configured venue
- belongs_to (song, genre) with the configured assigned-by value
- contains (album, song) seeded with the track total from the tags

Songs an artist already performs are skipped, so an import can be re-run.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().IntP("concurrency", "c", 4, "parallel tag readers")
	importCmd.Flags().String("venue", importer.DefaultVenue, "venue stored on performs rows")
	importCmd.Flags().String("assigned-by", importer.DefaultAssignedBy, "value stored on belongs_to rows")
	importCmd.Flags().StringSlice("ext", nil, "additional file extensions to import")

	viper.BindPFlag("concurrency", importCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("venue", importCmd.Flags().Lookup("venue"))
	viper.BindPFlag("assigned_by", importCmd.Flags().Lookup("assigned-by"))
	viper.BindPFlag("extensions", importCmd.Flags().Lookup("ext"))
}

func runImport(cmd *cobra.Command, args []string) error {
	root := args[0]

	settings, err := loadImportSettings()
	if err != nil {
		return err
	}

	return withStore(func(db *store.Store) error {
		imp := importer.New(&importer.Config{
			Store:          db,
			AdditionalExts: settings.Extensions,
			Concurrency:    settings.Concurrency,
			Venue:          settings.Venue,
			AssignedBy:     settings.AssignedBy,
		})

		result, err := imp.Import(cmd.Context(), root)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		util.InfoLog("Files found:      %d", result.FilesFound)
		util.InfoLog("Songs created:    %d", result.SongsCreated)
		util.InfoLog("Songs skipped:    %d", result.SongsSkipped)
		util.InfoLog("Artists created:  %d", result.ArtistsCreated)
		util.InfoLog("Albums created:   %d", result.AlbumsCreated)
		util.InfoLog("Genres created:   %d", result.GenresCreated)

		if len(result.Errors) > 0 {
			util.WarnLog("%d files could not be imported:", len(result.Errors))
			for n, err := range result.Errors {
				if n == maxListedErrors {
					util.WarnLog("  ... and %d more", len(result.Errors)-maxListedErrors)
					break
				}
				util.WarnLog("  %v", err)
			}
		}
		return nil
	})
}
