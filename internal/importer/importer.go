package importer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/franz/music-catalog/internal/store"
	"github.com/franz/music-catalog/internal/util"
	"github.com/schollz/progressbar/v3"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultVenue      = "Studio"
	DefaultAssignedBy = "import"
)

// Importer turns a tree of tagged audio files into catalog rows
type Importer struct {
	store       *store.Store
	extensions  map[string]bool
	concurrency int
	venue       string
	assignedBy  string
	readTags    TagReader

	// keys of existing rows, keyed by normalized name, loaded per run
	artists     map[string]int64
	albums      map[string]int64
	genres      map[string]int64
	artistSongs map[int64]map[string]int64
}

// Config holds importer configuration
type Config struct {
	Store          *store.Store
	AdditionalExts []string
	Concurrency    int
	// Venue is stored on performs rows
	Venue string
	// AssignedBy is stored on belongs_to rows
	AssignedBy string
	// ReadTags overrides the tag reader, mainly for tests
	ReadTags TagReader
}

// Result summarizes an import run
type Result struct {
	FilesFound     int
	SongsCreated   int
	SongsSkipped   int
	ArtistsCreated int
	AlbumsCreated  int
	GenresCreated  int
	Errors         []error
}

// New creates a new Importer. cfg is not modified.
func New(cfg *Config) *Importer {
	i := &Importer{
		store:       cfg.Store,
		concurrency: cfg.Concurrency,
		venue:       cfg.Venue,
		assignedBy:  cfg.AssignedBy,
		readTags:    cfg.ReadTags,
	}
	if i.concurrency <= 0 {
		i.concurrency = 4
	}
	if i.venue == "" {
		i.venue = DefaultVenue
	}
	if i.assignedBy == "" {
		i.assignedBy = DefaultAssignedBy
	}
	if i.readTags == nil {
		i.readTags = ReadTrack
	}

	i.extensions = make(map[string]bool)
	for _, ext := range AudioExtensions {
		i.extensions[strings.ToLower(ext)] = true
	}
	for _, ext := range cfg.AdditionalExts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		i.extensions[strings.ToLower(ext)] = true
	}

	return i
}

type tagResult struct {
	path  string
	track *Track
	err   error
}

// Import walks root, reads tags in parallel and writes catalog rows one
// statement at a time. Per-file failures are collected, not fatal.
func (i *Importer) Import(ctx context.Context, root string) (*Result, error) {
	util.InfoLog("Starting import of: %s", root)

	result := &Result{Errors: make([]error, 0)}

	if err := i.loadNames(); err != nil {
		return result, err
	}
	i.artistSongs = make(map[int64]map[string]int64)

	paths, err := i.collect(ctx, root, result)
	if err != nil {
		return result, err
	}
	result.FilesFound = len(paths)
	util.InfoLog("Found %d audio files", len(paths))

	tags := i.readAll(paths)

	bar := newBar(len(tags))
	for _, tr := range tags {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if tr.err != nil {
			util.WarnLog("Skipping %s: %v", tr.path, tr.err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", tr.path, tr.err))
		} else if err := i.importTrack(tr.track, result); err != nil {
			util.ErrorLog("Failed to import %s: %v", tr.path, err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", tr.path, err))
		}

		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	util.SuccessLog("Import complete: %d songs created, %d already catalogued, %d errors",
		result.SongsCreated, result.SongsSkipped, len(result.Errors))

	return result, nil
}

func (i *Importer) collect(ctx context.Context, root string, result *Result) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			util.WarnLog("Error accessing path %s: %v", path, err)
			result.Errors = append(result.Errors, fmt.Errorf("access error: %s: %w", path, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if i.extensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(paths)
	return paths, nil
}

// readAll reads tags with bounded parallelism and returns results in path order
func (i *Importer) readAll(paths []string) []tagResult {
	p := pool.NewWithResults[tagResult]().WithMaxGoroutines(i.concurrency)
	for _, path := range paths {
		p.Go(func() tagResult {
			track, err := i.readTags(path)
			return tagResult{path: path, track: track, err: err}
		})
	}

	results := p.Wait()
	sort.Slice(results, func(a, b int) bool { return results[a].path < results[b].path })
	return results
}

func (i *Importer) importTrack(t *Track, result *Result) error {
	var artistID int64
	var err error
	if t.Artist != "" {
		artistID, err = i.resolveArtist(t.Artist, result)
		if err != nil {
			return err
		}
		if _, seen := i.songsOf(artistID)[normalizeKey(t.Title)]; seen {
			util.DebugLog("Already catalogued: %s - %s", t.Artist, t.Title)
			result.SongsSkipped++
			return nil
		}
	}

	song := &store.Song{Title: t.Title}
	if t.Year > 0 {
		song.ReleaseYear = store.Ptr(t.Year)
	}
	if err := i.store.Songs().Create(song); err != nil {
		return err
	}
	result.SongsCreated++

	rel := i.store.Relations()

	if artistID != 0 {
		if err := rel.Performs.Link(artistID, song.ID, i.venue); err != nil {
			return err
		}
		i.songsOf(artistID)[normalizeKey(t.Title)] = song.ID
	}

	if t.Genre != "" {
		genreID, err := i.resolveGenre(t.Genre, result)
		if err != nil {
			return err
		}
		if err := rel.BelongsTo.Link(song.ID, genreID, i.assignedBy); err != nil {
			return err
		}
	}

	if t.Album != "" {
		albumID, err := i.resolveAlbum(t.Album, t.Year, result)
		if err != nil {
			return err
		}
		if err := i.addToAlbum(albumID, song.ID, t.TrackTotal); err != nil {
			return err
		}
	}

	return nil
}

// addToAlbum seeds no_of_songs from the tag's track total for the album's
// first row; later rows reuse whatever the album already has.
func (i *Importer) addToAlbum(albumID, songID int64, trackTotal int) error {
	rel := i.store.Relations()
	if trackTotal > 0 {
		if _, err := rel.TotalSongsInAlbum(albumID); store.IsNotFound(err) {
			return rel.Contains.Link(albumID, songID, trackTotal)
		}
	}
	return rel.AddSongToAlbum(albumID, songID)
}

// songsOf loads the titles an artist already performs, once per run
func (i *Importer) songsOf(artistID int64) map[string]int64 {
	if songs, ok := i.artistSongs[artistID]; ok {
		return songs
	}

	songs := make(map[string]int64)
	existing, err := i.store.Relations().Performs.Rights(artistID)
	if err == nil {
		for _, s := range existing {
			songs[normalizeKey(s.Title)] = s.ID
		}
	}
	i.artistSongs[artistID] = songs
	return songs
}

// loadNames indexes existing artists, albums and genres by normalized name
func (i *Importer) loadNames() error {
	var err error
	if i.artists, err = index(i.store.Artists(), func(a *store.Artist) string { return a.Name }); err != nil {
		return err
	}
	if i.albums, err = index(i.store.Albums(), func(a *store.Album) string { return a.Title }); err != nil {
		return err
	}
	if i.genres, err = index(i.store.Genres(), func(g *store.Genre) string { return g.Name }); err != nil {
		return err
	}
	return nil
}

// index maps normalized display names to keys. The first row in display
// order wins when several rows share a name.
func index[T any](repo *store.Repository[T], display func(*T) string) (map[string]int64, error) {
	recs, err := repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", repo.Table().Name, err)
	}

	id := repo.Table().ID
	names := make(map[string]int64, len(recs))
	for n := range recs {
		key := normalizeKey(display(&recs[n]))
		if _, ok := names[key]; !ok {
			names[key] = *id(&recs[n])
		}
	}
	return names, nil
}

func (i *Importer) resolveArtist(name string, result *Result) (int64, error) {
	return resolve(i.store.Artists(), i.artists, name,
		func() *store.Artist { return &store.Artist{Name: name} },
		&result.ArtistsCreated)
}

func (i *Importer) resolveAlbum(title string, year int, result *Result) (int64, error) {
	return resolve(i.store.Albums(), i.albums, title,
		func() *store.Album {
			album := &store.Album{Title: title}
			if year > 0 {
				album.ReleaseYear = store.Ptr(year)
			}
			return album
		},
		&result.AlbumsCreated)
}

func (i *Importer) resolveGenre(name string, result *Result) (int64, error) {
	return resolve(i.store.Genres(), i.genres, name,
		func() *store.Genre { return &store.Genre{Name: name} },
		&result.GenresCreated)
}

// resolve returns the key indexed under name's normalized form, creating
// the row with build when there is none.
func resolve[T any](repo *store.Repository[T], names map[string]int64, name string,
	build func() *T, created *int) (int64, error) {
	key := normalizeKey(name)
	if id, ok := names[key]; ok {
		return id, nil
	}

	rec := build()
	if err := repo.Create(rec); err != nil {
		return 0, err
	}
	*created++
	names[key] = *repo.Table().ID(rec)
	return names[key], nil
}

// newBar returns nil when stderr is not a terminal or output is quiet
func newBar(total int) *progressbar.ProgressBar {
	if total == 0 || util.IsQuiet() || !util.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
