package tasks

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/repositories"
	"github.com/desertthunder/smrx/internal/shared"
	"github.com/desertthunder/smrx/internal/site"
)

// BuildResult summarizes a site build.
type BuildResult struct {
	Albums    int
	Artists   int
	Pages     int
	OutputDir string
	Duration  time.Duration
}

// SyncResult summarizes a database sync.
type SyncResult struct {
	Albums   int // albums upserted
	Artists  int // artists upserted
	Timeline int // timeline entries written
	Removed  int // records soft-deleted because the source no longer has them
}

// DumpResult lists the data files written by [Engine.Dump].
type DumpResult struct {
	Files    []string
	Albums   int
	Artists  int
	Timeline int
}

// Engine runs catalog operations against a single source.
type Engine struct {
	src    catalog.Source
	logger *log.Logger
}

// NewEngine creates an [Engine] reading from src.
func NewEngine(src catalog.Source, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Engine{src: src, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func (e *Engine) sourceName() string {
	if n, ok := e.src.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", e.src)
}

// Load reads the catalog, reporting progress.
func (e *Engine) Load(ctx context.Context, progress chan<- ProgressUpdate) (*models.Catalog, error) {
	if e.src == nil {
		return nil, fmt.Errorf("%w: catalog source not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, loadingUpdate(e.sourceName()))
	cat, err := catalog.Load(ctx, e.src, e.logger)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, loadedUpdate(len(cat.Albums), len(cat.Artists)))
	return cat, nil
}

// Build loads the catalog and renders the whole site with gen.
func (e *Engine) Build(ctx context.Context, gen *site.Generator, progress chan<- ProgressUpdate) (*BuildResult, error) {
	if gen == nil {
		return nil, fmt.Errorf("%w: site generator not initialized", shared.ErrServiceUnavailable)
	}
	start := time.Now()

	cat, err := e.Load(ctx, progress)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Albums:    len(cat.Albums),
		Artists:   len(cat.Artists),
		OutputDir: gen.Options().OutputDir,
	}

	e.sendProgress(progress, assetsUpdate(result.OutputDir))
	if err := gen.WriteAssets(); err != nil {
		return result, err
	}
	if err := gen.WriteData(cat); err != nil {
		return result, err
	}

	pages := gen.Pages(cat)
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := gen.WritePage(p); err != nil {
			return result, fmt.Errorf("failed to render %s: %w", p.Path, err)
		}
		result.Pages++
		e.sendProgress(progress, pageUpdate(i+1, len(pages), p.Path))
	}

	result.Duration = time.Since(start)
	e.logger.Info("site built", "pages", result.Pages, "albums", result.Albums, "out", result.OutputDir, "took", result.Duration)
	return result, nil
}

// Sync copies the catalog into store.
//
// Albums and artists are upserted in source order; records in the database that the
// source no longer has are soft-deleted. The timeline is replaced wholesale.
func (e *Engine) Sync(ctx context.Context, store *repositories.Store, progress chan<- ProgressUpdate) (*SyncResult, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: database not initialized", shared.ErrServiceUnavailable)
	}

	cat, err := e.Load(ctx, progress)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for i := range cat.Albums {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := store.AlbumRepo.Upsert(&cat.Albums[i]); err != nil {
			return result, err
		}
		result.Albums++
		e.sendProgress(progress, syncUpdate(SyncAlbums, i+1, len(cat.Albums), cat.Albums[i].Name))
	}

	albumSlugs := make([]string, len(cat.Albums))
	for i, a := range cat.Albums {
		albumSlugs[i] = a.Slug
	}
	removed, err := prune(store.AlbumRepo.Slugs, store.AlbumRepo.Delete, albumSlugs)
	result.Removed += removed
	if err != nil {
		return result, err
	}

	for i := range cat.Artists {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := store.ArtistRepo.Upsert(&cat.Artists[i]); err != nil {
			return result, err
		}
		result.Artists++
		e.sendProgress(progress, syncUpdate(SyncArtists, i+1, len(cat.Artists), cat.Artists[i].Name))
	}

	artistSlugs := make([]string, len(cat.Artists))
	for i, a := range cat.Artists {
		artistSlugs[i] = a.Slug
	}
	removed, err = prune(store.ArtistRepo.Slugs, store.ArtistRepo.Delete, artistSlugs)
	result.Removed += removed
	if err != nil {
		return result, err
	}

	e.sendProgress(progress, syncUpdate(SyncTimeline, 1, 1, fmt.Sprintf("%d timeline entries", len(cat.Timeline))))
	if err := store.TimelineRepo.Replace(cat.Timeline); err != nil {
		return result, err
	}
	result.Timeline = len(cat.Timeline)

	e.logger.Info("database synced", "albums", result.Albums, "artists", result.Artists, "removed", result.Removed)
	return result, nil
}

// prune deletes every stored slug missing from keep.
func prune(stored func() ([]string, error), del func(string) error, keep []string) (int, error) {
	slugs, err := stored()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, slug := range slugs {
		if slices.Contains(keep, slug) {
			continue
		}
		if err := del(slug); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Dump writes the catalog as albums.json, artists.json and timeline.json under dir.
func (e *Engine) Dump(ctx context.Context, dir string, progress chan<- ProgressUpdate) (*DumpResult, error) {
	cat, err := e.Load(ctx, progress)
	if err != nil {
		return nil, err
	}

	result := &DumpResult{Albums: len(cat.Albums), Artists: len(cat.Artists), Timeline: len(cat.Timeline)}
	files := []struct {
		name string
		data any
	}{
		{catalog.AlbumsFile, nonNil(cat.Albums)},
		{catalog.ArtistsFile, nonNil(cat.Artists)},
		{catalog.TimelineFile, nonNil(cat.Timeline)},
	}

	for i, f := range files {
		path := filepath.Join(dir, f.name)
		e.sendProgress(progress, dumpUpdate(i+1, len(files), path))
		if err := shared.WriteJSONFile(path, f.data); err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
	}
	return result, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
