package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/smrx/internal/imaging"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

// CoverOpts contains configuration for thumbnail generation.
type CoverOpts struct {
	SiteDir    string              // Directory relative cover paths resolve against
	OutputDir  string              // Thumbnails are written here as <slug>.jpg
	MaxWidth   int                 // Thumbnail width bound (default: 600)
	MaxHeight  int                 // Thumbnail height bound (default: 600)
	Workers    int                 // Concurrent workers (default: 4, max 16)
	Downloader *imaging.Downloader // Fetches remote covers; defaults to an unthrottled client
}

// CoverResult is the outcome for one album.
type CoverResult struct {
	Slug  string
	Path  string
	Error error
}

// CoversResult summarizes a thumbnail run.
type CoversResult struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   []string // albums without a cover image
	Results   []CoverResult
}

// Covers loads the catalog and writes a thumbnail per album cover.
//
// Work runs on a bounded pool; a cover that cannot be read, downloaded or decoded is
// reported in the result and does not stop the others. Only cancellation is returned as an error.
func (e *Engine) Covers(ctx context.Context, opts CoverOpts, progress chan<- ProgressUpdate) (*CoversResult, error) {
	cat, err := e.Load(ctx, progress)
	if err != nil {
		return nil, err
	}
	return e.processCovers(ctx, cat.Albums, opts, progress)
}

func (e *Engine) processCovers(ctx context.Context, albums []models.Album, opts CoverOpts, progress chan<- ProgressUpdate) (*CoversResult, error) {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 600
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = 600
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Workers > 16 {
		opts.Workers = 16
	}
	if opts.Downloader == nil {
		opts.Downloader = imaging.NewDownloader(nil, 0)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &CoversResult{}
	var jobs []models.Album
	for _, a := range albums {
		if a.CoverImage == "" {
			result.Skipped = append(result.Skipped, a.Slug)
			continue
		}
		jobs = append(jobs, a)
	}
	result.Total = len(jobs)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for _, album := range jobs {
		g.Go(func() error {
			res := e.processCover(gctx, album, opts)
			if errors.Is(res.Error, context.Canceled) || errors.Is(res.Error, context.DeadlineExceeded) {
				return res.Error
			}

			mu.Lock()
			defer mu.Unlock()
			result.Results = append(result.Results, res)
			step := len(result.Results)
			if res.Error != nil {
				result.Failed++
				e.logger.Warn("cover failed", "album", res.Slug, "err", res.Error)
				e.sendProgress(progress, coverFailedUpdate(step, result.Total, res))
			} else {
				result.Succeeded++
				e.sendProgress(progress, coverDoneUpdate(step, result.Total, res))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

func (e *Engine) processCover(ctx context.Context, album models.Album, opts CoverOpts) CoverResult {
	res := CoverResult{Slug: album.Slug}
	if !shared.ValidSlug(album.Slug) {
		res.Error = fmt.Errorf("%w: invalid album slug %q", shared.ErrInvalidInput, album.Slug)
		return res
	}

	var (
		data []byte
		err  error
	)
	if isRemote(album.CoverImage) {
		data, err = opts.Downloader.Download(ctx, album.CoverImage)
	} else {
		data, err = os.ReadFile(filepath.Join(opts.SiteDir, filepath.FromSlash(album.CoverImage)))
	}
	if err != nil {
		res.Error = err
		return res
	}

	thumb, err := imaging.Resize(ctx, data, opts.MaxWidth, opts.MaxHeight)
	if err != nil {
		res.Error = err
		return res
	}

	res.Path = filepath.Join(opts.OutputDir, album.Slug+".jpg")
	if err := os.WriteFile(res.Path, thumb, 0644); err != nil {
		res.Error = fmt.Errorf("failed to write thumbnail: %w", err)
	}
	return res
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
