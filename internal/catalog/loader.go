package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Resource names, relative to the data directory.
const (
	AlbumsFile   = "albums.json"
	ArtistsFile  = "artists.json"
	TimelineFile = "timeline.json"
)

// Fetcher returns the raw contents of a named catalog resource.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	Name() string
}

// Source provides decoded catalog records.
type Source interface {
	Albums(ctx context.Context) ([]models.Album, error)
	Artists(ctx context.Context) ([]models.Artist, error)
	Timeline(ctx context.Context) ([]models.TimelineEntry, error)
}

// FileSource reads resources from a local data directory.
type FileSource struct {
	dir string
}

// NewFileSource creates a [FileSource] rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Name() string { return "file:" + s.dir }

// Fetch reads dir/name.
func (s *FileSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return data, nil
}

// HTTPSource fetches resources from the data/ directory of a published site.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPSource creates an [HTTPSource] for baseURL.
//
// A nil client gets a 30 second timeout. A non-positive rps disables throttling.
func NewHTTPSource(baseURL string, client *http.Client, rps float64) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (s *HTTPSource) Name() string { return s.baseURL }

// Fetch performs a GET for {baseURL}/data/{name}.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	fullURL := s.baseURL + "/data/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: failed to load %s (status %d)", shared.ErrRequest, fullURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// LoadJSON fetches name and decodes it into T.
//
// On any failure the zero value is returned with the error, so callers can treat a
// nil slice as "not loaded".
func LoadJSON[T any](ctx context.Context, f Fetcher, name string) (T, error) {
	var zero T

	data, err := f.Fetch(ctx, name)
	if err != nil {
		return zero, err
	}

	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		return zero, fmt.Errorf("%w: %s: %v", shared.ErrMalformedData, name, err)
	}
	return v, nil
}

// JSONSource adapts a [Fetcher] to [Source].
type JSONSource struct {
	fetcher Fetcher
}

// NewJSONSource wraps f.
func NewJSONSource(f Fetcher) *JSONSource {
	return &JSONSource{fetcher: f}
}

func (s *JSONSource) Albums(ctx context.Context) ([]models.Album, error) {
	return LoadJSON[[]models.Album](ctx, s.fetcher, AlbumsFile)
}

func (s *JSONSource) Artists(ctx context.Context) ([]models.Artist, error) {
	return LoadJSON[[]models.Artist](ctx, s.fetcher, ArtistsFile)
}

func (s *JSONSource) Timeline(ctx context.Context) ([]models.TimelineEntry, error) {
	return LoadJSON[[]models.TimelineEntry](ctx, s.fetcher, TimelineFile)
}

// Load fetches the whole catalog from src.
//
// Albums and artists are fetched concurrently. Albums are required and a failure
// wraps [shared.ErrMissingData]; artists and timeline failures are logged and left empty.
func Load(ctx context.Context, src Source, logger *log.Logger) (*models.Catalog, error) {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	var (
		cat       models.Catalog
		albumsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cat.Albums, albumsErr = src.Albums(gctx)
		if albumsErr != nil {
			logger.Error("error loading data", "resource", AlbumsFile, "err", albumsErr)
		}
		return nil
	})
	g.Go(func() error {
		artists, err := src.Artists(gctx)
		if err != nil {
			logger.Warn("error loading data", "resource", ArtistsFile, "err", err)
			return nil
		}
		cat.Artists = artists
		return nil
	})
	g.Go(func() error {
		timeline, err := src.Timeline(gctx)
		if err != nil {
			logger.Warn("error loading data", "resource", TimelineFile, "err", err)
			return nil
		}
		cat.Timeline = timeline
		return nil
	})
	_ = g.Wait()

	if albumsErr != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMissingData, albumsErr)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("catalog loaded", "albums", len(cat.Albums), "artists", len(cat.Artists), "timeline", len(cat.Timeline))
	return &cat, nil
}
