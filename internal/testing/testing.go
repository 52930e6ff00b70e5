// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

// MockSource is a test double for [catalog.Source]
type MockSource struct {
	AlbumList    []models.Album
	ArtistList   []models.Artist
	TimelineList []models.TimelineEntry
	AlbumsErr    error
	ArtistsErr   error
	TimelineErr  error
}

func (m *MockSource) Albums(ctx context.Context) ([]models.Album, error) {
	return m.AlbumList, m.AlbumsErr
}

func (m *MockSource) Artists(ctx context.Context) ([]models.Artist, error) {
	return m.ArtistList, m.ArtistsErr
}

func (m *MockSource) Timeline(ctx context.Context) ([]models.TimelineEntry, error) {
	return m.TimelineList, m.TimelineErr
}

// MockSourceFrom returns a [MockSource] serving cat.
func MockSourceFrom(cat *models.Catalog) *MockSource {
	return &MockSource{AlbumList: cat.Albums, ArtistList: cat.Artists, TimelineList: cat.Timeline}
}

// FixtureCatalog returns a small catalog with two artists, undated and colliding release dates.
func FixtureCatalog() *models.Catalog {
	return &models.Catalog{
		Albums: []models.Album{
			{
				Name: "Dark Academy", Artist: "Cheekface", Slug: "dark-academy", ArtistSlug: "cheekface",
				ReleaseDate: "2023-10-13", CatalogNumber: "SMR-031", Formats: []string{"LP", "Digital"},
				CoverImage:    "assets/images/albums/dark-academy.jpg",
				FeaturedQuote: &models.FeaturedQuote{Text: "Wry and propulsive.", Source: "Pitchfork"},
				Description:   "The third record.\n\nRecorded in Los Angeles.",
				Tracks:        []models.Track{{Number: 1, Title: "Popular 2"}, {Number: 2, Title: "Wasted Youth"}},
				Press:         []models.PressQuote{{Text: "Smart and loud.", Source: "Stereogum"}},
				BandcampEmbed: `<iframe src="https://bandcamp.com/EmbeddedPlayer/album=123/"><a href="https://cheekface.bandcamp.com/album/dark-academy">Dark Academy</a></iframe>`,
				YoutubeVideo:  "abc123",
			},
			{
				Name: "Too Much to Ask", Artist: "Cheekface", Slug: "too-much-to-ask", ArtistSlug: "cheekface",
				ReleaseDate: "2021-01-22", BandcampURL: "cheekface.bandcamp.com/album/too-much-to-ask",
			},
			{
				Name: "Floods + Fires", Artist: "Pom Pom Squad", Slug: "floods-fires", ArtistSlug: "pom-pom-squad",
				ReleaseDate: "2023-10-13",
			},
			{
				Name: "Demos", Artist: "Pom Pom Squad", Slug: "demos", ArtistSlug: "pom-pom-squad",
			},
		},
		Artists: []models.Artist{
			{Name: "Cheekface", Slug: "cheekface", Bio: "A band from Los Angeles.", Quote: "Talk-singing."},
			{Name: "Pom Pom Squad", Slug: "pom-pom-squad", Bio: "Brooklyn punk."},
		},
		Timeline: []models.TimelineEntry{
			{Date: "2023-10-13", Title: "Dark Academy out now", Type: "release"},
			{Date: "2023-06-01", Title: "Summer tour", Type: "live"},
			{Date: "2022-02-01", Title: "Signing news"},
		},
	}
}

// WriteCatalog writes cat as albums.json, artists.json and timeline.json under dir.
func WriteCatalog(t *testing.T, dir string, cat *models.Catalog) {
	t.Helper()
	for name, v := range map[string]any{
		"albums.json":   cat.Albums,
		"artists.json":  cat.Artists,
		"timeline.json": cat.Timeline,
	} {
		if err := shared.WriteJSONFile(filepath.Join(dir, name), v); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
