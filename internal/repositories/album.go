package repositories

import (
	"database/sql"

	"github.com/desertthunder/smrx/internal/models"
)

var _ models.Repository[*models.Album] = (*AlbumRepository)(nil)

// AlbumRepository implements models.Repository[*models.Album].
//
// Albums are stored as JSON documents with slug, artist and release date columns for lookups.
type AlbumRepository struct {
	store *docStore[*models.Album]
}

// NewAlbumRepository creates a new AlbumRepository with the given database connection
func NewAlbumRepository(db *sql.DB) *AlbumRepository {
	return &AlbumRepository{store: &docStore[*models.Album]{
		db:      db,
		table:   "albums",
		entity:  "album",
		columns: []string{"artist_slug", "name", "release_date"},
		values: func(a *models.Album) []any {
			return []any{a.ArtistSlug, a.Name, a.ReleaseDate}
		},
		decode: decodeJSON[models.Album]("album"),
	}}
}

// Create inserts a new album. A slug already in use, even by a deleted album, fails with
// [shared.ErrDuplicateSlug].
func (r *AlbumRepository) Create(album *models.Album) error { return r.store.create(album) }

// Get retrieves an album by slug, excluding soft-deleted albums
func (r *AlbumRepository) Get(slug string) (*models.Album, error) { return r.store.get(slug) }

// Update replaces the stored album with the same slug
func (r *AlbumRepository) Update(album *models.Album) error { return r.store.update(album) }

// Upsert creates the album or overwrites the existing one, restoring it if it was deleted
func (r *AlbumRepository) Upsert(album *models.Album) error { return r.store.upsert(album) }

// Delete soft-deletes an album by slug
func (r *AlbumRepository) Delete(slug string) error { return r.store.delete(slug) }

// List retrieves albums in import order.
//
// Supported criteria: "artist_slug" (string) and "year" (string, matched against the release date prefix).
func (r *AlbumRepository) List(criteria map[string]any) ([]*models.Album, error) {
	where := "1 = 1"
	args := []any{}

	if artist, ok := criteria["artist_slug"].(string); ok && artist != "" {
		where += " AND artist_slug = ?"
		args = append(args, artist)
	}
	if year, ok := criteria["year"].(string); ok && year != "" {
		where += " AND release_date LIKE ?"
		args = append(args, year+"%")
	}

	return r.store.list(where, args...)
}

// Slugs returns the slugs of all live albums in import order
func (r *AlbumRepository) Slugs() ([]string, error) { return r.store.slugs() }
