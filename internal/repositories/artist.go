package repositories

import (
	"database/sql"

	"github.com/desertthunder/smrx/internal/models"
)

var _ models.Repository[*models.Artist] = (*ArtistRepository)(nil)

// ArtistRepository implements models.Repository[*models.Artist]
type ArtistRepository struct {
	store *docStore[*models.Artist]
}

// NewArtistRepository creates a new ArtistRepository with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{store: &docStore[*models.Artist]{
		db:      db,
		table:   "artists",
		entity:  "artist",
		columns: []string{"name"},
		values:  func(a *models.Artist) []any { return []any{a.Name} },
		decode:  decodeJSON[models.Artist]("artist"),
	}}
}

func (r *ArtistRepository) Create(artist *models.Artist) error { return r.store.create(artist) }

func (r *ArtistRepository) Get(slug string) (*models.Artist, error) { return r.store.get(slug) }

func (r *ArtistRepository) Update(artist *models.Artist) error { return r.store.update(artist) }

func (r *ArtistRepository) Upsert(artist *models.Artist) error { return r.store.upsert(artist) }

func (r *ArtistRepository) Delete(slug string) error { return r.store.delete(slug) }

// List retrieves artists in import order. Supported criteria: "name" (string, exact match).
func (r *ArtistRepository) List(criteria map[string]any) ([]*models.Artist, error) {
	if name, ok := criteria["name"].(string); ok && name != "" {
		return r.store.list("name = ?", name)
	}
	return r.store.list("")
}

func (r *ArtistRepository) Slugs() ([]string, error) { return r.store.slugs() }
