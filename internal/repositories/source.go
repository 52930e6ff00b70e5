package repositories

import (
	"context"
	"database/sql"

	"github.com/desertthunder/smrx/internal/models"
)

// Store bundles the catalog repositories and serves them as a catalog source, so the site
// can be built from the database in place of the JSON data directory.
type Store struct {
	AlbumRepo    *AlbumRepository
	ArtistRepo   *ArtistRepository
	TimelineRepo *TimelineRepository
}

// NewStore creates the album, artist and timeline repositories for db.
func NewStore(db *sql.DB) *Store {
	return &Store{
		AlbumRepo:    NewAlbumRepository(db),
		ArtistRepo:   NewArtistRepository(db),
		TimelineRepo: NewTimelineRepository(db),
	}
}

func (s *Store) Albums(ctx context.Context) ([]models.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	albums, err := s.AlbumRepo.List(nil)
	if err != nil {
		return nil, err
	}
	return deref(albums), nil
}

func (s *Store) Artists(ctx context.Context) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	artists, err := s.ArtistRepo.List(nil)
	if err != nil {
		return nil, err
	}
	return deref(artists), nil
}

func (s *Store) Timeline(ctx context.Context) ([]models.TimelineEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.TimelineRepo.List()
}

func deref[T any](ptrs []*T) []T {
	out := make([]T, 0, len(ptrs))
	for _, p := range ptrs {
		out = append(out, *p)
	}
	return out
}
