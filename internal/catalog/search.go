package catalog

import (
	"github.com/desertthunder/smrx/internal/models"
	"github.com/sahilm/fuzzy"
)

// albumIndex implements [fuzzy.Source] over album names and artists.
type albumIndex []models.Album

func (a albumIndex) String(i int) string { return a[i].Name + " " + a[i].Artist }
func (a albumIndex) Len() int            { return len(a) }

// Search returns albums fuzzily matching query, best match first.
//
// An empty query returns every album sorted by release date.
func Search(albums []models.Album, query string) []models.Album {
	if query == "" {
		return SortByReleaseDate(albums)
	}

	matches := fuzzy.FindFrom(query, albumIndex(albums))
	out := make([]models.Album, 0, len(matches))
	for _, m := range matches {
		out = append(out, albums[m.Index])
	}
	return out
}
