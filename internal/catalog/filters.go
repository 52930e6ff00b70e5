package catalog

import "github.com/desertthunder/smrx/internal/models"

// FilterButton is one entry of the artist filter control.
type FilterButton struct {
	Label  string
	Value  string
	Active bool
}

// FilterButtons returns "All" followed by one button per artist.
//
// Exactly one button is active. An active value that matches no button selects "All".
func FilterButtons(artists []models.Artist, active string) []FilterButton {
	active = NormalizeFilter(active, artists)

	buttons := make([]FilterButton, 0, len(artists)+1)
	buttons = append(buttons, FilterButton{Label: "All", Value: FilterAll, Active: active == FilterAll})
	for _, a := range artists {
		buttons = append(buttons, FilterButton{Label: a.Name, Value: a.Slug, Active: active == a.Slug})
	}
	return buttons
}

// NormalizeFilter returns filter when it names one of the artists, otherwise [FilterAll].
func NormalizeFilter(filter string, artists []models.Artist) string {
	for _, a := range artists {
		if a.Slug == filter {
			return filter
		}
	}
	return FilterAll
}

// ArtistsFromAlbums derives a minimal artist list from album records, in order of first appearance.
//
// Used when artists.json is unavailable so the filter control still has entries.
func ArtistsFromAlbums(albums []models.Album) []models.Artist {
	seen := make(map[string]bool)
	var artists []models.Artist
	for _, a := range albums {
		if a.ArtistSlug == "" || seen[a.ArtistSlug] {
			continue
		}
		seen[a.ArtistSlug] = true
		artists = append(artists, models.Artist{Name: a.Artist, Slug: a.ArtistSlug})
	}
	return artists
}
