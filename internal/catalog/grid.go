package catalog

import (
	"slices"
	"strings"

	"github.com/desertthunder/smrx/internal/models"
)

// FilterAll is the filter value that keeps every album.
const FilterAll = "all"

// DefaultPlaceholder is the cover shown for albums without artwork.
const DefaultPlaceholder = "assets/images/placeholder.svg"

// Card is the view of one album in a grid.
type Card struct {
	Href       string
	Slug       string
	ArtistSlug string
	Artist     string
	Title      string
	Cover      string
	Alt        string
	Year       string
}

// CardOptions controls how links and images in a card are resolved.
type CardOptions struct {
	Prefix      string // Path prefix from the page back to the site root, e.g. "../../"
	Placeholder string // Cover used when an album has none
	HrefBase    string // Directory album links point into; defaults to {Prefix}pages/albums/
}

// Grid is a filtered, sorted set of cards ready to render.
type Grid struct {
	Cards  []Card
	Count  int
	Filter string
}

// FilterAlbums returns the albums whose artist slug equals filter, or all albums for [FilterAll] or "".
//
// The input slice is never modified.
func FilterAlbums(albums []models.Album, filter string) []models.Album {
	if filter == "" || filter == FilterAll {
		return slices.Clone(albums)
	}

	filtered := make([]models.Album, 0, len(albums))
	for _, a := range albums {
		if a.ArtistSlug == filter {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// SortByReleaseDate returns a copy of albums ordered most recent first.
//
// Undated albums sort as the Unix epoch; equal dates keep their input order.
func SortByReleaseDate(albums []models.Album) []models.Album {
	sorted := slices.Clone(albums)
	slices.SortStableFunc(sorted, func(a, b models.Album) int {
		da, _ := a.Released()
		db, _ := b.Released()
		return db.Compare(da)
	})
	return sorted
}

// ResolveAsset turns a site-relative asset path into one usable from a page at prefix.
//
// Absolute URLs and paths that already climb out with "../" are returned unchanged.
// An empty path resolves to the placeholder.
func ResolveAsset(path, prefix, placeholder string) string {
	if path == "" {
		if placeholder == "" {
			placeholder = DefaultPlaceholder
		}
		return prefix + placeholder
	}
	if strings.HasPrefix(path, "http") || strings.HasPrefix(path, "../") {
		return path
	}
	return prefix + path
}

// NewCard builds the card for a single album.
func NewCard(a models.Album, opts CardOptions) Card {
	hrefBase := opts.HrefBase
	if hrefBase == "" {
		hrefBase = opts.Prefix + "pages/albums/"
	}

	return Card{
		Href:       hrefBase + a.Slug + ".html",
		Slug:       a.Slug,
		ArtistSlug: a.ArtistSlug,
		Artist:     a.Artist,
		Title:      a.Name,
		Cover:      ResolveAsset(a.CoverImage, opts.Prefix, opts.Placeholder),
		Alt:        a.Name + " album cover",
		Year:       a.Year(),
	}
}

// BuildGrid filters albums by artist, sorts them newest first and converts each to a [Card].
func BuildGrid(albums []models.Album, filter string, opts CardOptions) Grid {
	if filter == "" {
		filter = FilterAll
	}

	sorted := SortByReleaseDate(FilterAlbums(albums, filter))

	cards := make([]Card, 0, len(sorted))
	for _, a := range sorted {
		cards = append(cards, NewCard(a, opts))
	}

	return Grid{Cards: cards, Count: len(cards), Filter: filter}
}
