package catalog

import (
	"regexp"
	"strings"

	"github.com/desertthunder/smrx/internal/models"
)

var embedHref = regexp.MustCompile(`href="(https://[^"]+)"`)

// AlbumsByArtist returns the albums credited to artistSlug in catalog order.
func AlbumsByArtist(albums []models.Album, artistSlug string) []models.Album {
	var out []models.Album
	for _, a := range albums {
		if a.ArtistSlug == artistSlug {
			out = append(out, a)
		}
	}
	return out
}

// RelatedAlbums returns up to limit other albums by the same artist.
func RelatedAlbums(album models.Album, albums []models.Album, limit int) []models.Album {
	var out []models.Album
	for _, a := range albums {
		if len(out) == limit {
			break
		}
		if a.ArtistSlug == album.ArtistSlug && a.Slug != album.Slug {
			out = append(out, a)
		}
	}
	return out
}

// BuyURL returns the purchase link for an album.
//
// The link inside a Bandcamp embed is album specific and wins; otherwise the
// bandcampUrl field is used with a scheme added when it lacks one.
func BuyURL(album models.Album) string {
	if album.BandcampEmbed != "" {
		if m := embedHref.FindStringSubmatch(album.BandcampEmbed); m != nil {
			return m[1]
		}
		return ""
	}
	if album.BandcampURL != "" {
		if strings.HasPrefix(album.BandcampURL, "http") {
			return album.BandcampURL
		}
		return "https://" + album.BandcampURL
	}
	return ""
}

// ReleaseCount returns how many albums each artist slug has.
func ReleaseCount(albums []models.Album) map[string]int {
	counts := make(map[string]int)
	for _, a := range albums {
		counts[a.ArtistSlug]++
	}
	return counts
}
