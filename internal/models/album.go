package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/smrx/internal/shared"
)

// DateLayout is the layout used by release dates in albums.json.
const DateLayout = "2006-01-02"

// Album is a single release as stored in albums.json.
type Album struct {
	Name            string         `json:"name"`
	Artist          string         `json:"artist"`
	Slug            string         `json:"slug"`
	ArtistSlug      string         `json:"artistSlug"`
	ReleaseDate     string         `json:"releaseDate,omitempty"`
	CatalogNumber   string         `json:"catalogNumber,omitempty"`
	Formats         []string       `json:"formats,omitempty"`
	CoverImage      string         `json:"coverImage,omitempty"`
	FeaturedQuote   *FeaturedQuote `json:"featuredQuote,omitempty"`
	Description     string         `json:"description,omitempty"`
	Tracks          []Track        `json:"tracks,omitempty"`
	Credits         string         `json:"credits,omitempty"`
	Press           []PressQuote   `json:"press,omitempty"`
	BandcampURL     string         `json:"bandcampUrl,omitempty"`
	BandcampEmbed   string         `json:"bandcampEmbed,omitempty"`
	SoundcloudEmbed string         `json:"soundcloudEmbed,omitempty"`
	YoutubePlaylist string         `json:"youtubePlaylist,omitempty"`
	YoutubeVideo    string         `json:"youtubeVideo,omitempty"`
}

// Track is one entry of an album's tracklist.
type Track struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// PressQuote is a review excerpt with its outlet.
type PressQuote struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
}

// FeaturedQuote is the headline quote shown in an album's hero.
type FeaturedQuote struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

func (a *Album) Key() string { return a.Slug }

// Validate requires a name and a lowercase, hyphenated slug.
func (a *Album) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: album name is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(a.Slug) == "" {
		return fmt.Errorf("%w: album slug is required (%s)", shared.ErrInvalidInput, a.Name)
	}
	if !shared.ValidSlug(a.Slug) {
		return fmt.Errorf("%w: invalid album slug %q", shared.ErrInvalidInput, a.Slug)
	}
	return nil
}

// Year returns the leading year component of the release date, or "" when undated.
func (a *Album) Year() string {
	if a.ReleaseDate == "" {
		return ""
	}
	return strings.SplitN(a.ReleaseDate, "-", 2)[0]
}

// Released parses the release date. Undated or malformed albums report the Unix epoch and false.
func (a *Album) Released() (time.Time, bool) {
	if a.ReleaseDate == "" {
		return time.Unix(0, 0).UTC(), false
	}
	for _, layout := range []string{DateLayout, "2006-01", "2006"} {
		if t, err := time.Parse(layout, a.ReleaseDate); err == nil {
			return t, true
		}
	}
	return time.Unix(0, 0).UTC(), false
}

// HasFeaturedQuote reports whether the featured quote carries any text.
func (a *Album) HasFeaturedQuote() bool {
	return a.FeaturedQuote != nil && strings.TrimSpace(a.FeaturedQuote.Text) != ""
}
