package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/smrx/internal/shared"
)

// Artist is a label act as stored in artists.json.
type Artist struct {
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Bio          string     `json:"bio,omitempty"`
	HeroImage    string     `json:"heroImage,omitempty"`
	Quote        string     `json:"quote,omitempty"`
	BandcampURL  string     `json:"bandcampUrl,omitempty"`
	YoutubeEmbed string     `json:"youtubeEmbed,omitempty"`
	Albums       []AlbumRef `json:"albums,omitempty"`
}

// AlbumRef is the short album reference kept on an artist record.
type AlbumRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (a *Artist) Key() string { return a.Slug }

// Validate requires a name and a lowercase, hyphenated slug.
func (a *Artist) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: artist name is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(a.Slug) == "" {
		return fmt.Errorf("%w: artist slug is required (%s)", shared.ErrInvalidInput, a.Name)
	}
	if !shared.ValidSlug(a.Slug) {
		return fmt.Errorf("%w: invalid artist slug %q", shared.ErrInvalidInput, a.Slug)
	}
	return nil
}

// TimelineEntry is a dated label event.
type TimelineEntry struct {
	Date       string   `json:"date"`
	Title      string   `json:"title"`
	Type       string   `json:"type,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Excerpt    string   `json:"excerpt,omitempty"`
}

// Year returns the first four characters of the date, or "" if the date is too short.
func (e TimelineEntry) Year() string {
	if len(e.Date) < 4 {
		return ""
	}
	return e.Date[:4]
}
