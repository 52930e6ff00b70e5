package models

import (
	"fmt"

	"github.com/desertthunder/smrx/internal/shared"
)

// Catalog bundles everything a site build needs.
type Catalog struct {
	Albums   []Album
	Artists  []Artist
	Timeline []TimelineEntry
}

// Validate checks every record and enforces unique album and artist slugs.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Albums))
	for i := range c.Albums {
		if err := c.Albums[i].Validate(); err != nil {
			return err
		}
		if seen[c.Albums[i].Slug] {
			return fmt.Errorf("%w: album %q", shared.ErrDuplicateSlug, c.Albums[i].Slug)
		}
		seen[c.Albums[i].Slug] = true
	}

	seen = make(map[string]bool, len(c.Artists))
	for i := range c.Artists {
		if err := c.Artists[i].Validate(); err != nil {
			return err
		}
		if seen[c.Artists[i].Slug] {
			return fmt.Errorf("%w: artist %q", shared.ErrDuplicateSlug, c.Artists[i].Slug)
		}
		seen[c.Artists[i].Slug] = true
	}
	return nil
}

// Album returns the album with the given slug.
func (c *Catalog) Album(slug string) (*Album, bool) {
	for i := range c.Albums {
		if c.Albums[i].Slug == slug {
			return &c.Albums[i], true
		}
	}
	return nil, false
}

// Artist returns the artist with the given slug.
func (c *Catalog) Artist(slug string) (*Artist, bool) {
	for i := range c.Artists {
		if c.Artists[i].Slug == slug {
			return &c.Artists[i], true
		}
	}
	return nil, false
}
