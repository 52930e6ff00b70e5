package models

import (
	"errors"
	"testing"

	"github.com/desertthunder/smrx/internal/shared"
)

func TestAlbum(t *testing.T) {
	t.Run("Year", func(t *testing.T) {
		tc := []struct {
			name string
			date string
			want string
		}{
			{name: "full date", date: "2015-03-10", want: "2015"},
			{name: "year only", date: "2003", want: "2003"},
			{name: "undated", date: "", want: ""},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				a := Album{ReleaseDate: tt.date}
				if got := a.Year(); got != tt.want {
					t.Errorf("Year() = %q, want %q", got, tt.want)
				}
			})
		}
	})

	t.Run("Released", func(t *testing.T) {
		a := Album{ReleaseDate: "2012-10-30"}
		got, ok := a.Released()
		if !ok {
			t.Fatal("expected date to parse")
		}
		if got.Year() != 2012 || got.Month() != 10 || got.Day() != 30 {
			t.Errorf("unexpected date %v", got)
		}

		undated := Album{}
		got, ok = undated.Released()
		if ok {
			t.Error("expected undated album to report false")
		}
		if got.Unix() != 0 {
			t.Errorf("expected epoch, got %v", got)
		}

		garbage := Album{ReleaseDate: "sometime"}
		if _, ok := garbage.Released(); ok {
			t.Error("expected malformed date to report false")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := (&Album{Name: "Kowloon", Slug: "kowloon"}).Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		err := (&Album{Name: "Kowloon"}).Validate()
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("HasFeaturedQuote", func(t *testing.T) {
		if (&Album{}).HasFeaturedQuote() {
			t.Error("nil quote should report false")
		}
		if (&Album{FeaturedQuote: &FeaturedQuote{Text: "  "}}).HasFeaturedQuote() {
			t.Error("blank quote should report false")
		}
		if !(&Album{FeaturedQuote: &FeaturedQuote{Text: "Great"}}).HasFeaturedQuote() {
			t.Error("quote with text should report true")
		}
	})
}

func TestCatalog(t *testing.T) {
	t.Run("Validate rejects duplicate album slugs", func(t *testing.T) {
		c := Catalog{Albums: []Album{
			{Name: "Cycle", Slug: "cycle"},
			{Name: "Cycle (Reissue)", Slug: "cycle"},
		}}
		if err := c.Validate(); !errors.Is(err, shared.ErrDuplicateSlug) {
			t.Errorf("expected ErrDuplicateSlug, got %v", err)
		}
	})

	t.Run("Validate rejects path-like slugs", func(t *testing.T) {
		for _, slug := range []string{"../../../escaped", "a/b", `a\b`, "Upper"} {
			c := Catalog{Albums: []Album{{Name: "Escaped", Slug: slug}}}
			if err := c.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("album slug %q: expected ErrInvalidInput, got %v", slug, err)
			}
			c = Catalog{Artists: []Artist{{Name: "Escaped", Slug: slug}}}
			if err := c.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("artist slug %q: expected ErrInvalidInput, got %v", slug, err)
			}
		}
	})

	t.Run("Validate rejects duplicate artist slugs", func(t *testing.T) {
		c := Catalog{Artists: []Artist{
			{Name: "Gatsby", Slug: "gatsby"},
			{Name: "Gatsby", Slug: "gatsby"},
		}}
		if err := c.Validate(); !errors.Is(err, shared.ErrDuplicateSlug) {
			t.Errorf("expected ErrDuplicateSlug, got %v", err)
		}
	})

	t.Run("lookups", func(t *testing.T) {
		c := Catalog{
			Albums:  []Album{{Name: "Pyramid", Slug: "pyramid"}},
			Artists: []Artist{{Name: "Dan London", Slug: "dan-london"}},
		}
		if a, ok := c.Album("pyramid"); !ok || a.Name != "Pyramid" {
			t.Error("expected to find pyramid")
		}
		if _, ok := c.Album("missing"); ok {
			t.Error("did not expect to find missing album")
		}
		if a, ok := c.Artist("dan-london"); !ok || a.Name != "Dan London" {
			t.Error("expected to find dan-london")
		}
	})

	t.Run("TimelineEntry.Year", func(t *testing.T) {
		if got := (TimelineEntry{Date: "2016-03-08"}).Year(); got != "2016" {
			t.Errorf("got %q", got)
		}
		if got := (TimelineEntry{Date: "16"}).Year(); got != "" {
			t.Errorf("got %q", got)
		}
	})
}
