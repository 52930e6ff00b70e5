package catalog

import (
	"slices"
	"testing"

	"github.com/desertthunder/smrx/internal/models"
	tu "github.com/desertthunder/smrx/internal/testing"
)

func TestFilterButtons(t *testing.T) {
	artists := tu.FixtureCatalog().Artists

	tc := []struct {
		name       string
		active     string
		wantActive string
	}{
		{name: "all", active: FilterAll, wantActive: FilterAll},
		{name: "artist", active: "cheekface", wantActive: "cheekface"},
		{name: "unknown falls back", active: "nobody", wantActive: FilterAll},
		{name: "empty falls back", active: "", wantActive: FilterAll},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			buttons := FilterButtons(artists, tt.active)
			if len(buttons) != 3 {
				t.Fatalf("expected 3 buttons, got %d", len(buttons))
			}
			if buttons[0].Label != "All" || buttons[0].Value != FilterAll {
				t.Errorf("expected All first, got %+v", buttons[0])
			}

			active := 0
			for _, b := range buttons {
				if b.Active {
					active++
					if b.Value != tt.wantActive {
						t.Errorf("expected %q active, got %q", tt.wantActive, b.Value)
					}
				}
			}
			if active != 1 {
				t.Errorf("expected exactly one active button, got %d", active)
			}
		})
	}
}

func TestArtistsFromAlbums(t *testing.T) {
	artists := ArtistsFromAlbums(tu.FixtureCatalog().Albums)
	var got []string
	for _, a := range artists {
		got = append(got, a.Slug)
	}
	if !slices.Equal(got, []string{"cheekface", "pom-pom-squad"}) {
		t.Errorf("unexpected artists %v", got)
	}
}

func TestMenu(t *testing.T) {
	t.Run("Toggle", func(t *testing.T) {
		var m Menu
		if m.IsOpen() || m.AriaExpanded() != "false" || m.NavClass() != "site-nav" {
			t.Fatal("expected closed menu")
		}
		if !m.Toggle() {
			t.Error("expected Toggle to open")
		}
		if m.AriaExpanded() != "true" || m.NavClass() != "site-nav site-nav--open" {
			t.Errorf("unexpected open state: %s %s", m.AriaExpanded(), m.NavClass())
		}
		if m.Toggle() {
			t.Error("expected Toggle to close")
		}
	})

	t.Run("Click", func(t *testing.T) {
		tc := []struct {
			name   string
			open   bool
			target Target
			want   bool
		}{
			{name: "toggle opens", open: false, target: TargetToggle, want: true},
			{name: "toggle closes", open: true, target: TargetToggle, want: false},
			{name: "inside nav keeps open", open: true, target: TargetNav, want: true},
			{name: "outside closes", open: true, target: TargetOutside, want: false},
			{name: "outside while closed", open: false, target: TargetOutside, want: false},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				m := Menu{open: tt.open}
				m.Click(tt.target)
				if m.IsOpen() != tt.want {
					t.Errorf("got open=%v, want %v", m.IsOpen(), tt.want)
				}
			})
		}
	})

	t.Run("MenuFromQuery", func(t *testing.T) {
		if m := MenuFromQuery("open"); !m.IsOpen() || m.ToggleQuery() != "closed" {
			t.Error("expected open menu")
		}
		if m := MenuFromQuery("yes"); m.IsOpen() || m.ToggleQuery() != "open" {
			t.Error("expected closed menu")
		}
	})
}

func TestGridClass(t *testing.T) {
	tc := []struct {
		width int
		want  string
	}{
		{-1, "grid-cols-4"},
		{0, "grid-cols-4"},
		{320, "grid-cols-1"},
		{639, "grid-cols-1"},
		{640, "grid-cols-2"},
		{767, "grid-cols-2"},
		{768, "grid-cols-3"},
		{1023, "grid-cols-3"},
		{1024, "grid-cols-4"},
		{2560, "grid-cols-4"},
	}
	for _, tt := range tc {
		if got := GridClass(tt.width); got != tt.want {
			t.Errorf("GridClass(%d) = %q, want %q", tt.width, got, tt.want)
		}
		if !slices.Contains(GridClasses, GridClass(tt.width)) {
			t.Errorf("GridClass(%d) returned unknown class", tt.width)
		}
	}
}

func TestRelated(t *testing.T) {
	albums := tu.FixtureCatalog().Albums

	t.Run("AlbumsByArtist", func(t *testing.T) {
		if got := AlbumsByArtist(albums, "cheekface"); len(got) != 2 {
			t.Errorf("expected 2 albums, got %d", len(got))
		}
	})

	t.Run("RelatedAlbums excludes self and honours limit", func(t *testing.T) {
		got := RelatedAlbums(albums[2], albums, 4)
		if !slices.Equal(slugs(got), []string{"demos"}) {
			t.Errorf("unexpected related %v", slugs(got))
		}
		if got := RelatedAlbums(albums[0], albums, 0); len(got) != 0 {
			t.Errorf("expected no albums with zero limit, got %v", slugs(got))
		}
	})

	t.Run("BuyURL", func(t *testing.T) {
		tc := []struct {
			name  string
			album models.Album
			want  string
		}{
			{name: "embed href", album: albums[0], want: "https://cheekface.bandcamp.com/album/dark-academy"},
			{name: "url without scheme", album: albums[1], want: "https://cheekface.bandcamp.com/album/too-much-to-ask"},
			{name: "url with scheme", album: models.Album{BandcampURL: "http://x.bandcamp.com"}, want: "http://x.bandcamp.com"},
			{name: "embed without link", album: models.Album{BandcampEmbed: "<iframe></iframe>", BandcampURL: "x.bandcamp.com"}, want: ""},
			{name: "nothing", album: models.Album{}, want: ""},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := BuyURL(tt.album); got != tt.want {
					t.Errorf("got %q, want %q", got, tt.want)
				}
			})
		}
	})

	t.Run("ReleaseCount", func(t *testing.T) {
		counts := ReleaseCount(albums)
		if counts["cheekface"] != 2 || counts["pom-pom-squad"] != 2 {
			t.Errorf("unexpected counts %v", counts)
		}
	})
}

func TestSearch(t *testing.T) {
	albums := tu.FixtureCatalog().Albums

	t.Run("empty query sorts", func(t *testing.T) {
		got := Search(albums, "")
		if got[0].Slug != "dark-academy" || len(got) != 4 {
			t.Errorf("unexpected results %v", slugs(got))
		}
	})

	t.Run("matches name", func(t *testing.T) {
		got := Search(albums, "floods")
		if len(got) == 0 || got[0].Slug != "floods-fires" {
			t.Errorf("expected floods-fires first, got %v", slugs(got))
		}
	})

	t.Run("matches artist", func(t *testing.T) {
		got := Search(albums, "pompom")
		if len(got) != 2 {
			t.Errorf("expected 2 pom pom squad albums, got %v", slugs(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := Search(albums, "zzzzqqq"); len(got) != 0 {
			t.Errorf("expected no results, got %v", slugs(got))
		}
	})
}
