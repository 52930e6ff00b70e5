package site

import (
	"fmt"
	"html/template"
	"slices"
	"strings"

	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Limits applied when building page views.
const (
	QuoteLimit      = 200
	BioLimit        = 200
	PressLimit      = 6
	RelatedLimit    = 4
	EventsPerYear   = 3
	TimelineLimit   = 30
	DefaultType     = "news"
	pagePrefix      = "../../"
	aboutPagePrefix = "../"
)

// Layout is the data shared by every page template.
type Layout struct {
	PageTitle string
	SiteTitle string
	Prefix    string
	Menu      catalog.Menu
	Roster    []models.Artist
	Live      bool
}

// IndexView is the catalog page.
type IndexView struct {
	Layout
	Grid      catalog.Grid
	Filters   []catalog.FilterButton
	GridClass string
}

// IndexState is the interactive state of the catalog page.
type IndexState struct {
	Filter string
	Menu   catalog.Menu
	Width  int
	Live   bool
}

// QuoteView is a featured quote ready for display.
type QuoteView struct {
	Text   string
	Source string
}

// TrackView is a tracklist row with a zero padded number.
type TrackView struct {
	Number string
	Title  string
}

// AlbumView is an album detail page.
type AlbumView struct {
	Layout
	Album       models.Album
	Cover       string
	ArtistHref  string
	Formats     string
	Quote       *QuoteView
	AudioEmbed  template.HTML
	AudioClass  string
	BuyURL      string
	Description template.HTML
	Tracks      []TrackView
	Credits     []string
	WatchURL    string
	Press       []models.PressQuote
	Related     []catalog.Card
}

// ArtistView is an artist detail page.
type ArtistView struct {
	Layout
	Artist       models.Artist
	Image        string
	Bio          template.HTML
	BandcampURL  string
	YoutubeEmbed template.HTML
	Discography  []catalog.Card
	ReleaseCount string
}

// ArtistItem is one row of the artists index.
type ArtistItem struct {
	Name     string
	Href     string
	Image    string
	Releases string
	Bio      string
}

// ArtistsView is the artists index page.
type ArtistsView struct {
	Layout
	Items []ArtistItem
}

// TimelineEvent is a timeline entry ready for display.
type TimelineEvent struct {
	Date  string
	Title string
	Type  string
}

// TimelineYear groups the displayed events of one year.
type TimelineYear struct {
	Year   string
	Events []TimelineEvent
}

// AboutView is the about page.
type AboutView struct {
	Layout
	Founded  string
	Releases string
	Acts     string
	Timeline []TimelineYear
}

func (g *Generator) layout(title, prefix string, cat *models.Catalog) Layout {
	return Layout{PageTitle: title, SiteTitle: g.opts.Title, Prefix: prefix, Roster: cat.Artists}
}

// artistsFor returns the catalog's artists, deriving them from albums when artists.json was missing.
func artistsFor(cat *models.Catalog) []models.Artist {
	if len(cat.Artists) > 0 {
		return cat.Artists
	}
	return catalog.ArtistsFromAlbums(cat.Albums)
}

// IndexView builds the catalog page for the given state.
func (g *Generator) IndexView(cat *models.Catalog, state IndexState) IndexView {
	artists := artistsFor(cat)
	filter := catalog.NormalizeFilter(state.Filter, artists)

	layout := g.layout("Catalog", "", cat)
	layout.Menu = state.Menu
	layout.Live = state.Live

	return IndexView{
		Layout:    layout,
		Grid:      catalog.BuildGrid(cat.Albums, filter, catalog.CardOptions{Placeholder: g.opts.Placeholder}),
		Filters:   catalog.FilterButtons(artists, filter),
		GridClass: catalog.GridClass(state.Width),
	}
}

// AlbumView builds the detail page of album.
func (g *Generator) AlbumView(album models.Album, cat *models.Catalog) AlbumView {
	v := AlbumView{
		Layout:     g.layout(album.Name+" by "+album.Artist, pagePrefix, cat),
		Album:      album,
		Cover:      catalog.ResolveAsset(album.CoverImage, pagePrefix, g.opts.Placeholder),
		ArtistHref: pagePrefix + "pages/artists/" + album.ArtistSlug + ".html",
		Formats:    strings.Join(album.Formats, ", "),
		BuyURL:     catalog.BuyURL(album),
	}

	if album.HasFeaturedQuote() {
		v.Quote = &QuoteView{
			Text:   shared.Truncate(album.FeaturedQuote.Text, QuoteLimit, "..."),
			Source: album.FeaturedQuote.Source,
		}
	}

	switch {
	case album.BandcampEmbed != "":
		v.AudioEmbed = template.HTML(album.BandcampEmbed)
		v.AudioClass = "audio-embed audio-embed--hero"
	case album.SoundcloudEmbed != "":
		v.AudioEmbed = template.HTML(album.SoundcloudEmbed)
		v.AudioClass = "audio-embed audio-embed--hero audio-embed--soundcloud"
	}

	v.Description = g.markdown(album.Description)

	for _, t := range album.Tracks {
		v.Tracks = append(v.Tracks, TrackView{Number: fmt.Sprintf("%02d", t.Number), Title: t.Title})
	}
	for _, line := range strings.Split(album.Credits, "\n") {
		if strings.TrimSpace(line) != "" {
			v.Credits = append(v.Credits, line)
		}
	}

	switch {
	case album.YoutubePlaylist != "":
		v.WatchURL = "https://www.youtube.com/embed/videoseries?list=" + album.YoutubePlaylist
	case album.YoutubeVideo != "":
		v.WatchURL = "https://www.youtube.com/embed/" + album.YoutubeVideo
	}

	if len(album.Press) > PressLimit {
		v.Press = album.Press[:PressLimit]
	} else {
		v.Press = album.Press
	}

	opts := catalog.CardOptions{Prefix: pagePrefix, Placeholder: g.opts.Placeholder, HrefBase: "./"}
	for _, r := range catalog.RelatedAlbums(album, cat.Albums, RelatedLimit) {
		card := catalog.NewCard(r, opts)
		card.Year = ""
		v.Related = append(v.Related, card)
	}
	return v
}

// ArtistView builds the detail page of artist.
func (g *Generator) ArtistView(artist models.Artist, cat *models.Catalog) ArtistView {
	v := ArtistView{
		Layout:       g.layout(artist.Name, pagePrefix, cat),
		Artist:       artist,
		Image:        catalog.ResolveAsset(artist.HeroImage, pagePrefix, g.opts.Placeholder),
		Bio:          g.markdown(artist.Bio),
		BandcampURL:  withScheme(artist.BandcampURL),
		YoutubeEmbed: template.HTML(artist.YoutubeEmbed),
	}

	albums := catalog.AlbumsByArtist(cat.Albums, artist.Slug)
	opts := catalog.CardOptions{Prefix: pagePrefix, Placeholder: g.opts.Placeholder}
	for _, a := range albums {
		card := catalog.NewCard(a, opts)
		card.Artist = ""
		card.Year = ""
		v.Discography = append(v.Discography, card)
	}
	v.ReleaseCount = fmt.Sprintf("%d %s", len(albums), shared.Plural(len(albums), "release"))
	return v
}

// ArtistsView builds the artists index.
func (g *Generator) ArtistsView(cat *models.Catalog) ArtistsView {
	counts := catalog.ReleaseCount(cat.Albums)
	v := ArtistsView{Layout: g.layout("Artists", pagePrefix, cat)}
	for _, a := range cat.Artists {
		n := counts[a.Slug]
		v.Items = append(v.Items, ArtistItem{
			Name:     a.Name,
			Href:     a.Slug + ".html",
			Image:    catalog.ResolveAsset(a.HeroImage, pagePrefix, g.opts.Placeholder),
			Releases: fmt.Sprintf("%d %s", n, shared.Plural(n, "release")),
			Bio:      shared.Truncate(a.Bio, BioLimit, "..."),
		})
	}
	return v
}

// AboutView builds the about page.
func (g *Generator) AboutView(cat *models.Catalog) AboutView {
	v := AboutView{
		Layout:   g.layout("About", aboutPagePrefix, cat),
		Releases: fmt.Sprintf("%d %s", len(cat.Albums), shared.Plural(len(cat.Albums), "Release")),
		Acts:     fmt.Sprintf("%d %s", len(cat.Artists), shared.Plural(len(cat.Artists), "Act")),
		Timeline: GroupTimeline(cat.Timeline, EventsPerYear, TimelineLimit),
	}

	for _, a := range catalog.SortByReleaseDate(cat.Albums) {
		if y := a.Year(); y != "" {
			v.Founded = y
		}
	}
	return v
}

// GroupTimeline groups dated entries by year, newest year first.
//
// Each year keeps at most perYear entries in input order and the result holds at most
// limit entries overall. Undated entries are dropped. Types are title cased with
// [DefaultType] for entries that have none.
func GroupTimeline(entries []models.TimelineEntry, perYear, limit int) []TimelineYear {
	byYear := make(map[string][]models.TimelineEntry)
	var years []string
	for _, e := range entries {
		y := e.Year()
		if y == "" {
			continue
		}
		if _, ok := byYear[y]; !ok {
			years = append(years, y)
		}
		byYear[y] = append(byYear[y], e)
	}
	slices.Sort(years)
	slices.Reverse(years)

	title := cases.Title(language.English)
	var (
		groups []TimelineYear
		shown  int
	)
	for _, y := range years {
		events := byYear[y]
		if len(events) > perYear {
			events = events[:perYear]
		}

		group := TimelineYear{Year: y}
		for _, e := range events {
			if shown == limit {
				break
			}
			typ := e.Type
			if typ == "" {
				typ = DefaultType
			}
			group.Events = append(group.Events, TimelineEvent{Date: e.Date, Title: e.Title, Type: title.String(typ)})
			shown++
		}
		if len(group.Events) > 0 {
			groups = append(groups, group)
		}
		if shown == limit {
			break
		}
	}
	return groups
}

func withScheme(url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return "https://" + url
}
