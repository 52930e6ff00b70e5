package importers

import (
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

const (
	contentNS       = "http://purl.org/rss/1.0/modules/content/"
	statusPublish   = "publish"
	postTypePost    = "post"
	uncategorized   = "Uncategorized"
	excerptFallback = 300
)

// Timeline entry types assigned by [Classify].
const (
	TypePress     = "press"
	TypeRelease   = "release"
	TypeLive      = "live"
	TypeVideo     = "video"
	TypePlacement = "placement"
	TypeRadio     = "radio"
	TypeNews      = "news"
)

// Title keywords per type, checked in order; the first match wins.
var classifiers = []struct {
	kind     string
	keywords []string
}{
	{TypePress, []string{"review", "love", "praise", "kind words", "best of"}},
	{TypeRelease, []string{"out now", "on sale", "release", "vinyl", "digital"}},
	{TypeLive, []string{"live", "show", "concert", "tour"}},
	{TypeVideo, []string{"video", "premiere"}},
	{TypePlacement, []string{"mtv", "tv", "placement"}},
	{TypeRadio, []string{"radio", "wmbr", "wmfo", "pipeline"}},
}

var (
	htmlTag    = regexp.MustCompile(`<[^>]+>`)
	whitespace = regexp.MustCompile(`\s+`)

	bandcampURL = []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://[a-zA-Z0-9-]+\.bandcamp\.com[^\s"'<>]*`),
	}
	soundcloudURL = []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://soundcloud\.com/[^\s"'<>]+`),
		regexp.MustCompile(`(?i)api\.soundcloud\.com/playlists/[0-9]+`),
	}
	youtubeID = []*regexp.Regexp{
		regexp.MustCompile(`(?i)youtube\.com/watch\?v=([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`(?i)youtu\.be/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`(?i)youtube\.com/embed/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`(?i)youtube\.com/playlist\?list=([a-zA-Z0-9_-]+)`),
	}
)

type wxrDocument struct {
	Channel wxrChannel `xml:"channel"`
}

type wxrChannel struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	Categories  []wxrCategory `xml:"category"`
	Items       []wxrItem     `xml:"item"`
}

type wxrCategory struct {
	TermID   string `xml:"term_id"`
	Nicename string `xml:"category_nicename"`
	Name     string `xml:"cat_name"`
}

type wxrItem struct {
	Title    string       `xml:"title"`
	PubDate  string       `xml:"pubDate"`
	PostID   string       `xml:"post_id"`
	PostName string       `xml:"post_name"`
	PostType string       `xml:"post_type"`
	Status   string       `xml:"status"`
	Encoded  []wxrEncoded `xml:"encoded"`
	Terms    []wxrTerm    `xml:"category"`
}

// content:encoded and excerpt:encoded share a local name.
type wxrEncoded struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type wxrTerm struct {
	Domain string `xml:"domain,attr"`
	Name   string `xml:",chardata"`
}

// Export is the subset of a WordPress export the archive uses.
type Export struct {
	Title      string
	Link       string
	Categories []Category
	Posts      []Post
}

// Category is a WordPress category; the label used one per artist.
type Category struct {
	ID   string
	Slug string
	Name string
}

// Post is a published WordPress post.
type Post struct {
	ID         string
	Title      string
	Slug       string
	Date       string
	Content    string
	Excerpt    string
	Categories []string
	Tags       []string
	URLs       MediaURLs
}

// MediaURLs are the streaming links found in a post body.
type MediaURLs struct {
	Bandcamp   []string
	SoundCloud []string
	YouTube    []string // video or playlist ids
}

// ParseWXR reads a WordPress export and keeps published posts, newest first.
func ParseWXR(r io.Reader) (*Export, error) {
	var doc wxrDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse WordPress export: %v", shared.ErrMalformedData, err)
	}

	export := &Export{Title: doc.Channel.Title, Link: doc.Channel.Link}
	for _, c := range doc.Channel.Categories {
		if c.Nicename == "" {
			continue
		}
		export.Categories = append(export.Categories, Category{ID: c.TermID, Slug: c.Nicename, Name: strings.TrimSpace(c.Name)})
	}

	for _, item := range doc.Channel.Items {
		if item.Status != statusPublish || item.PostType != postTypePost {
			continue
		}

		post := Post{
			ID:    item.PostID,
			Title: strings.TrimSpace(item.Title),
			Slug:  item.PostName,
			Date:  wxrDate(item.PubDate),
		}
		for _, enc := range item.Encoded {
			if enc.XMLName.Space == contentNS {
				post.Content = enc.Text
			} else {
				post.Excerpt = enc.Text
			}
		}
		for _, term := range item.Terms {
			switch term.Domain {
			case "category":
				post.Categories = append(post.Categories, strings.TrimSpace(term.Name))
			case "post_tag":
				post.Tags = append(post.Tags, strings.TrimSpace(term.Name))
			}
		}
		post.URLs = ExtractURLs(post.Content)
		export.Posts = append(export.Posts, post)
	}

	slices.SortStableFunc(export.Posts, func(a, b Post) int {
		return strings.Compare(b.Date, a.Date)
	})
	return export, nil
}

// wxrDate converts an RSS pubDate to YYYY-MM-DD, keeping the raw value when it does not parse.
func wxrDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC1123Z, s)
	if err != nil {
		return s
	}
	return t.Format(models.DateLayout)
}

// CleanHTML strips tags, decodes entities and collapses whitespace.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	s = htmlTag.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// ExtractURLs finds Bandcamp and SoundCloud links and YouTube ids in content.
// Each list keeps first-seen order without duplicates.
func ExtractURLs(content string) MediaURLs {
	var urls MediaURLs
	if content == "" {
		return urls
	}
	urls.Bandcamp = findAll(content, bandcampURL, false)
	urls.SoundCloud = findAll(content, soundcloudURL, false)
	urls.YouTube = findAll(content, youtubeID, true)
	return urls
}

func findAll(content string, patterns []*regexp.Regexp, group bool) []string {
	var out []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			v := m[0]
			if group {
				v = m[1]
			}
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// Classify assigns a timeline type from title keywords, defaulting to news.
func Classify(title string) string {
	lower := strings.ToLower(title)
	for _, c := range classifiers {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.kind
			}
		}
	}
	return TypeNews
}

// Timeline converts published posts into timeline entries.
func (e *Export) Timeline() []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(e.Posts))
	for _, p := range e.Posts {
		excerpt := CleanHTML(p.Excerpt)
		if excerpt == "" {
			excerpt = shared.Truncate(CleanHTML(p.Content), excerptFallback, "")
		}
		entries = append(entries, models.TimelineEntry{
			Date:       p.Date,
			Title:      p.Title,
			Type:       Classify(p.Title),
			Categories: p.Categories,
			Tags:       p.Tags,
			Excerpt:    excerpt,
		})
	}
	return entries
}

// Artists builds one artist per category, linking albums by artist name.
// An artist without a Bandcamp URL borrows the first one found on its albums.
func (e *Export) Artists(albums []models.Album) []models.Artist {
	var artists []models.Artist
	for _, c := range e.Categories {
		if c.Name == uncategorized || c.Name == "" {
			continue
		}
		artist := models.Artist{Name: c.Name, Slug: c.Slug}
		for _, a := range albums {
			if a.Artist != c.Name {
				continue
			}
			artist.Albums = append(artist.Albums, models.AlbumRef{Name: a.Name, Slug: a.Slug})
			if artist.BandcampURL == "" && a.BandcampURL != "" {
				artist.BandcampURL = a.BandcampURL
			}
		}
		artists = append(artists, artist)
	}
	return artists
}

// MergeArtists appends the artists in incoming whose slug is not already present.
// Existing records are never modified. Returns the merged list and the number added.
func MergeArtists(existing, incoming []models.Artist) ([]models.Artist, int) {
	merged := slices.Clone(existing)
	added := 0
	for _, a := range incoming {
		if slices.ContainsFunc(merged, func(m models.Artist) bool { return m.Slug == a.Slug }) {
			continue
		}
		merged = append(merged, a)
		added++
	}
	return merged, added
}
