package importers

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/smrx/internal/models"
)

var (
	embedAlbumID = regexp.MustCompile(`album=(\d+)`)
	embedLink    = regexp.MustCompile(`<a href="([^"]+)">([^<]+)</a>`)
)

// BandcampEmbed identifies a Bandcamp album player.
type BandcampEmbed struct {
	AlbumID string
	Href    string
	Title   string
}

// ParseBandcampEmbed extracts the album id and fallback link from an embed snippet.
//
// Both must be present; anything else is left for the caller to keep as is.
func ParseBandcampEmbed(html string) (BandcampEmbed, bool) {
	id := embedAlbumID.FindStringSubmatch(html)
	if id == nil {
		return BandcampEmbed{}, false
	}
	link := embedLink.FindStringSubmatch(html)
	if link == nil {
		return BandcampEmbed{}, false
	}
	return BandcampEmbed{AlbumID: id[1], Href: link[1], Title: link[2]}, true
}

// HTML renders the compact player: 120px high, no artwork, no tracklist.
func (e BandcampEmbed) HTML() string {
	return fmt.Sprintf(
		`<iframe style="border: 0; width: 100%%; height: 120px;" src="https://bandcamp.com/EmbeddedPlayer/album=%s/size=large/bgcol=ffffff/linkcol=0687f5/tracklist=false/artwork=none/transparent=true/" seamless><a href="%s">%s</a></iframe>`,
		e.AlbumID, e.Href, e.Title,
	)
}

// CompactEmbed rewrites a Bandcamp embed as the compact player.
// Snippets that cannot be parsed are returned unchanged.
func CompactEmbed(html string) string {
	if html == "" {
		return html
	}
	e, ok := ParseBandcampEmbed(html)
	if !ok {
		return html
	}
	return e.HTML()
}

// CompactEmbeds rewrites every album's Bandcamp embed in place and returns the number changed.
func CompactEmbeds(albums []models.Album, logger *log.Logger) int {
	updated := 0
	for i := range albums {
		old := albums[i].BandcampEmbed
		if next := CompactEmbed(old); next != old {
			albums[i].BandcampEmbed = next
			updated++
			logger.Info("compacted embed", "album", albums[i].Name)
		}
	}
	return updated
}
