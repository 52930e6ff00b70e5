package importers

import (
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/smrx/internal/models"
)

// Overrides holds hand-maintained corrections keyed by slug.
//
//	[albums.dark-academy]
//	release_date = "2010-06-01"
//	catalog_number = "SMR002"
//	formats = ["CD", "Digital"]
//	cover = "assets/images/albums/DA.jpg"
//	bandcamp_album_id = "220835075"
//	bandcamp_url = "https://thelongwalls.bandcamp.com/album/dark-academy"
//	bandcamp_title = "Dark Academy by The Longwalls"
//
//	[artists.the-longwalls]
//	hero_image = "assets/images/artists/the-longwalls.jpg"
//	bandcamp_url = "https://thelongwalls.bandcamp.com"
type Overrides struct {
	Albums  map[string]AlbumOverride  `toml:"albums"`
	Artists map[string]ArtistOverride `toml:"artists"`
}

// AlbumOverride corrects one album.
type AlbumOverride struct {
	ReleaseDate     string   `toml:"release_date"`
	CatalogNumber   string   `toml:"catalog_number"`
	Formats         []string `toml:"formats"`
	Cover           string   `toml:"cover"`
	BandcampAlbumID string   `toml:"bandcamp_album_id"`
	BandcampURL     string   `toml:"bandcamp_url"`
	BandcampTitle   string   `toml:"bandcamp_title"`
}

// ArtistOverride corrects one artist.
type ArtistOverride struct {
	HeroImage   string `toml:"hero_image"`
	BandcampURL string `toml:"bandcamp_url"`
}

// LoadOverrides parses an overrides file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file: %w", err)
	}

	var ov Overrides
	if err := toml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("failed to parse overrides: %w", err)
	}
	return &ov, nil
}

// Embed returns the compact player for the override, if it names a Bandcamp album.
func (o AlbumOverride) Embed() (BandcampEmbed, bool) {
	if o.BandcampAlbumID == "" || o.BandcampURL == "" {
		return BandcampEmbed{}, false
	}
	title := o.BandcampTitle
	if title == "" {
		title = o.BandcampURL
	}
	return BandcampEmbed{AlbumID: o.BandcampAlbumID, Href: o.BandcampURL, Title: title}, true
}

// Apply merges the overrides into cat and returns the number of records changed.
//
// Release date, cover and Bandcamp player always win. Catalog number and formats only
// fill blanks so hand edits in the data files are kept.
func (ov *Overrides) Apply(cat *models.Catalog, logger *log.Logger) int {
	updated := 0
	for i := range cat.Albums {
		album := &cat.Albums[i]
		o, ok := ov.Albums[album.Slug]
		if !ok {
			continue
		}
		if applyAlbumOverride(album, o, logger) {
			updated++
		}
	}

	for i := range cat.Artists {
		artist := &cat.Artists[i]
		o, ok := ov.Artists[artist.Slug]
		if !ok {
			continue
		}
		changed := false
		if o.HeroImage != "" && artist.HeroImage != o.HeroImage {
			artist.HeroImage = o.HeroImage
			changed = true
		}
		if o.BandcampURL != "" && artist.BandcampURL != o.BandcampURL {
			artist.BandcampURL = o.BandcampURL
			changed = true
		}
		if changed {
			updated++
			logger.Info("updated artist", "artist", artist.Name)
		}
	}

	for _, slug := range ov.unknown(cat) {
		logger.Warn("override matches no record", "slug", slug)
	}
	return updated
}

func applyAlbumOverride(album *models.Album, o AlbumOverride, logger *log.Logger) bool {
	changed := false
	if o.ReleaseDate != "" && album.ReleaseDate != o.ReleaseDate {
		logger.Info("updated release date", "album", album.Name, "date", o.ReleaseDate)
		album.ReleaseDate = o.ReleaseDate
		changed = true
	}
	if o.CatalogNumber != "" && album.CatalogNumber == "" {
		logger.Info("updated catalog number", "album", album.Name, "catalog", o.CatalogNumber)
		album.CatalogNumber = o.CatalogNumber
		changed = true
	}
	if len(o.Formats) > 0 && len(album.Formats) == 0 {
		album.Formats = slices.Clone(o.Formats)
		changed = true
	}
	if o.Cover != "" && album.CoverImage != o.Cover {
		logger.Info("updated cover", "album", album.Name, "cover", o.Cover)
		album.CoverImage = o.Cover
		changed = true
	}
	if e, ok := o.Embed(); ok {
		if html := e.HTML(); album.BandcampEmbed != html {
			logger.Info("fixed embed", "album", album.Name, "id", e.AlbumID)
			album.BandcampEmbed = html
			changed = true
		}
	}
	return changed
}

// unknown lists override slugs that match neither an album nor an artist.
func (ov *Overrides) unknown(cat *models.Catalog) []string {
	var missing []string
	for slug := range ov.Albums {
		if _, ok := cat.Album(slug); !ok {
			missing = append(missing, slug)
		}
	}
	for slug := range ov.Artists {
		if _, ok := cat.Artist(slug); !ok {
			missing = append(missing, slug)
		}
	}
	slices.Sort(missing)
	return missing
}
