// package formatter provides functions to export catalog data to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ParseFormat accepts a format name or its common short form.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (csv, markdown, text, json)", shared.ErrInvalidFlag, name)
	}
}

// ExportToCSV converts albums to CSV with columns: Slug, Name, Artist, Release Date, Catalog Number, Formats
func ExportToCSV(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Slug", "Name", "Artist", "Release Date", "Catalog Number", "Formats"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, album := range albums {
		record := []string{
			album.Slug,
			album.Name,
			album.Artist,
			album.ReleaseDate,
			album.CatalogNumber,
			strings.Join(album.Formats, "; "),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders the catalog as a discography grouped by artist, newest release first
func ExportToMarkdown(cat *models.Catalog, title string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Releases**: %d\n", len(cat.Albums)))
	buf.WriteString(fmt.Sprintf("**Artists**: %d\n\n", len(cat.Artists)))

	artists := cat.Artists
	if len(artists) == 0 {
		artists = catalog.ArtistsFromAlbums(cat.Albums)
	}

	for _, artist := range artists {
		albums := catalog.SortByReleaseDate(catalog.AlbumsByArtist(cat.Albums, artist.Slug))
		buf.WriteString(fmt.Sprintf("## %s\n\n", artist.Name))
		if len(albums) == 0 {
			buf.WriteString("_No releases._\n\n")
			continue
		}
		for i, album := range albums {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, markdownLine(album)))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

func markdownLine(album models.Album) string {
	line := fmt.Sprintf("**%s**", album.Name)
	if year := album.Year(); year != "" {
		line += fmt.Sprintf(" (%s)", year)
	}
	if album.CatalogNumber != "" {
		line += fmt.Sprintf(" `%s`", album.CatalogNumber)
	}
	if len(album.Formats) > 0 {
		line += " - " + strings.Join(album.Formats, ", ")
	}
	return line
}

// ExportToText converts albums to a numbered plain text list
func ExportToText(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Albums: %d\n\n", len(albums)))
	for i, album := range albums {
		date := album.ReleaseDate
		if date == "" {
			date = "undated"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s)\n", i+1, album.Artist, album.Name, date))
	}

	return buf.Bytes(), nil
}

// AlbumDetail renders a single album as plain text for terminal display
func AlbumDetail(album models.Album) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", album.Name, album.Artist)
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-15s %s\n", label+":", value)
		}
	}
	field("Slug", album.Slug)
	field("Release Date", album.ReleaseDate)
	field("Catalog #", album.CatalogNumber)
	field("Formats", strings.Join(album.Formats, ", "))
	field("Cover", album.CoverImage)
	field("Buy", catalog.BuyURL(album))

	if album.HasFeaturedQuote() {
		fmt.Fprintf(&b, "\n\"%s\"", album.FeaturedQuote.Text)
		if album.FeaturedQuote.Source != "" {
			fmt.Fprintf(&b, " - %s", album.FeaturedQuote.Source)
		}
		b.WriteString("\n")
	}

	if len(album.Tracks) > 0 {
		b.WriteString("\nTracks\n")
		for _, t := range album.Tracks {
			fmt.Fprintf(&b, "  %02d. %s\n", t.Number, t.Title)
		}
	}

	if len(album.Press) > 0 {
		fmt.Fprintf(&b, "\nPress: %d %s\n", len(album.Press), shared.Plural(len(album.Press), "quote"))
	}

	return b.String()
}

// Export renders cat in the given format. Formats other than Markdown only use the albums.
func Export(format Format, cat *models.Catalog, title string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(cat.Albums)
	case FormatMarkdown:
		return ExportToMarkdown(cat, title)
	case FormatJSON:
		return shared.MarshalJSON(cat.Albums, true)
	case FormatText:
		return ExportToText(cat.Albums)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport exports cat to path, creating parent directories.
//
// An empty path defaults to catalog{ext} in the working directory.
func WriteExport(format Format, cat *models.Catalog, title, path string) (string, error) {
	if path == "" {
		path = "catalog" + format.Extension()
	}

	data, err := Export(format, cat, title)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
