package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

// Press sheet columns.
const (
	ColumnAlbum    = "Album Name"
	ColumnFeatured = "Featured Quote"
	ColumnPress    = "Press"
)

// NotAvailable marks an empty cell in press sheets.
const NotAvailable = "NA"

const (
	quoteTrimSet  = "\"“”"
	sourceDashSet = "—–- "
)

var (
	quoteSplit = regexp.MustCompile(`\n\s*\n`)
	// A hyphen only separates when preceded by whitespace, so hyphenated words stay intact.
	attributed = regexp.MustCompile(`(?s)^["“”]?(.+?)["“”]?\s*(?:[—–]|\s-)\s*(.+)$`)
)

// PressRow is one album's row in a press sheet.
type PressRow struct {
	Album    string
	Featured string
	Press    string
}

func blank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == NotAvailable
}

// ParseQuote splits `"text" — source` into its parts. Em dash, en dash and hyphen are all
// accepted as the separator; a quote without a source is rejected.
func ParseQuote(s string) (text, source string, ok bool) {
	if blank(s) {
		return "", "", false
	}
	m := attributed.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", false
	}
	text = strings.Trim(strings.TrimSpace(m[1]), quoteTrimSet)
	source = strings.TrimSpace(m[2])
	if text == "" || source == "" {
		return "", "", false
	}
	return text, source, true
}

// ParseFeaturedQuote parses a featured quote cell; nil means none.
func ParseFeaturedQuote(s string) *models.FeaturedQuote {
	text, source, ok := ParseQuote(s)
	if !ok {
		return nil
	}
	return &models.FeaturedQuote{Text: text, Source: source}
}

// ParsePressQuotes parses a press cell holding quotes separated by blank lines.
//
// A part without an inline separator may still carry its source on a last line
// starting with a dash.
func ParsePressQuotes(s string) []models.PressQuote {
	if blank(s) {
		return nil
	}

	var quotes []models.PressQuote
	for _, part := range quoteSplit.Split(strings.TrimSpace(s), -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if text, source, ok := ParseQuote(part); ok {
			quotes = append(quotes, models.PressQuote{Text: text, Source: source})
			continue
		}

		lines := strings.Split(part, "\n")
		if len(lines) < 2 {
			continue
		}
		last := strings.TrimSpace(lines[len(lines)-1])
		if !strings.HasPrefix(last, "—") && !strings.HasPrefix(last, "-") {
			continue
		}
		source := strings.TrimSpace(strings.TrimLeft(last, sourceDashSet))
		text := strings.Trim(strings.TrimSpace(strings.Join(lines[:len(lines)-1], "\n")), quoteTrimSet)
		if text != "" && source != "" {
			quotes = append(quotes, models.PressQuote{Text: text, Source: source})
		}
	}
	return quotes
}

// ReadPressCSV reads a press sheet keyed by lower-cased album name.
func ReadPressCSV(r io.Reader) (map[string]PressRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read press header: %v", shared.ErrMalformedData, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := cols[ColumnAlbum]; !ok {
		return nil, fmt.Errorf("%w: press sheet has no %q column", shared.ErrMalformedData, ColumnAlbum)
	}

	cell := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make(map[string]PressRow)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrMalformedData, err)
		}

		row := PressRow{
			Album:    cell(record, ColumnAlbum),
			Featured: cell(record, ColumnFeatured),
			Press:    cell(record, ColumnPress),
		}
		if row.Album == "" {
			continue
		}
		rows[strings.ToLower(row.Album)] = row
	}
	return rows, nil
}

// ApplyPress merges press rows into albums matched by name, case-insensitively.
//
// A featured quote is only added when the album has none; press is replaced only when
// the sheet has more quotes than the album already carries. Returns the number of changes.
func ApplyPress(albums []models.Album, rows map[string]PressRow, logger *log.Logger) int {
	updated := 0
	for i := range albums {
		album := &albums[i]
		row, ok := rows[strings.ToLower(album.Name)]
		if !ok {
			continue
		}

		if fq := ParseFeaturedQuote(row.Featured); fq != nil && !album.HasFeaturedQuote() {
			album.FeaturedQuote = fq
			updated++
			logger.Info("added featured quote", "album", album.Name)
		}

		if quotes := ParsePressQuotes(row.Press); len(quotes) > len(album.Press) {
			album.Press = quotes
			updated++
			logger.Info("updated press", "album", album.Name, "quotes", len(quotes))
		}
	}
	return updated
}
