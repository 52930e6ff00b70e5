package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/smrx/internal/models"
)

var _ list.Item = albumItem{}

// albumItem wraps [models.Album] to implement [list.Item].
type albumItem struct {
	album models.Album
}

func (i albumItem) FilterValue() string { return i.album.Name + " " + i.album.Artist }
func (i albumItem) Title() string       { return i.album.Name }
func (i albumItem) Description() string {
	parts := []string{i.album.Artist}
	if year := i.album.Year(); year != "" {
		parts = append(parts, year)
	}
	if i.album.CatalogNumber != "" {
		parts = append(parts, i.album.CatalogNumber)
	}
	return strings.Join(parts, " • ")
}

func albumItems(albums []models.Album) []list.Item {
	items := make([]list.Item, len(albums))
	for i, a := range albums {
		items[i] = albumItem{album: a}
	}
	return items
}
