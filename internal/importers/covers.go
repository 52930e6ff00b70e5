package importers

import (
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/smrx/internal/models"
)

// CoverExtensions are tried in order when looking for an album cover.
var CoverExtensions = []string{".jpg", ".png"}

// FindCover looks for <slug>.jpg then <slug>.png in dir and returns the site path
// (urlPrefix joined with the file name).
func FindCover(dir, urlPrefix, slug string) (string, bool) {
	for _, ext := range CoverExtensions {
		name := slug + ext
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return path.Join(urlPrefix, name), true
		}
	}
	return "", false
}

// ApplyCovers points every album with a cover file in dir at it.
// Returns the number updated and the slugs with no cover file.
func ApplyCovers(albums []models.Album, dir, urlPrefix string, logger *log.Logger) (int, []string) {
	updated := 0
	var missing []string
	for i := range albums {
		cover, ok := FindCover(dir, urlPrefix, albums[i].Slug)
		if !ok {
			missing = append(missing, albums[i].Slug)
			logger.Debug("no cover", "album", albums[i].Slug)
			continue
		}
		if albums[i].CoverImage != cover {
			albums[i].CoverImage = cover
			updated++
			logger.Info("found cover", "album", albums[i].Slug, "cover", cover)
		}
	}
	return updated, missing
}
