package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/importers"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

// readData loads the JSON files in the data directory. Importers always edit these files,
// whatever [source] kind the site is built from. A missing artists or timeline file reads as empty.
func (r *Runner) readData(ctx context.Context) (*models.Catalog, error) {
	fetcher := catalog.NewFileSource(r.config.Site.DataDir)

	albums, err := catalog.LoadJSON[[]models.Album](ctx, fetcher, catalog.AlbumsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMissingData, err)
	}
	artists, err := catalog.LoadJSON[[]models.Artist](ctx, fetcher, catalog.ArtistsFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	timeline, err := catalog.LoadJSON[[]models.TimelineEntry](ctx, fetcher, catalog.TimelineFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &models.Catalog{Albums: albums, Artists: artists, Timeline: timeline}, nil
}

// writeData saves the named data files unless --dry-run is set.
func (r *Runner) writeData(cmd *cli.Command, cat *models.Catalog, names ...string) error {
	if cmd.Bool("dry-run") {
		r.writePlain("Dry run: no files written\n")
		return nil
	}
	data := map[string]any{
		catalog.AlbumsFile:   orEmpty(cat.Albums),
		catalog.ArtistsFile:  orEmpty(cat.Artists),
		catalog.TimelineFile: orEmpty(cat.Timeline),
	}
	for _, name := range names {
		path := filepath.Join(r.config.Site.DataDir, name)
		if err := shared.WriteJSONFile(path, data[name]); err != nil {
			return err
		}
		r.logger.Info("wrote data file", "path", path)
	}
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func requirePath(cmd *cli.Command) (string, error) {
	path := cmd.StringArg("path")
	if path == "" {
		return "", fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	return path, nil
}

// ImportPress merges a press CSV sheet into albums.json.
func (r *Runner) ImportPress(ctx context.Context, cmd *cli.Command) error {
	path, err := requirePath(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open press sheet: %w", err)
	}
	defer f.Close()

	rows, err := importers.ReadPressCSV(f)
	if err != nil {
		return err
	}

	cat, err := r.readData(ctx)
	if err != nil {
		return err
	}

	updated := importers.ApplyPress(cat.Albums, rows, shared.WithLogger(r.logger, "importer", "press"))
	r.writePlain("Press rows: %d, changes: %d\n", len(rows), updated)
	if updated == 0 {
		return nil
	}
	return r.writeData(cmd, cat, catalog.AlbumsFile)
}

// ImportOverrides applies an overrides TOML file to albums.json and artists.json.
func (r *Runner) ImportOverrides(ctx context.Context, cmd *cli.Command) error {
	path, err := requirePath(cmd)
	if err != nil {
		return err
	}

	ov, err := importers.LoadOverrides(path)
	if err != nil {
		return err
	}

	cat, err := r.readData(ctx)
	if err != nil {
		return err
	}

	updated := ov.Apply(cat, shared.WithLogger(r.logger, "importer", "overrides"))
	r.writePlain("Overrides: %d albums, %d artists, %d records changed\n", len(ov.Albums), len(ov.Artists), updated)
	if updated == 0 {
		return nil
	}
	return r.writeData(cmd, cat, catalog.AlbumsFile, catalog.ArtistsFile)
}

// ImportCovers points albums at cover files found by slug.
func (r *Runner) ImportCovers(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	if dir == "" {
		dir = r.config.Covers.Dir
	}
	prefix := cmd.String("prefix")
	if prefix == "" {
		prefix = filepath.ToSlash(filepath.Clean(dir))
	}

	cat, err := r.readData(ctx)
	if err != nil {
		return err
	}

	updated, missing := importers.ApplyCovers(cat.Albums, dir, prefix, shared.WithLogger(r.logger, "importer", "covers"))
	r.writePlain("Covers updated: %d\n", updated)
	if len(missing) > 0 {
		r.writePlain("No cover file for %d %s:\n", len(missing), shared.Plural(len(missing), "album"))
		for _, slug := range missing {
			r.writePlain("  - %s\n", slug)
		}
	}
	if updated == 0 {
		return nil
	}
	return r.writeData(cmd, cat, catalog.AlbumsFile)
}

// ImportWordPress replaces the timeline with the export's posts and adds artists for
// categories the catalog does not know yet.
func (r *Runner) ImportWordPress(ctx context.Context, cmd *cli.Command) error {
	path, err := requirePath(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	export, err := importers.ParseWXR(f)
	if err != nil {
		return err
	}

	cat, err := r.readData(ctx)
	if err != nil {
		return err
	}

	cat.Timeline = export.Timeline()
	artists, added := importers.MergeArtists(cat.Artists, export.Artists(cat.Albums))
	cat.Artists = artists

	r.logger.Info("parsed export", "site", export.Title, "posts", len(export.Posts), "categories", len(export.Categories))
	r.writePlain("Timeline entries: %d\n", len(cat.Timeline))
	r.writePlain("Artists added:    %d\n", added)
	return r.writeData(cmd, cat, catalog.ArtistsFile, catalog.TimelineFile)
}

// ImportEmbeds rewrites every Bandcamp embed as the compact player.
func (r *Runner) ImportEmbeds(ctx context.Context, cmd *cli.Command) error {
	cat, err := r.readData(ctx)
	if err != nil {
		return err
	}

	updated := importers.CompactEmbeds(cat.Albums, shared.WithLogger(r.logger, "importer", "embeds"))
	r.writePlain("Embeds rewritten: %d\n", updated)
	if updated == 0 {
		return nil
	}
	return r.writeData(cmd, cat, catalog.AlbumsFile)
}
