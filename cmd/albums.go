package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/formatter"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

// loadCatalog loads the catalog from the configured source.
func (r *Runner) loadCatalog(ctx context.Context) (*models.Catalog, error) {
	src, closeSrc, err := r.source()
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	return catalog.Load(ctx, src, shared.WithLogger(r.logger, "component", "catalog"))
}

// AlbumsList prints albums, most recent first, optionally for one artist.
func (r *Runner) AlbumsList(ctx context.Context, cmd *cli.Command) error {
	cat, err := r.loadCatalog(ctx)
	if err != nil {
		return err
	}

	filter := catalog.NormalizeFilter(cmd.String("artist"), catalog.ArtistsFromAlbums(cat.Albums))
	albums := catalog.SortByReleaseDate(catalog.FilterAlbums(cat.Albums, filter))

	if cmd.Bool("json") {
		return r.writeJSON(albums, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Albums: %s (%d)", filter, len(albums)))
	for i, album := range albums {
		year := album.Year()
		if year == "" {
			year = "----"
		}
		r.writePlain("%3d. %s  %-30s %s\n", i+1, year, shared.Truncate(album.Name, 30, "…"), album.Artist)
	}
	return nil
}

// AlbumsShow prints one album in detail.
func (r *Runner) AlbumsShow(ctx context.Context, cmd *cli.Command) error {
	slug := cmd.StringArg("slug")
	if slug == "" {
		return fmt.Errorf("%w: album slug", shared.ErrMissingArgument)
	}

	cat, err := r.loadCatalog(ctx)
	if err != nil {
		return err
	}

	album, ok := cat.Album(slug)
	if !ok {
		return fmt.Errorf("%w: album %q", shared.ErrNotFound, slug)
	}

	if cmd.Bool("json") {
		return r.writeJSON(album, true)
	}
	return r.writePlain("%s", formatter.AlbumDetail(*album))
}

// AlbumsSearch fuzzy-matches the query against album names and artists.
func (r *Runner) AlbumsSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	cat, err := r.loadCatalog(ctx)
	if err != nil {
		return err
	}

	matches := catalog.Search(cat.Albums, query)
	if limit := cmd.Int("limit"); limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	if len(matches) == 0 {
		return r.writePlain("No albums match %q\n", query)
	}

	r.writePlain("Found %d %s for %q:\n", len(matches), shared.Plural(len(matches), "album"), query)
	for _, album := range matches {
		r.writePlain("  %-24s %s - %s\n", album.Slug, album.Artist, album.Name)
	}
	return nil
}

// AlbumsExport writes the catalog in the requested format.
func (r *Runner) AlbumsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	cat, err := r.loadCatalog(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("stdout") {
		data, err := formatter.Export(format, cat, r.config.Site.Title)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := formatter.WriteExport(format, cat, r.config.Site.Title, cmd.String("output"))
	if err != nil {
		return err
	}
	r.logger.Info("exported catalog", "format", format, "path", path)
	return r.writePlain("Exported %d %s to %s\n", len(cat.Albums), shared.Plural(len(cat.Albums), "album"), path)
}
