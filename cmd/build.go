package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/imaging"
	"github.com/desertthunder/smrx/internal/shared"
	"github.com/desertthunder/smrx/internal/tasks"
)

// Init creates the config file from the template and seeds empty catalog files.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file exists, leaving it alone", "path", configPath)
	} else {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
		r.logger.Info("config file created", "path", configPath)

		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return err
		}
		r.config = config
	}

	dataDir := r.config.Site.DataDir
	created := 0
	for _, name := range []string{catalog.AlbumsFile, catalog.ArtistsFile, catalog.TimelineFile} {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
			r.logger.Debug("data file exists", "path", path)
			continue
		}
		if err := shared.WriteJSONFile(path, []any{}); err != nil {
			return err
		}
		created++
	}

	r.writePlain("Config: %s\n", configPath)
	r.writePlain("Data:   %s (%d %s created)\n", dataDir, created, shared.Plural(created, "file"))
	return nil
}

// Build renders the site from the configured source.
func (r *Runner) Build(ctx context.Context, cmd *cli.Command) error {
	src, closeSrc, err := r.source()
	if err != nil {
		return err
	}
	defer closeSrc()

	gen, err := r.generator(cmd.String("output"))
	if err != nil {
		return err
	}

	useJSON := cmd.Bool("json")
	progressCh := make(chan tasks.ProgressUpdate, 50)
	var done <-chan struct{}
	if useJSON {
		done = drainProgress(progressCh)
	} else {
		done = r.printProgress(progressCh, cmd.Bool("verbose"))
	}

	result, err := r.engine(src).Build(ctx, gen, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Build Complete!")
	r.writePlain("Albums:  %d\n", result.Albums)
	r.writePlain("Artists: %d\n", result.Artists)
	r.writePlain("Pages:   %d\n", result.Pages)
	r.writePlain("Output:  %s\n", result.OutputDir)
	r.writePlain("Took:    %s\n", result.Duration.Round(time.Millisecond))
	return nil
}

// Covers writes a thumbnail for every album cover.
func (r *Runner) Covers(ctx context.Context, cmd *cli.Command) error {
	src, closeSrc, err := r.source()
	if err != nil {
		return err
	}
	defer closeSrc()

	opts := tasks.CoverOpts{
		SiteDir:    filepath.Dir(filepath.Clean(r.config.Site.AssetsDir)),
		OutputDir:  r.config.Covers.ThumbDir,
		MaxWidth:   r.config.Covers.MaxWidth,
		MaxHeight:  r.config.Covers.MaxHeight,
		Workers:    r.config.Covers.Workers,
		Downloader: imaging.NewDownloader(r.httpClient, r.config.Source.RateLimit),
	}
	if out := cmd.String("output"); out != "" {
		opts.OutputDir = out
	}
	if workers := cmd.Int("workers"); workers > 0 {
		opts.Workers = workers
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := r.printProgress(progressCh, true)

	result, err := r.engine(src).Covers(ctx, opts, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Covers Complete!")
	r.writePlain("Thumbnails: %d/%d\n", result.Succeeded, result.Total)
	r.writePlain("Output:     %s\n", opts.OutputDir)

	if result.Failed > 0 {
		r.writePlain("\nFailed to process %d %s:\n", result.Failed, shared.Plural(result.Failed, "cover"))
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  - %s: %v\n", res.Slug, res.Error)
			}
		}
	}
	if len(result.Skipped) > 0 {
		r.writePlain("\nNo cover image: %d %s\n", len(result.Skipped), shared.Plural(len(result.Skipped), "album"))
	}

	if result.Failed > 0 && result.Succeeded == 0 {
		return fmt.Errorf("%w: no thumbnails written", shared.ErrInvalidInput)
	}
	return nil
}

// drainProgress discards updates so the engine never blocks on a full channel.
func drainProgress(progress <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range progress {
		}
	}()
	return done
}
