package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/smrx/internal/repositories"
	"github.com/desertthunder/smrx/internal/shared"
	"github.com/desertthunder/smrx/internal/tasks"
)

// DBSetup initializes the database, runs pending migrations and prints the schema state.
func (r *Runner) DBSetup(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	applied, err := shared.ApplyMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, m := range applied {
		r.logger.Info("applied migration", "version", m.Version, "name", m.Name)
	}

	states, err := shared.MigrationStatus(db)
	if err != nil {
		return err
	}
	r.writePlainHeader("Database: " + r.config.Database.Path)
	for _, s := range states {
		at := "pending"
		if s.Applied() {
			at = s.AppliedAt.Local().Format(time.DateTime)
		}
		r.writePlain("%04d %-24s %s\n", s.Version, s.Name, at)
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return nil
}

// DBSync copies the data directory into the database.
func (r *Runner) DBSync(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := r.printProgress(progressCh, cmd.Bool("verbose"))

	result, err := r.engine(r.fileSource()).Sync(ctx, repositories.NewStore(db), progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete!")
	r.writePlain("Albums:   %d\n", result.Albums)
	r.writePlain("Artists:  %d\n", result.Artists)
	r.writePlain("Timeline: %d\n", result.Timeline)
	if result.Removed > 0 {
		r.writePlain("Removed:  %d\n", result.Removed)
	}
	return nil
}

// DBDump writes the database out as catalog JSON files.
func (r *Runner) DBDump(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("output")
	if dir == "" {
		dir = r.config.Site.DataDir
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := r.printProgress(progressCh, true)

	result, err := r.engine(repositories.NewStore(db)).Dump(ctx, dir, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\nDumped %d albums, %d artists and %d timeline entries to %s\n",
		result.Albums, result.Artists, result.Timeline, dir)
	return nil
}

// DBRollback undoes the most recent migration.
func (r *Runner) DBRollback(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	m, err := shared.RollbackMigration(db)
	if err != nil {
		return err
	}
	r.logger.Info("rolled back migration", "version", m.Version, "name", m.Name, "path", r.config.Database.Path)
	return r.writePlain("Rolled back %04d %s\n", m.Version, m.Name)
}
