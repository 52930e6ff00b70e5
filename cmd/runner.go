package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/repositories"
	"github.com/desertthunder/smrx/internal/shared"
	"github.com/desertthunder/smrx/internal/site"
	"github.com/desertthunder/smrx/internal/tasks"
)

const defaultConfigPath = "config.toml"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the logger, e.g. to keep log output away from the TUI.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   defaultConfigPath,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

// Before reloads the configuration when --config points somewhere other than the default
// and applies --verbose.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" && path != defaultConfigPath {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, fmt.Errorf("%w: %v", shared.ErrMissingConfig, err)
		}
		r.config = config
		shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Log.Level))
	}
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, r.config.Validate()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		initCommand, buildCommand, serveCommand, coversCommand, albumsCommand, importCommand, dbCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDatabase opens the configured database and applies pending migrations.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// source returns the catalog source selected by [source] kind. The returned close
// function releases the database when one was opened.
func (r *Runner) source() (catalog.Source, func(), error) {
	switch r.config.Source.Kind {
	case shared.SourceHTTP:
		fetcher := catalog.NewHTTPSource(r.config.Source.BaseURL, r.httpClient, r.config.Source.RateLimit)
		return catalog.NewJSONSource(fetcher), func() {}, nil
	case shared.SourceDB:
		db, err := r.openDatabase()
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewStore(db), func() { db.Close() }, nil
	default:
		return r.fileSource(), func() {}, nil
	}
}

// fileSource reads the data directory regardless of the configured source kind.
func (r *Runner) fileSource() *catalog.JSONSource {
	return catalog.NewJSONSource(catalog.NewFileSource(r.config.Site.DataDir))
}

func (r *Runner) generator(outputDir string) (*site.Generator, error) {
	if outputDir == "" {
		outputDir = r.config.Site.OutputDir
	}
	return site.NewGenerator(site.Options{
		Title:       r.config.Site.Title,
		OutputDir:   outputDir,
		AssetsDir:   r.config.Site.AssetsDir,
		Placeholder: r.config.Site.Placeholder,
	}, shared.WithLogger(r.logger, "component", "site"))
}

func (r *Runner) engine(src catalog.Source) *tasks.Engine {
	return tasks.NewEngine(src, shared.WithLogger(r.logger, "component", "tasks"))
}

// printProgress writes updates until the channel is closed; the returned channel closes when it is drained.
func (r *Runner) printProgress(progress <-chan tasks.ProgressUpdate, verbose bool) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			switch update.Phase {
			case tasks.LoadCatalog, tasks.WriteAssets, tasks.DumpCatalog, tasks.SyncTimeline:
				r.writePlain("• %s\n", update.Message)
			case tasks.ProcessCovers:
				r.writePlain("  %s\n", update.Message)
			default:
				if verbose || update.Step == update.Total {
					r.writePlain("  %s\n", update.Message)
				}
			}
		}
	}()
	return done
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
