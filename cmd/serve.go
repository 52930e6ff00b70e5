package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/smrx/internal/server"
	"github.com/desertthunder/smrx/internal/shared"
	"github.com/desertthunder/smrx/internal/site"
)

// rebuildDelay coalesces the burst of events an editor produces for a single save.
const rebuildDelay = 250 * time.Millisecond

// Serve builds the site once, then serves it until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := r.source()
	if err != nil {
		return err
	}
	defer closeSrc()

	gen, err := r.generator("")
	if err != nil {
		return err
	}
	engine := r.engine(src)

	rebuild := func() error {
		result, err := engine.Build(ctx, gen, nil)
		if err != nil {
			return err
		}
		r.logger.Info("rebuilt site", "pages", result.Pages, "took", result.Duration.Round(time.Millisecond))
		return nil
	}
	if err := rebuild(); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(
		server.Recoverer(r.logger),
		server.RequestLogger(shared.WithLogger(r.logger, "component", "http")),
		server.NoCache,
	)
	router.Handler(site.NewHandler(gen, src, shared.WithLogger(r.logger, "component", "site")))

	addr := r.config.Server.Addr()
	if port := cmd.Int("port"); port > 0 {
		addr = net.JoinHostPort(r.config.Server.Host, strconv.Itoa(port))
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	srv := server.New(addr, router, r.logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx, ln) })

	if cmd.Bool("watch") {
		if r.config.Source.Kind != shared.SourceFile && r.config.Source.Kind != "" {
			r.logger.Warn("watching the data directory, but the site is built from another source", "source", r.config.Source.Kind)
		}
		g.Go(func() error {
			return watchDir(ctx, r.config.Site.DataDir, rebuildDelay, r.logger, rebuild)
		})
	}

	if cmd.Bool("open") {
		url := "http://" + ln.Addr().String()
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "url", url, "error", err)
		}
	}

	return g.Wait()
}

// watchDir calls onChange after writes under dir settle for delay. Rebuild errors are
// logged and do not stop the watch; it returns when ctx is done.
func watchDir(ctx context.Context, dir string, delay time.Duration, logger *log.Logger, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Info("watching for changes", "dir", dir)

	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(delay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		case <-timer.C:
			if err := onChange(); err != nil {
				logger.Error("rebuild failed", "error", err)
			}
		}
	}
}
