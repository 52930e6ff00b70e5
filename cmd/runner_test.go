package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/repositories"
	"github.com/desertthunder/smrx/internal/shared"
	tu "github.com/desertthunder/smrx/internal/testing"
)

// newTestRunner points every configured directory into a temp dir seeded with the fixture catalog.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer, string) {
	t.Helper()
	root := t.TempDir()

	config := shared.DefaultConfig()
	config.Site.DataDir = filepath.Join(root, "data")
	config.Site.OutputDir = filepath.Join(root, "public")
	config.Site.AssetsDir = ""
	config.Database.Path = filepath.Join(root, "smrx.db")
	config.Covers.Dir = filepath.Join(root, "covers")
	config.Covers.ThumbDir = filepath.Join(root, "thumbs")

	tu.WriteCatalog(t, config.Site.DataDir, tu.FixtureCatalog())

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(io.Discard),
		Output: output,
	})
	return runner, output, root
}

func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := newApp(r)
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	return app.Run(context.Background(), append([]string{"smrx"}, args...))
}

func TestNewApp(t *testing.T) {
	r, _, _ := newTestRunner(t)
	app := newApp(r)
	if app.Name != "smrx" {
		t.Errorf("expected app name smrx, got %s", app.Name)
	}

	t.Run("command errors keep their sentinel", func(t *testing.T) {
		err := run(t, r, "albums", "show", "no-such-album")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound through the root command, got %v", err)
		}
	})
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"init", "build", "serve", "covers", "albums", "import", "db", "tui"} {
			if !names[want] {
				t.Errorf("expected %q command to be registered", want)
			}
		}
	})

	t.Run("source", func(t *testing.T) {
		t.Run("file", func(t *testing.T) {
			runner, _, _ := newTestRunner(t)
			src, closeSrc, err := runner.source()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			defer closeSrc()

			if _, ok := src.(*catalog.JSONSource); !ok {
				t.Errorf("expected *catalog.JSONSource, got %T", src)
			}
		})

		t.Run("http", func(t *testing.T) {
			runner, _, _ := newTestRunner(t)
			runner.config.Source.Kind = shared.SourceHTTP
			runner.config.Source.BaseURL = "https://example.com"

			src, closeSrc, err := runner.source()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			defer closeSrc()

			if _, ok := src.(*catalog.JSONSource); !ok {
				t.Errorf("expected *catalog.JSONSource, got %T", src)
			}
		})

		t.Run("db", func(t *testing.T) {
			runner, _, _ := newTestRunner(t)
			runner.config.Source.Kind = shared.SourceDB

			src, closeSrc, err := runner.source()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			defer closeSrc()

			if _, ok := src.(*repositories.Store); !ok {
				t.Errorf("expected *repositories.Store, got %T", src)
			}
		})
	})
}

func TestCommands(t *testing.T) {
	t.Run("init creates config and data files", func(t *testing.T) {
		dir := t.TempDir()
		wd := tu.MustGetwd(t)
		tu.MustChdir(t, dir)
		t.Cleanup(func() { tu.MustChdir(t, wd) })

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: output})

		if err := run(t, runner, "init"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "config.toml"))
		for _, name := range []string{catalog.AlbumsFile, catalog.ArtistsFile, catalog.TimelineFile} {
			path := filepath.Join(dir, "data", name)
			tu.AssertFileExists(t, path)
			if got := strings.TrimSpace(tu.MustReadFile(t, path)); got != "[]" {
				t.Errorf("expected empty array in %s, got %q", name, got)
			}
		}
		if !strings.Contains(output.String(), "3 files created") {
			t.Errorf("expected created count, got %q", output.String())
		}
	})

	t.Run("build renders the site", func(t *testing.T) {
		runner, output, root := newTestRunner(t)

		if err := run(t, runner, "build"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := filepath.Join(root, "public")
		tu.AssertFileExists(t, filepath.Join(out, "index.html"))
		tu.AssertFileExists(t, filepath.Join(out, "pages", "albums", "dark-academy.html"))
		tu.AssertFileExists(t, filepath.Join(out, "data", catalog.AlbumsFile))

		result := output.String()
		if !strings.Contains(result, "Build Complete!") {
			t.Errorf("expected summary, got %q", result)
		}
		if !strings.Contains(result, "Pages:   9") {
			t.Errorf("expected 9 pages, got %q", result)
		}
	})

	t.Run("build --json prints the result", func(t *testing.T) {
		runner, output, _ := newTestRunner(t)

		if err := run(t, runner, "build", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"Pages": 9`) {
			t.Errorf("expected JSON summary, got %q", output.String())
		}
	})

	t.Run("build fails without albums", func(t *testing.T) {
		runner, _, root := newTestRunner(t)
		os.Remove(filepath.Join(root, "data", catalog.AlbumsFile))

		err := run(t, runner, "build")
		if !errors.Is(err, shared.ErrMissingData) {
			t.Errorf("expected ErrMissingData, got %v", err)
		}
	})

	t.Run("albums list", func(t *testing.T) {
		tests := []struct {
			name    string
			args    []string
			want    []string
			notWant []string
		}{
			{
				name: "all albums newest first",
				args: []string{"albums", "list"},
				want: []string{"Albums: all (4)", "Dark Academy", "Demos"},
			},
			{
				name:    "filtered by artist",
				args:    []string{"albums", "list", "--artist", "pom-pom-squad"},
				want:    []string{"Albums: pom-pom-squad (2)", "Floods + Fires"},
				notWant: []string{"Dark Academy"},
			},
			{
				name: "unknown artist falls back to all",
				args: []string{"albums", "list", "--artist", "nobody"},
				want: []string{"Albums: all (4)"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				runner, output, _ := newTestRunner(t)
				if err := run(t, runner, tt.args...); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				for _, want := range tt.want {
					if !strings.Contains(output.String(), want) {
						t.Errorf("expected output to contain %q, got %q", want, output.String())
					}
				}
				for _, unwanted := range tt.notWant {
					if strings.Contains(output.String(), unwanted) {
						t.Errorf("expected output not to contain %q", unwanted)
					}
				}
			})
		}
	})

	t.Run("albums show", func(t *testing.T) {
		runner, output, _ := newTestRunner(t)
		if err := run(t, runner, "albums", "show", "dark-academy"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "SMR-031") {
			t.Errorf("expected catalog number in detail, got %q", output.String())
		}
	})

	t.Run("albums show unknown slug", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)
		err := run(t, runner, "albums", "show", "missing")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("albums show without slug", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)
		err := run(t, runner, "albums", "show")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("albums search", func(t *testing.T) {
		runner, output, _ := newTestRunner(t)
		if err := run(t, runner, "albums", "search", "floods"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "floods-fires") {
			t.Errorf("expected match, got %q", output.String())
		}
	})

	t.Run("albums export writes a file", func(t *testing.T) {
		runner, output, root := newTestRunner(t)
		path := filepath.Join(root, "exports", "catalog.csv")

		if err := run(t, runner, "albums", "export", "--format", "csv", "-o", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(tu.MustReadFile(t, path), "Slug,Name,Artist") {
			t.Errorf("expected CSV header in %s", path)
		}
		if !strings.Contains(output.String(), "Exported 4 albums") {
			t.Errorf("expected export summary, got %q", output.String())
		}
	})

	t.Run("albums export rejects unknown format", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)
		err := run(t, runner, "albums", "export", "--format", "xlsx", "--stdout")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestImportCommands(t *testing.T) {
	t.Run("embeds rewrites albums.json", func(t *testing.T) {
		runner, output, root := newTestRunner(t)
		albumsPath := filepath.Join(root, "data", catalog.AlbumsFile)

		if err := run(t, runner, "import", "embeds"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Embeds rewritten: 1") {
			t.Errorf("expected one rewrite, got %q", output.String())
		}
		if !strings.Contains(tu.MustReadFile(t, albumsPath), "size=large") {
			t.Error("expected compact player in albums.json")
		}
	})

	t.Run("dry run leaves files alone", func(t *testing.T) {
		runner, output, root := newTestRunner(t)
		albumsPath := filepath.Join(root, "data", catalog.AlbumsFile)
		before := tu.MustReadFile(t, albumsPath)

		if err := run(t, runner, "import", "embeds", "--dry-run"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Dry run") {
			t.Errorf("expected dry run notice, got %q", output.String())
		}
		if tu.MustReadFile(t, albumsPath) != before {
			t.Error("expected albums.json to be unchanged")
		}
	})

	t.Run("press adds quotes by album name", func(t *testing.T) {
		runner, _, root := newTestRunner(t)
		sheet := filepath.Join(root, "press.csv")
		tu.MustWriteFile(t, sheet, "Album Name,Featured Quote,Press\n"+
			"demos,\"Raw and urgent. — NME\",\"Raw and urgent. — NME\n\nLoud. — Spin\"\n")

		if err := run(t, runner, "import", "press", sheet); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		albums, err := catalog.NewJSONSource(catalog.NewFileSource(filepath.Join(root, "data"))).Albums(context.Background())
		if err != nil {
			t.Fatalf("failed to reload albums: %v", err)
		}
		for _, a := range albums {
			if a.Slug != "demos" {
				continue
			}
			if !a.HasFeaturedQuote() || a.FeaturedQuote.Source != "NME" {
				t.Errorf("expected featured quote from NME, got %+v", a.FeaturedQuote)
			}
			if len(a.Press) != 2 {
				t.Errorf("expected 2 press quotes, got %d", len(a.Press))
			}
		}
	})

	t.Run("press requires a path", func(t *testing.T) {
		runner, _, _ := newTestRunner(t)
		err := run(t, runner, "import", "press")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("covers finds files by slug", func(t *testing.T) {
		runner, output, root := newTestRunner(t)
		tu.MustWriteFile(t, filepath.Join(root, "covers", "demos.png"), "png")

		if err := run(t, runner, "import", "covers", "--prefix", "assets/images/albums"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Covers updated: 1") {
			t.Errorf("expected one cover update, got %q", output.String())
		}
		albums := tu.MustReadFile(t, filepath.Join(root, "data", catalog.AlbumsFile))
		if !strings.Contains(albums, "assets/images/albums/demos.png") {
			t.Error("expected demos cover path in albums.json")
		}
	})
}

func TestDBCommands(t *testing.T) {
	runner, output, root := newTestRunner(t)

	if err := run(t, runner, "db", "setup"); err != nil {
		t.Fatalf("setup: expected no error, got %v", err)
	}
	tu.AssertFileExists(t, filepath.Join(root, "smrx.db"))

	if err := run(t, runner, "db", "sync"); err != nil {
		t.Fatalf("sync: expected no error, got %v", err)
	}
	if !strings.Contains(output.String(), "Sync Complete!") {
		t.Errorf("expected sync summary, got %q", output.String())
	}

	dumpDir := filepath.Join(root, "dump")
	if err := run(t, runner, "db", "dump", "-o", dumpDir); err != nil {
		t.Fatalf("dump: expected no error, got %v", err)
	}
	for _, name := range []string{catalog.AlbumsFile, catalog.ArtistsFile, catalog.TimelineFile} {
		tu.AssertFileExists(t, filepath.Join(dumpDir, name))
	}

	cat, err := catalog.Load(context.Background(), catalog.NewJSONSource(catalog.NewFileSource(dumpDir)), nil)
	if err != nil {
		t.Fatalf("failed to load dump: %v", err)
	}
	if len(cat.Albums) != 4 || len(cat.Artists) != 2 || len(cat.Timeline) != 3 {
		t.Errorf("expected 4/2/3 records, got %d/%d/%d", len(cat.Albums), len(cat.Artists), len(cat.Timeline))
	}
}

func TestWatchDir(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- watchDir(ctx, dir, 10*time.Millisecond, shared.NewLogger(io.Discard), func() error {
			select {
			case changed <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// the watcher is registered asynchronously; keep writing until it notices
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

loop:
	for {
		select {
		case <-changed:
			break loop
		case <-tick.C:
			tu.MustWriteFile(t, filepath.Join(dir, catalog.AlbumsFile), "[]")
		case <-deadline:
			t.Fatal("expected onChange to be called")
		}
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("expected nil after cancel, got %v", err)
	}
}
