package site

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/app.js
var appJS []byte

//go:embed static/style.css
var styleCSS []byte

// Template names, one per page kind.
const (
	TemplateIndex   = "index"
	TemplateAlbum   = "album"
	TemplateArtist  = "artist"
	TemplateArtists = "artists"
	TemplateAbout   = "about"
)

// Output paths relative to the output directory.
const (
	ScriptPath     = "assets/js/app.js"
	StylePath      = "assets/css/style.css"
	DataDir        = "data"
	IndexPath      = "index.html"
	AboutPath      = "pages/about.html"
	ArtistsPath    = "pages/artists/index.html"
	albumPagesDir  = "pages/albums"
	artistPagesDir = "pages/artists"
)

// Options configures a [Generator].
type Options struct {
	Title       string
	OutputDir   string
	AssetsDir   string // Copied to {OutputDir}/assets when set
	Placeholder string
}

// Page is one output file.
type Page struct {
	Path     string // Relative to the output directory
	Template string
	Data     any
}

// Generator renders catalogs into HTML pages.
type Generator struct {
	opts      Options
	logger    *log.Logger
	md        goldmark.Markdown
	templates map[string]*template.Template
}

// NewGenerator parses the embedded templates.
func NewGenerator(opts Options, logger *log.Logger) (*Generator, error) {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	if opts.Placeholder == "" {
		opts.Placeholder = catalog.DefaultPlaceholder
	}

	g := &Generator{
		opts:      opts,
		logger:    logger,
		templates: make(map[string]*template.Template),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}

	for _, name := range []string{TemplateIndex, TemplateAlbum, TemplateArtist, TemplateArtists, TemplateAbout} {
		tmpl, err := template.New(name).ParseFS(templateFS,
			"templates/layout.html", "templates/card.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		g.templates[name] = tmpl
	}
	return g, nil
}

// Options returns the generator's configuration.
func (g *Generator) Options() Options { return g.opts }

func (g *Generator) markdown(text string) template.HTML {
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(text), &buf); err != nil {
		g.logger.Warn("markdown conversion failed", "err", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}

// Pages lists every page of the site for cat.
func (g *Generator) Pages(cat *models.Catalog) []Page {
	pages := make([]Page, 0, len(cat.Albums)+len(cat.Artists)+3)
	pages = append(pages, Page{Path: IndexPath, Template: TemplateIndex, Data: g.IndexView(cat, IndexState{Filter: catalog.FilterAll})})

	for _, a := range cat.Albums {
		pages = append(pages, Page{
			Path:     albumPagesDir + "/" + a.Slug + ".html",
			Template: TemplateAlbum,
			Data:     g.AlbumView(a, cat),
		})
	}
	for _, a := range cat.Artists {
		pages = append(pages, Page{
			Path:     artistPagesDir + "/" + a.Slug + ".html",
			Template: TemplateArtist,
			Data:     g.ArtistView(a, cat),
		})
	}

	pages = append(pages,
		Page{Path: ArtistsPath, Template: TemplateArtists, Data: g.ArtistsView(cat)},
		Page{Path: AboutPath, Template: TemplateAbout, Data: g.AboutView(cat)},
	)
	return pages
}

// Render executes the page's template into w.
func (g *Generator) Render(w io.Writer, p Page) error {
	tmpl, ok := g.templates[p.Template]
	if !ok {
		return fmt.Errorf("%w: template %q", shared.ErrNotFound, p.Template)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", p.Data); err != nil {
		return fmt.Errorf("rendering %s: %w", p.Path, err)
	}
	return nil
}

// WritePage renders p into the output directory. Paths that would land outside it are refused.
func (g *Generator) WritePage(p Page) error {
	if !filepath.IsLocal(filepath.FromSlash(p.Path)) {
		return fmt.Errorf("%w: page path %q escapes the output directory", shared.ErrInvalidInput, p.Path)
	}
	var buf bytes.Buffer
	if err := g.Render(&buf, p); err != nil {
		return err
	}
	return writeFile(filepath.Join(g.opts.OutputDir, filepath.FromSlash(p.Path)), buf.Bytes())
}

// WriteAssets writes the browser script and style sheet, then copies the assets directory.
func (g *Generator) WriteAssets() error {
	if g.opts.AssetsDir != "" {
		if _, err := os.Stat(g.opts.AssetsDir); err == nil {
			if err := copyDir(g.opts.AssetsDir, filepath.Join(g.opts.OutputDir, "assets")); err != nil {
				return fmt.Errorf("copying assets: %w", err)
			}
		} else {
			g.logger.Debug("assets directory not found, skipping copy", "dir", g.opts.AssetsDir)
		}
	}

	if err := writeFile(filepath.Join(g.opts.OutputDir, filepath.FromSlash(ScriptPath)), appJS); err != nil {
		return err
	}
	return writeFile(filepath.Join(g.opts.OutputDir, filepath.FromSlash(StylePath)), styleCSS)
}

// WriteData writes the catalog JSON the browser script fetches.
func (g *Generator) WriteData(cat *models.Catalog) error {
	dir := filepath.Join(g.opts.OutputDir, DataDir)
	if err := shared.WriteJSONFile(filepath.Join(dir, catalog.AlbumsFile), nonNil(cat.Albums)); err != nil {
		return err
	}
	if err := shared.WriteJSONFile(filepath.Join(dir, catalog.ArtistsFile), nonNil(cat.Artists)); err != nil {
		return err
	}
	return shared.WriteJSONFile(filepath.Join(dir, catalog.TimelineFile), nonNil(cat.Timeline))
}

// Generate writes the complete site and returns the number of pages written.
func (g *Generator) Generate(ctx context.Context, cat *models.Catalog) (int, error) {
	if err := cat.Validate(); err != nil {
		return 0, err
	}
	if err := g.WriteAssets(); err != nil {
		return 0, err
	}
	if err := g.WriteData(cat); err != nil {
		return 0, err
	}

	pages := g.Pages(cat)
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := g.WritePage(p); err != nil {
			return i, err
		}
		g.logger.Debug("page written", "path", p.Path)
	}
	return len(pages), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
}
