package site

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

// ViewportHeader is the client hint carrying the layout viewport width.
const ViewportHeader = "Sec-CH-Viewport-Width"

// Handler serves a live catalog page, the albums API and the generated files.
//
// The catalog is reloaded from the source on every request so edits show up without a rebuild.
type Handler struct {
	gen    *Generator
	src    catalog.Source
	files  http.Handler
	logger *log.Logger
}

type albumsResponse struct {
	Filter string         `json:"filter"`
	Count  int            `json:"count"`
	Albums []models.Album `json:"albums"`
}

// NewHandler creates a [Handler] serving static files from the generator's output directory.
func NewHandler(gen *Generator, src catalog.Source, logger *log.Logger) *Handler {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Handler{
		gen:    gen,
		src:    src,
		files:  http.FileServer(http.Dir(gen.Options().OutputDir)),
		logger: logger,
	}
}

func (h *Handler) Routes() []string {
	return []string{"/", "/api/albums"}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/", "/index.html":
		h.serveIndex(w, r)
	case "/api/albums":
		h.serveAlbums(w, r)
	default:
		h.files.ServeHTTP(w, r)
	}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*models.Catalog, bool) {
	cat, err := catalog.Load(r.Context(), h.src, h.logger)
	if err != nil {
		h.logger.Error("failed to load catalog", "err", err)
		http.Error(w, shared.ErrServiceUnavailable.Error(), http.StatusServiceUnavailable)
		return nil, false
	}
	return cat, true
}

// StateFromRequest reads the filter, menu and viewport width of a catalog page request.
//
// The width comes from ?width= when present, otherwise from the viewport client hint.
func StateFromRequest(r *http.Request) IndexState {
	q := r.URL.Query()
	state := IndexState{
		Filter: q.Get("filter"),
		Menu:   catalog.MenuFromQuery(q.Get("menu")),
		Live:   true,
	}

	width := q.Get("width")
	if width == "" {
		width = r.Header.Get(ViewportHeader)
	}
	if n, err := strconv.Atoi(width); err == nil {
		state.Width = n
	}
	return state
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	page := Page{Path: IndexPath, Template: TemplateIndex, Data: h.gen.IndexView(cat, StateFromRequest(r))}
	if err := h.gen.Render(&buf, page); err != nil {
		h.logger.Error("failed to render catalog page", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Accept-CH", ViewportHeader)
	w.Header().Set("Vary", ViewportHeader)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *Handler) serveAlbums(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.load(w, r)
	if !ok {
		return
	}

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = catalog.FilterAll
	}
	albums := catalog.SortByReleaseDate(catalog.FilterAlbums(cat.Albums, filter))

	data, err := shared.MarshalJSON(albumsResponse{Filter: filter, Count: len(albums), Albums: nonNil(albums)}, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
