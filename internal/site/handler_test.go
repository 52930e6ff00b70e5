package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tu "github.com/desertthunder/smrx/internal/testing"
)

func newTestHandler(t *testing.T, src *tu.MockSource) *Handler {
	t.Helper()
	g := newTestGenerator(t, Options{})
	tu.MustWriteFile(t, filepath.Join(g.Options().OutputDir, "assets", "css", "style.css"), "body{}")
	return NewHandler(g, src, nil)
}

func TestHandler(t *testing.T) {
	h := newTestHandler(t, tu.MockSourceFrom(tu.FixtureCatalog()))

	t.Run("Routes", func(t *testing.T) {
		routes := h.Routes()
		if len(routes) != 2 || routes[0] != "/" || routes[1] != "/api/albums" {
			t.Errorf("unexpected routes %v", routes)
		}
	})

	t.Run("Index", func(t *testing.T) {
		tc := []struct {
			name   string
			target string
			header string
			want   []string
		}{
			{
				name:   "defaults",
				target: "/",
				want:   []string{`<span id="album-count">4</span>`, `class="grid grid-cols-4"`, `aria-expanded="false"`},
			},
			{
				name:   "filter",
				target: "/?filter=pom-pom-squad",
				want:   []string{`<span id="album-count">2</span>`, `data-filter="pom-pom-squad"`},
			},
			{
				name:   "menu open",
				target: "/index.html?menu=open",
				want:   []string{`site-nav--open`, `aria-expanded="true"`, `<noscript>`},
			},
			{
				name:   "width query",
				target: "/?width=500",
				want:   []string{`class="grid grid-cols-1"`},
			},
			{
				name:   "width client hint",
				target: "/",
				header: "900",
				want:   []string{`class="grid grid-cols-3"`},
			},
			{
				name:   "query wins over hint",
				target: "/?width=700",
				header: "1200",
				want:   []string{`class="grid grid-cols-2"`},
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, tt.target, nil)
				if tt.header != "" {
					req.Header.Set(ViewportHeader, tt.header)
				}
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)

				if rec.Code != http.StatusOK {
					t.Fatalf("expected 200, got %d", rec.Code)
				}
				if rec.Header().Get("Accept-CH") != ViewportHeader {
					t.Error("expected Accept-CH header")
				}
				assertContains(t, rec.Body.String(), tt.want...)
			})
		}
	})

	t.Run("Albums API", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/albums?filter=cheekface", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}

		var resp albumsResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Filter != "cheekface" || resp.Count != 2 || resp.Albums[0].Slug != "dark-academy" {
			t.Errorf("unexpected response %+v", resp)
		}
	})

	t.Run("Albums API unknown filter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/albums?filter=nobody", nil))
		if !strings.Contains(rec.Body.String(), `"albums":[]`) {
			t.Errorf("expected empty album list, got %s", rec.Body.String())
		}
	})

	t.Run("Static Files", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/style.css", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "body{}" {
			t.Errorf("expected style sheet, got %d %q", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.html", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandlerLoadFailure(t *testing.T) {
	h := newTestHandler(t, &tu.MockSource{AlbumsErr: errors.New("offline")})

	for _, target := range []string{"/", "/api/albums"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil).WithContext(context.Background()))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected 503, got %d", target, rec.Code)
		}
	}
}
