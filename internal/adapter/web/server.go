// Package web serves the catalog over HTTP: the JSON API under /api and the
// server-rendered site pages.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "listings", "car", "notfound", "about", "contact", "error"}

type CatalogService interface {
	Search(ctx context.Context, f domain.FilterState) (*domain.ResultPage, error)
	Models(ctx context.Context, makes domain.Set[string]) domain.Set[string]
	Featured(ctx context.Context) ([]domain.Listing, error)
	LatestArrivals(ctx context.Context) []domain.Listing
	GetBySlug(ctx context.Context, slug string) (*domain.Listing, error)
}

type ContactService interface {
	Submit(ctx context.Context, in domain.Inquiry) (*domain.Inquiry, error)
}

// AssetResolver turns an image asset reference into a URL, or "" when the
// reference cannot be resolved.
type AssetResolver interface {
	URL(ctx context.Context, ref string) string
}

type Server struct {
	catalog CatalogService
	contact ContactService
	assets  AssetResolver
	logger  *logger.Logger
	pages   map[string]*template.Template
}

func NewServer(catalog CatalogService, contact ContactService, assets AssetResolver, log *logger.Logger) (*Server, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Server{
		catalog: catalog,
		contact: contact,
		assets:  assets,
		logger:  log.Named("HTTP"),
		pages:   pages,
	}, nil
}

type pageData struct {
	Title string
	Nav   string
	Year  int
	Body  any
}

// renderPage executes the page into a buffer first so a template error
// never leaves a half-written response.
func (s *Server) renderPage(w http.ResponseWriter, status int, name, title string, body any) {
	var buf bytes.Buffer
	data := pageData{Title: title, Nav: name, Year: time.Now().Year(), Body: body}
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("Failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
