package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/goodmenmotors/catalog-service/internal/platform/metrics"
)

type RouterOptions struct {
	RequestTimeout time.Duration
	// AllowedOrigins for the JSON API. Empty allows any origin.
	AllowedOrigins []string
	Metrics        *metrics.MetricsManager
	MetricsPath    string
}

func (s *Server) Routes(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observe(s.logger, opts.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	if opts.Metrics != nil && opts.MetricsPath != "" {
		r.Method(http.MethodGet, opts.MetricsPath, opts.Metrics.Handler())
	}

	r.Get("/", s.handleHome)
	r.Get("/listings", s.handleListings)
	r.Get("/cars/{slug}", s.handleCar)
	r.Get("/about", s.handleAbout)
	r.Get("/contact", s.handleContactForm)
	r.Post("/contact", s.handleContactSubmit)
	r.NotFound(s.handleNotFound)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler)
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/listings", s.handleAPIListings)
		r.Get("/listings/{slug}", s.handleAPIListing)
		r.Get("/featured", s.handleAPIFeatured)
		r.Get("/models", s.handleAPIModels)
		r.Post("/contact", s.handleAPIContact)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, http.StatusNotFound, "not found")
		})
	})

	return otelhttp.NewHandler(r, "catalog-http")
}
