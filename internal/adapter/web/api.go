package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

const maxContactBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

type apiListing struct {
	domain.Listing
	ImageURL    string   `json:"imageUrl,omitempty"`
	GalleryURLs []string `json:"galleryUrls,omitempty"`
}

type listingsResponse struct {
	Listings []apiListing `json:"listings"`
	domain.Pagination
	Options domain.FacetOptions `json:"options"`
	Query   string              `json:"query"`
	Notices []string            `json:"notices,omitempty"`
	Error   string              `json:"error,omitempty"`
}

type contactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	ListingSlug string `json:"listingSlug"`
}

type contactResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

func (s *Server) apiListing(ctx context.Context, l *domain.Listing) apiListing {
	out := apiListing{Listing: *l, ImageURL: s.imageURL(ctx, l.MainImage)}
	for i := range l.Gallery {
		if u := s.imageURL(ctx, &l.Gallery[i]); u != "" {
			out.GalleryURLs = append(out.GalleryURLs, u)
		}
	}
	return out
}

func (s *Server) apiListings(ctx context.Context, ls []domain.Listing) []apiListing {
	out := make([]apiListing, 0, len(ls))
	for i := range ls {
		out = append(out, s.apiListing(ctx, &ls[i]))
	}
	return out
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

// statusFor maps catalog errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInquiry):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInquiryNotForwarded):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleAPIListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := domain.ParseFilterState(r.URL.Query())

	page, err := s.catalog.Search(ctx, f)
	if page == nil {
		writeError(w, r, statusFor(err), "catalog unavailable")
		return
	}
	resp := listingsResponse{
		Listings:   s.apiListings(ctx, page.Listings),
		Pagination: page.Pagination,
		Options:    page.Options,
		Query:      page.CanonicalQuery,
		Notices:    page.Notices,
	}
	if err != nil {
		resp.Error = "catalog unavailable"
		render.Status(r, statusFor(err))
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleAPIListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l, err := s.catalog.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		status := statusFor(err)
		msg := "catalog unavailable"
		if status == http.StatusNotFound {
			msg = "listing not found"
		}
		writeError(w, r, status, msg)
		return
	}
	render.JSON(w, r, s.apiListing(ctx, l))
}

func (s *Server) handleAPIFeatured(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ls, err := s.catalog.Featured(ctx)
	if err != nil {
		writeError(w, r, statusFor(err), "catalog unavailable")
		return
	}
	render.JSON(w, r, map[string]any{"listings": s.apiListings(ctx, ls)})
}

func (s *Server) handleAPIModels(w http.ResponseWriter, r *http.Request) {
	f := domain.ParseFilterState(r.URL.Query())
	models := s.catalog.Models(r.Context(), f.Makes)
	render.JSON(w, r, map[string]domain.Set[string]{"models": models})
}

func (s *Server) handleAPIContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxContactBodyBytes), &req); err != nil {
		s.logger.Debug("Malformed contact payload", zap.Error(err))
		writeError(w, r, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	inq, err := s.contact.Submit(r.Context(), domain.Inquiry{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		ListingSlug: req.ListingSlug,
	})
	if err != nil {
		status := statusFor(err)
		msg := "inquiry could not be delivered"
		if status == http.StatusBadRequest {
			msg = inquiryProblem(err)
		}
		writeError(w, r, status, msg)
		return
	}
	render.JSON(w, r, contactResponse{Success: true, ID: inq.ID})
}

// inquiryProblem strips the sentinel prefix from a validation error.
func inquiryProblem(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidInquiry.Error()+": ")
}
