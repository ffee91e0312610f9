package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
)

const unavailableMessage = "Our inventory is temporarily unavailable. Please try again in a few minutes."

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.renderPage(w, http.StatusOK, "home", "Goodmen Motors",
		homeView{Latest: s.cards(ctx, s.catalog.LatestArrivals(ctx))})
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := domain.ParseFilterState(r.URL.Query())

	page, err := s.catalog.Search(ctx, f)
	if page == nil {
		s.renderError(w, statusFor(err))
		return
	}
	if page.Pruned {
		http.Redirect(w, r, listingsHref(page.Filter), http.StatusFound)
		return
	}

	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	s.renderPage(w, status, "listings", "Inventory", s.newListingsView(ctx, page, err != nil))
}

func (s *Server) handleCar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l, err := s.catalog.GetBySlug(ctx, chi.URLParam(r, "slug"))
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		s.handleNotFound(w, r)
		return
	case err != nil:
		s.renderError(w, statusFor(err))
		return
	}
	s.renderPage(w, http.StatusOK, "car", l.Title, s.newDetailView(ctx, l))
}

func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, "about", "About us", nil)
}

func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	v := contactView{}
	if slug := r.URL.Query().Get("listing"); domain.ValidSlug(slug) {
		v.ListingSlug = slug
	}
	s.renderPage(w, http.StatusOK, "contact", "Contact", v)
}

func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, "contact", "Contact", contactView{Error: "The form could not be read."})
		return
	}
	v := contactView{
		Name:        r.PostForm.Get("name"),
		Email:       r.PostForm.Get("email"),
		Phone:       r.PostForm.Get("phone"),
		Message:     r.PostForm.Get("message"),
		ListingSlug: r.PostForm.Get("listingSlug"),
	}

	_, err := s.contact.Submit(r.Context(), domain.Inquiry{
		Name:        v.Name,
		Email:       v.Email,
		Phone:       v.Phone,
		Message:     v.Message,
		ListingSlug: v.ListingSlug,
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadRequest {
			v.Error = inquiryProblem(err)
		} else {
			s.logger.Warn("Contact form submission not delivered", zap.Error(err))
			v.Error = "We could not deliver your message. Please try again or reach us on WhatsApp."
		}
		s.renderPage(w, status, "contact", "Contact", v)
		return
	}
	s.renderPage(w, http.StatusOK, "contact", "Contact", contactView{Sent: true})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusNotFound, "notfound", "Vehicle not found", nil)
}

func (s *Server) renderError(w http.ResponseWriter, status int) {
	msg := "Something went wrong on our side."
	if status == http.StatusServiceUnavailable {
		msg = unavailableMessage
	}
	s.renderPage(w, status, "error", "Unavailable", msg)
}
