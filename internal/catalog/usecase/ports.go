package usecase

import (
	"context"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/catalog/query"
)

// ListingStore is the read contract of the content store. Implementations
// receive queries built by the query package only.
type ListingStore interface {
	// Find returns the records matching q in q's order and window.
	Find(ctx context.Context, q query.Query) ([]domain.Listing, error)
	// Count returns the number of records matching where, ignoring any window.
	Count(ctx context.Context, where []query.Clause) (int64, error)
	// Distinct returns the distinct non-empty values of field across records
	// matching where, in no particular order.
	Distinct(ctx context.Context, field query.Field, where []query.Clause) ([]string, error)
	// FindBySlug returns domain.ErrListingNotFound when no record has slug.
	FindBySlug(ctx context.Context, slug string) (*domain.Listing, error)
}

// InquiryForwarder delivers an accepted contact inquiry to the dealership.
type InquiryForwarder interface {
	Name() string
	Forward(ctx context.Context, inquiry *domain.Inquiry) error
}

// Metrics is the subset of platform metrics the usecases report to.
type Metrics interface {
	StoreFetchFailed(fetch string)
	FacetDegraded(facet string)
	InquiryHandled(outcome string)
}

type nopMetrics struct{}

func (nopMetrics) StoreFetchFailed(string) {}
func (nopMetrics) FacetDegraded(string)    {}
func (nopMetrics) InquiryHandled(string)   {}
