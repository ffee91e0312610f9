package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/catalog/query"
)

type MockListingStore struct{ mock.Mock }

func (m *MockListingStore) Find(ctx context.Context, q query.Query) ([]domain.Listing, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}
func (m *MockListingStore) Count(ctx context.Context, where []query.Clause) (int64, error) {
	args := m.Called(ctx, where)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockListingStore) Distinct(ctx context.Context, field query.Field, where []query.Clause) ([]string, error) {
	args := m.Called(ctx, field, where)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockListingStore) FindBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockForwarder struct{ mock.Mock }

func (m *MockForwarder) Name() string {
	return m.Called().String(0)
}
func (m *MockForwarder) Forward(ctx context.Context, inquiry *domain.Inquiry) error {
	args := m.Called(ctx, inquiry)
	return args.Error(0)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) StoreFetchFailed(fetch string) { m.Called(fetch) }
func (m *MockMetrics) FacetDegraded(facet string)    { m.Called(facet) }
func (m *MockMetrics) InquiryHandled(outcome string) { m.Called(outcome) }
