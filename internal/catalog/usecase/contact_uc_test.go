package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

func inquiry() domain.Inquiry {
	return domain.Inquiry{
		Name:        " Arben Hoxha ",
		Email:       "arben@example.al",
		Message:     "A mund ta shoh makinën këtë javë?",
		ListingSlug: "audi-a4-2018",
	}
}

func forwarder(name string, err error) *MockForwarder {
	f := new(MockForwarder)
	f.On("Name").Return(name)
	f.On("Forward", mock.Anything, mock.AnythingOfType("*domain.Inquiry")).Return(err)
	return f
}

func TestContactUsecase_Submit(t *testing.T) {
	fixed := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	t.Run("forwards to every forwarder", func(t *testing.T) {
		nats, mail := forwarder("nats", nil), forwarder("smtp", nil)
		metrics := new(MockMetrics)
		metrics.On("InquiryHandled", InquiryForwarded).Return().Once()

		uc := NewContactUsecase([]InquiryForwarder{nats, mail}, logger.NewNop(), metrics)
		uc.now = func() time.Time { return fixed }

		got, err := uc.Submit(context.Background(), inquiry())
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Arben Hoxha", got.Name)
		assert.Equal(t, fixed, got.ReceivedAt)
		nats.AssertCalled(t, "Forward", mock.Anything, got)
		mail.AssertCalled(t, "Forward", mock.Anything, got)
		metrics.AssertExpectations(t)
	})

	t.Run("one failing forwarder is tolerated", func(t *testing.T) {
		metrics := new(MockMetrics)
		metrics.On("InquiryHandled", InquiryPartial).Return().Once()
		uc := NewContactUsecase([]InquiryForwarder{forwarder("nats", errors.New("no responders")), forwarder("smtp", nil)}, logger.NewNop(), metrics)

		_, err := uc.Submit(context.Background(), inquiry())
		assert.NoError(t, err)
		metrics.AssertExpectations(t)
	})

	t.Run("all forwarders failing is an error", func(t *testing.T) {
		uc := NewContactUsecase([]InquiryForwarder{forwarder("smtp", errors.New("535 auth failed"))}, logger.NewNop(), nil)

		_, err := uc.Submit(context.Background(), inquiry())
		assert.ErrorIs(t, err, domain.ErrInquiryNotForwarded)
		assert.Contains(t, err.Error(), "535 auth failed")
	})

	t.Run("no forwarders only logs", func(t *testing.T) {
		uc := NewContactUsecase(nil, logger.NewNop(), nil)
		got, err := uc.Submit(context.Background(), inquiry())
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("invalid inquiry is rejected before forwarding", func(t *testing.T) {
		f := forwarder("nats", nil)
		uc := NewContactUsecase([]InquiryForwarder{f}, logger.NewNop(), nil)

		in := inquiry()
		in.Email = "not-an-email"
		_, err := uc.Submit(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInquiry)
		f.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
	})
}
