package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

// Inquiry outcomes reported to metrics.
const (
	InquiryRejected  = "rejected"
	InquiryForwarded = "forwarded"
	InquiryPartial   = "partial"
	InquiryFailed    = "failed"
	InquiryLogged    = "logged"
)

// ContactUsecase validates contact-form inquiries and hands them to every
// configured forwarder.
type ContactUsecase struct {
	forwarders []InquiryForwarder
	logger     *logger.Logger
	metrics    Metrics
	now        func() time.Time
}

func NewContactUsecase(forwarders []InquiryForwarder, log *logger.Logger, m Metrics) *ContactUsecase {
	if m == nil {
		m = nopMetrics{}
	}
	return &ContactUsecase{
		forwarders: forwarders,
		logger:     log.Named("ContactUsecase"),
		metrics:    m,
		now:        time.Now,
	}
}

// Submit accepts an inquiry. It fails with domain.ErrInvalidInquiry for bad
// input and with domain.ErrInquiryNotForwarded when forwarders are
// configured and all of them failed.
func (uc *ContactUsecase) Submit(ctx context.Context, in domain.Inquiry) (*domain.Inquiry, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		uc.metrics.InquiryHandled(InquiryRejected)
		uc.logger.Debug("Rejected contact inquiry", zap.Error(err))
		return nil, err
	}
	in.ID = uuid.NewString()
	in.ReceivedAt = uc.now().UTC()

	uc.logger.Info("Contact inquiry received",
		zap.String("inquiry_id", in.ID),
		zap.String("name", in.Name),
		zap.String("email", in.Email),
		zap.String("listing_slug", in.ListingSlug))

	if len(uc.forwarders) == 0 {
		uc.metrics.InquiryHandled(InquiryLogged)
		return &in, nil
	}

	var errs []error
	for _, f := range uc.forwarders {
		if err := f.Forward(ctx, &in); err != nil {
			uc.logger.Error("Failed to forward contact inquiry",
				zap.String("forwarder", f.Name()),
				zap.String("inquiry_id", in.ID),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
		}
	}

	switch {
	case len(errs) == len(uc.forwarders):
		uc.metrics.InquiryHandled(InquiryFailed)
		return nil, fmt.Errorf("%w: %w", domain.ErrInquiryNotForwarded, errors.Join(errs...))
	case len(errs) > 0:
		uc.metrics.InquiryHandled(InquiryPartial)
	default:
		uc.metrics.InquiryHandled(InquiryForwarded)
	}
	return &in, nil
}
