package domain

import "errors"

var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrInvalidListing      = errors.New("invalid listing data")
	ErrCatalogUnavailable  = errors.New("catalog is temporarily unavailable")
	ErrInvertedRange       = errors.New("minimum is greater than maximum")
	ErrInvalidInquiry      = errors.New("invalid contact inquiry")
	ErrInquiryNotForwarded = errors.New("contact inquiry could not be forwarded")
)
