package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxInquiryMessageLength = 5000

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Inquiry is a contact-form submission, optionally about one listing.
type Inquiry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Message     string    `json:"message"`
	ListingSlug string    `json:"listingSlug,omitempty"`
	ReceivedAt  time.Time `json:"receivedAt"`
}

// Normalize trims every field.
func (i *Inquiry) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Email = strings.TrimSpace(i.Email)
	i.Phone = strings.TrimSpace(i.Phone)
	i.Message = strings.TrimSpace(i.Message)
	i.ListingSlug = strings.TrimSpace(i.ListingSlug)
}

// Validate reports the first problem with a normalized inquiry.
func (i *Inquiry) Validate() error {
	switch {
	case i.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInquiry)
	case i.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidInquiry)
	case !emailPattern.MatchString(i.Email):
		return fmt.Errorf("%w: email %q is not valid", ErrInvalidInquiry, i.Email)
	case i.Message == "":
		return fmt.Errorf("%w: message is required", ErrInvalidInquiry)
	case utf8.RuneCountInString(i.Message) > MaxInquiryMessageLength:
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInquiry, MaxInquiryMessageLength)
	case i.ListingSlug != "" && !ValidSlug(i.ListingSlug):
		return fmt.Errorf("%w: unknown listing", ErrInvalidInquiry)
	}
	return nil
}
