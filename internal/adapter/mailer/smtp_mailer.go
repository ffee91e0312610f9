// Package mailer forwards contact inquiries to the dealership mailbox.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/config"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

// Dialer sends composed messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	from   string
	to     string
	dialer Dialer
	logger *logger.Logger
}

func NewSMTPMailer(cfg *config.SMTPConfig, log *logger.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" || cfg.To == "" {
		return nil, errors.New("SMTP host, port, from and to must be configured")
	}
	return NewSMTPMailerWithDialer(cfg.From, cfg.To,
		gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), log), nil
}

func NewSMTPMailerWithDialer(from, to string, d Dialer, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{from: from, to: to, dialer: d, logger: log.Named("SMTPMailer")}
}

func (s *SMTPMailer) Name() string { return "smtp" }

func (s *SMTPMailer) compose(inq *domain.Inquiry) *gomail.Message {
	subject := "Website inquiry from " + inq.Name
	if inq.ListingSlug != "" {
		subject += " about " + inq.ListingSlug
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\n", inq.Name)
	fmt.Fprintf(&body, "Email: %s\n", inq.Email)
	if inq.Phone != "" {
		fmt.Fprintf(&body, "Phone: %s\n", inq.Phone)
	}
	if inq.ListingSlug != "" {
		fmt.Fprintf(&body, "Listing: /cars/%s\n", inq.ListingSlug)
	}
	fmt.Fprintf(&body, "Received: %s\n", inq.ReceivedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&body, "Reference: %s\n\n%s\n", inq.ID, inq.Message)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetAddressHeader("Reply-To", inq.Email, inq.Name)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body.String())
	return m
}

// Forward sends the inquiry. The SMTP exchange itself cannot be cancelled;
// ctx only bounds how long Forward waits for it.
func (s *SMTPMailer) Forward(ctx context.Context, inq *domain.Inquiry) error {
	m := s.compose(inq)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("Inquiry email cancelled or timed out", zap.String("inquiry_id", inq.ID), zap.Error(ctx.Err()))
		return fmt.Errorf("email sending cancelled or timed out: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			s.logger.Error("Failed to send inquiry email", zap.String("inquiry_id", inq.ID), zap.Error(err))
			return fmt.Errorf("failed to send email: %w", err)
		}
	}
	s.logger.Info("Inquiry email sent", zap.String("inquiry_id", inq.ID), zap.String("to", s.to))
	return nil
}
