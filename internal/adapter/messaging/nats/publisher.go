package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/config"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

const (
	maxReconnects = 5
	reconnectWait = 2 * time.Second
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// Publisher announces accepted contact inquiries on a NATS subject.
type Publisher struct {
	conn    Conn
	subject string
	logger  *logger.Logger
}

func Connect(cfg *config.NATSConfig, log *logger.Logger) (*nats.Conn, error) {
	l := log.Named("NATS")
	nc, err := nats.Connect(cfg.URL,
		nats.Name("catalog-service contact publisher"),
		nats.Timeout(cfg.ConnectTimeout),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				l.Warn("Disconnected from NATS", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			l.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	l.Info("Connected to NATS", zap.String("url", cfg.URL))
	return nc, nil
}

func NewPublisher(conn Conn, subject string, log *logger.Logger) *Publisher {
	return &Publisher{conn: conn, subject: subject, logger: log.Named("NATSPublisher")}
}

func (p *Publisher) Name() string { return "nats" }

// Forward publishes the inquiry as JSON and waits for the server to
// acknowledge the flush.
func (p *Publisher) Forward(ctx context.Context, inquiry *domain.Inquiry) error {
	data, err := json.Marshal(inquiry)
	if err != nil {
		return fmt.Errorf("failed to encode inquiry %s: %w", inquiry.ID, err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		p.logger.Error("Failed to publish inquiry", zap.String("subject", p.subject), zap.String("inquiry_id", inquiry.ID), zap.Error(err))
		return fmt.Errorf("failed to publish inquiry to %s: %w", p.subject, err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush inquiry to %s: %w", p.subject, err)
	}
	p.logger.Debug("Published inquiry", zap.String("subject", p.subject), zap.String("inquiry_id", inquiry.ID))
	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}
