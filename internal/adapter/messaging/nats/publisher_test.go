package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goodmenmotors/catalog-service/internal/catalog/domain"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

type MockConn struct{ mock.Mock }

func (m *MockConn) Publish(subject string, data []byte) error {
	return m.Called(subject, data).Error(0)
}
func (m *MockConn) FlushWithContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockConn) Close() { m.Called() }

func sampleInquiry() *domain.Inquiry {
	return &domain.Inquiry{
		ID:          "a1b2",
		Name:        "Arben Hoxha",
		Email:       "arben@example.al",
		Message:     "Is the car still available?",
		ListingSlug: "audi-q7-2019",
		ReceivedAt:  time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_Forward(t *testing.T) {
	conn := new(MockConn)
	var published []byte
	conn.On("Publish", "catalog.contact.submitted", mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(1).([]byte) }).
		Return(nil).Once()
	conn.On("FlushWithContext", mock.Anything).Return(nil).Once()

	p := NewPublisher(conn, "catalog.contact.submitted", logger.NewNop())
	require.NoError(t, p.Forward(context.Background(), sampleInquiry()))
	assert.Equal(t, "nats", p.Name())

	var got domain.Inquiry
	require.NoError(t, json.Unmarshal(published, &got))
	assert.Equal(t, "audi-q7-2019", got.ListingSlug)
	assert.Equal(t, "arben@example.al", got.Email)
	conn.AssertExpectations(t)
}

func TestPublisher_ForwardPublishError(t *testing.T) {
	conn := new(MockConn)
	conn.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats: connection closed")).Once()

	p := NewPublisher(conn, "catalog.contact.submitted", logger.NewNop())
	err := p.Forward(context.Background(), sampleInquiry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection closed")
	conn.AssertNotCalled(t, "FlushWithContext", mock.Anything)
}

func TestPublisher_Close(t *testing.T) {
	conn := new(MockConn)
	conn.On("Close").Return().Once()
	NewPublisher(conn, "s", logger.NewNop()).Close()
	conn.AssertExpectations(t)
}
