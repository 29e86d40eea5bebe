package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/contactsync/internal/entity"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestPublishContactSynced(t *testing.T) {
	ctx := context.Background()
	syncedAt := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	event := entity.ContactSyncedEvent{
		RunID:     "run-1",
		Handle:    "johndoe",
		Outcome:   entity.OutcomeCreated,
		ContactID: 123,
		Email:     "john.doe@example.com",
		SyncedAt:  syncedAt,
	}

	pub := new(MockPublisher)
	pub.On("PublishWithContext", ctx, ExchangeName, RoutingKey, false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var got entity.ContactSyncedEvent
		if err := json.Unmarshal(msg.Body, &got); err != nil {
			return false
		}
		return msg.ContentType == "application/json" &&
			msg.DeliveryMode == amqp.Persistent &&
			msg.MessageId == "run-1" &&
			got.ContactID == 123 &&
			got.Outcome == entity.OutcomeCreated
	})).Return(nil)

	err := NewProducer(pub).PublishContactSynced(ctx, event)

	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestPublishContactSyncedError(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, false, false, mock.Anything).
		Return(errors.New("channel closed"))

	err := NewProducer(pub).PublishContactSynced(context.Background(), entity.ContactSyncedEvent{RunID: "run-2"})

	assert.ErrorContains(t, err, "channel closed")
}
