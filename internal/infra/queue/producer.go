package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/contactsync/internal/entity"
)

// Publisher is the part of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch       Publisher
	Exchange string
	Key      string
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{
		Ch:       ch,
		Exchange: ExchangeName,
		Key:      RoutingKey,
	}
}

func (p *RabbitMQProducer) PublishContactSynced(ctx context.Context, event entity.ContactSyncedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal contact synced event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		p.Exchange,
		p.Key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.RunID,
			Timestamp:    event.SyncedAt,
			Type:         RoutingKey,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to rabbitmq: %w", err)
	}

	return nil
}
