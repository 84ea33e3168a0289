package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

var _ ports.ClearanceEventPublisher = (*RabbitMQBroker)(nil)

// envelope wraps every published message with its event type so consumers on
// the shared queue can dispatch.
type envelope struct {
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
}

func (rmq *RabbitMQBroker) PublishClearanceUpdated(ctx context.Context, evt ports.ClearanceUpdatedEvent) error {
	return rmq.publish(ctx, ports.EventClearanceUpdated, evt)
}

func (rmq *RabbitMQBroker) PublishStudentCreated(ctx context.Context, evt ports.StudentCreatedEvent) error {
	return rmq.publish(ctx, ports.EventStudentCreated, evt)
}

func (rmq *RabbitMQBroker) publish(ctx context.Context, eventType string, evt any) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	body, err := json.Marshal(envelope{EventType: eventType, Payload: payload})
	if err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	_, err = rmq.cb.Execute(func() (any, error) {
		return nil, rmq.ch.PublishWithContext(
			ctx,
			"",            // default exchange
			rmq.queueName, // routing key == queue name
			false,
			false,
			amqp091.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp091.Persistent,
				Body:         body,
			},
		)
	})
	return err
}
