package notifyqueue

import (
	"context"
	"fmt"
	"sync"

	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/pkg/constvars"
	"eduvoyage-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	StandardQueueName   = "booking_notification_queue"
	DeadLetterQueueName = "booking_notification_dlq"
)

// QueueMessage is the payload stored in RabbitMQ for one webhook delivery.
type QueueMessage struct {
	ID          string                         `json:"id"`
	Envelope    contracts.NotificationEnvelope `json:"envelope"`
	FailedCount int                            `json:"failed_count"`
}

// Service manages the durable notification queues. Deliveries that keep
// failing end up in the dead-letter queue for out-of-band inspection.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, name := range []string{StandardQueueName, DeadLetterQueueName} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// QueuedItem is a fetched delivery with its decoded payload.
type QueuedItem struct {
	DeliveryTag uint64
	Message     QueueMessage
}

// Enqueue publishes msg to the standard queue and waits for a confirm.
func (s *Service) Enqueue(ctx context.Context, msg QueueMessage) error {
	return s.publish(ctx, StandardQueueName, msg)
}

// EnqueueToDeadQueue parks msg in the DLQ after delivery gave up.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, msg QueueMessage) error {
	return s.publish(ctx, DeadLetterQueueName, msg)
}

// Reenqueue puts a failed message back on the tail of the standard queue.
func (s *Service) Reenqueue(ctx context.Context, msg QueueMessage) error {
	return s.publish(ctx, StandardQueueName, msg)
}

func (s *Service) publish(ctx context.Context, queue string, msg QueueMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	publishing := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, publishing); err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrQueuePublish(fmt.Errorf("message not confirmed by broker"))
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err())
	}
	return nil
}

// FetchN pulls up to max messages off the standard queue without auto-ack.
func (s *Service) FetchN(ctx context.Context, max int) ([]QueuedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]QueuedItem, 0, max)
	for i := 0; i < max; i++ {
		delivery, ok, err := s.ch.Get(StandardQueueName, false)
		if err != nil {
			return items, err
		}
		if !ok {
			break
		}

		var msg QueueMessage
		if err := json.Unmarshal(delivery.Body, &msg); err != nil {
			s.log.Warn("notifyqueue.FetchN dropping undecodable message", zap.Error(err))
			_ = delivery.Ack(false)
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: delivery.DeliveryTag, Message: msg})
	}
	return items, nil
}

// Ack removes a delivered message from the queue.
func (s *Service) Ack(deliveryTag uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch.Ack(deliveryTag, false)
}
