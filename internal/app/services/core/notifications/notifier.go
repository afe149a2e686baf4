package notifications

import (
	"context"
	"time"

	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/app/services/shared/notifyqueue"
	"eduvoyage-service/internal/pkg/constvars"
	"eduvoyage-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const dispatchTimeout = 15 * time.Second

// queueNotifier hands envelopes to the durable RabbitMQ queue so the worker
// can deliver and retry them. Dispatch returns immediately; the booking path
// never waits on the broker.
type queueNotifier struct {
	queue *notifyqueue.Service
	log   *zap.Logger
}

func NewQueueNotifier(queue *notifyqueue.Service, logger *zap.Logger) contracts.NotifierService {
	return &queueNotifier{queue: queue, log: logger}
}

func (n *queueNotifier) Dispatch(_ context.Context, envelope contracts.NotificationEnvelope) {
	msg := notifyqueue.QueueMessage{
		ID:       utils.GenerateMessageID(),
		Envelope: envelope,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := n.queue.Enqueue(ctx, msg); err != nil {
			n.log.Error("notifications.Dispatch enqueue failed",
				zap.String(constvars.LoggingQueueMessageIDKey, msg.ID),
				zap.String(constvars.LoggingEventIDKey, envelope.EventID),
				zap.Error(err),
			)
		}
	}()
}

// directNotifier POSTs straight to the webhook from a goroutine. Used when no
// broker host is configured; a failed delivery is logged and lost.
type directNotifier struct {
	sender *Sender
	log    *zap.Logger
}

func NewDirectNotifier(sender *Sender, logger *zap.Logger) contracts.NotifierService {
	return &directNotifier{sender: sender, log: logger}
}

func (n *directNotifier) Dispatch(_ context.Context, envelope contracts.NotificationEnvelope) {
	if n.sender.notifyURL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := n.sender.Send(ctx, envelope); err != nil {
			n.log.Error("notifications.Dispatch direct delivery failed",
				zap.String(constvars.LoggingEventIDKey, envelope.EventID),
				zap.Error(err),
			)
		}
	}()
}
