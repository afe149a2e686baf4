package notifications

import (
	"context"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/app/services/shared/notifyqueue"
	"eduvoyage-service/internal/pkg/constvars"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const drainBatchSize = 20

// Worker drains the notification queue on a cron cadence and POSTs each
// envelope to the webhook. A delivery that keeps failing past MaxAttempts is
// parked in the dead-letter queue.
type Worker struct {
	log         *zap.Logger
	queue       *notifyqueue.Service
	sender      *Sender
	cronSpec    string
	maxAttempts int
	cron        *cron.Cron
	runCtx      context.Context
	cancel      context.CancelFunc
}

func NewWorker(log *zap.Logger, webhookConfig config.Webhook, queue *notifyqueue.Service, sender *Sender) *Worker {
	maxAttempts := webhookConfig.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Worker{
		log:         log,
		queue:       queue,
		sender:      sender,
		cronSpec:    webhookConfig.WorkerCronSpec,
		maxAttempts: maxAttempts,
	}
}

// Start begins the periodic drain loop.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cronSpec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("notifications.worker: invalid cron spec; falling back to @every 1m", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@every 1m", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight deliveries and waits for running jobs to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	items, err := w.queue.FetchN(ctx, drainBatchSize)
	if err != nil {
		w.log.Warn("notifications.worker: fetch failed", zap.Error(err))
	}
	for _, item := range items {
		w.deliver(ctx, item)
	}
}

func (w *Worker) deliver(ctx context.Context, item notifyqueue.QueuedItem) {
	msg := item.Message

	err := w.sender.Send(ctx, msg.Envelope)
	if err == nil {
		if ackErr := w.queue.Ack(item.DeliveryTag); ackErr != nil {
			w.log.Warn("notifications.worker: ack failed",
				zap.String(constvars.LoggingQueueMessageIDKey, msg.ID),
				zap.Error(ackErr),
			)
		}
		return
	}

	msg.FailedCount++
	w.log.Warn("notifications.worker: delivery failed",
		zap.String(constvars.LoggingQueueMessageIDKey, msg.ID),
		zap.String(constvars.LoggingEventIDKey, msg.Envelope.EventID),
		zap.Int("failed_count", msg.FailedCount),
		zap.Error(err),
	)

	if msg.FailedCount >= w.maxAttempts {
		if dlqErr := w.queue.EnqueueToDeadQueue(ctx, msg); dlqErr != nil {
			w.log.Error("notifications.worker: dead-letter publish failed",
				zap.String(constvars.LoggingQueueMessageIDKey, msg.ID),
				zap.Error(dlqErr),
			)
			return
		}
	} else {
		if requeueErr := w.queue.Reenqueue(ctx, msg); requeueErr != nil {
			w.log.Error("notifications.worker: requeue failed",
				zap.String(constvars.LoggingQueueMessageIDKey, msg.ID),
				zap.Error(requeueErr),
			)
			return
		}
	}

	// The message now lives on another queue; drop the original delivery.
	if ackErr := w.queue.Ack(item.DeliveryTag); ackErr != nil {
		w.log.Warn("notifications.worker: ack after requeue failed",
			zap.String(constvars.LoggingQueueMessageIDKey, msg.ID),
			zap.Error(ackErr),
		)
	}
}
