package outbox

import (
	"context"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/messaging"
	"storefront-be/internal/metrics"

	"go.uber.org/zap"
)

const (
	defaultTick  = time.Second
	defaultBatch = 100
)

type Poller struct {
	repo      Repository
	publisher messaging.Publisher
	tick      time.Duration
	batch     int
}

func NewPoller(repo Repository, publisher messaging.Publisher) *Poller {
	return &Poller{
		repo:      repo,
		publisher: publisher,
		tick:      defaultTick,
		batch:     defaultBatch,
	}
}

// Run publishes pending events on every tick until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.ProcessOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// ProcessOnce publishes one batch and returns how many events were marked.
// Events that fail to publish stay pending and are retried on the next run.
func (p *Poller) ProcessOnce(ctx context.Context) int {
	log := logger.FromCtx(ctx).With(zap.String("layer", "outbox"))

	events, err := p.repo.FetchUnpublished(ctx, p.batch)
	if err != nil {
		log.Error("failed to fetch events", zap.Error(err))
		return 0
	}

	published := 0
	for _, e := range events {
		err := p.publisher.Publish(ctx, messaging.Message{
			Topic:   e.EventType,
			Key:     e.AggregateID,
			Value:   e.Payload,
			Headers: map[string]string{"event_type": e.EventType, "event_id": e.ID.String()},
		})
		if err != nil {
			metrics.OutboxPublishedTotal.WithLabelValues(e.EventType, "error").Inc()
			log.Warn("failed to publish event", zap.String("event_id", e.ID.String()), zap.Error(err))
			continue
		}

		if err := p.repo.MarkPublished(ctx, e.ID); err != nil {
			log.Error("failed to mark event published", zap.String("event_id", e.ID.String()), zap.Error(err))
			continue
		}
		metrics.OutboxPublishedTotal.WithLabelValues(e.EventType, "ok").Inc()
		published++
	}
	return published
}
