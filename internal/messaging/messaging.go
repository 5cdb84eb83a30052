package messaging

import (
	"context"

	"storefront-be/internal/logger"
	"storefront-be/internal/resilience"

	"go.uber.org/zap"
)

type Message struct {
	Topic   string
	Key     string
	Value   []byte
	Headers map[string]string
}

// Publisher hands messages to a broker.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// LogPublisher only logs. It is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, msg Message) error {
	logger.FromCtx(ctx).Info("event not sent, no broker configured",
		zap.String("topic", msg.Topic),
		zap.String("key", msg.Key),
	)
	return nil
}

func (LogPublisher) Close() error { return nil }

type breakerPublisher struct {
	next    Publisher
	breaker *resilience.Breaker
}

// WithBreaker guards next with a circuit breaker so a broker outage fails
// fast instead of stalling every publish.
func WithBreaker(next Publisher, b *resilience.Breaker) Publisher {
	return &breakerPublisher{next: next, breaker: b}
}

func (p *breakerPublisher) Publish(ctx context.Context, msg Message) error {
	return p.breaker.Do(func() error {
		return p.next.Publish(ctx, msg)
	})
}

func (p *breakerPublisher) Close() error {
	return p.next.Close()
}
