package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/messaging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FetchUnpublished(ctx context.Context, limit int) ([]*Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Event), args.Error(1)
}

func (m *MockRepository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, msg messaging.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockPublisher) Close() error { return nil }

func TestPoller_ProcessOnce(t *testing.T) {
	ctx := context.Background()
	ok := &Event{ID: uuid.New(), AggregateID: "c1", EventType: EventCheckoutCompleted, Payload: []byte(`{}`)}
	bad := &Event{ID: uuid.New(), AggregateID: "c2", EventType: EventCheckoutCompleted, Payload: []byte(`{}`)}

	repo := new(MockRepository)
	repo.On("FetchUnpublished", ctx, defaultBatch).Return([]*Event{ok, bad}, nil)
	repo.On("MarkPublished", ctx, ok.ID).Return(nil)

	pub := new(MockPublisher)
	pub.On("Publish", ctx, mock.MatchedBy(func(m messaging.Message) bool { return m.Key == "c1" })).Return(nil)
	pub.On("Publish", ctx, mock.MatchedBy(func(m messaging.Message) bool { return m.Key == "c2" })).Return(errors.New("broker down"))

	n := NewPoller(repo, pub).ProcessOnce(ctx)

	assert.Equal(t, 1, n)
	repo.AssertNotCalled(t, "MarkPublished", ctx, bad.ID)
	pub.AssertExpectations(t)
}

func TestPoller_ProcessOnce_FetchError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("FetchUnpublished", ctx, defaultBatch).Return(nil, errors.New("db down"))
	pub := new(MockPublisher)

	assert.Equal(t, 0, NewPoller(repo, pub).ProcessOnce(ctx))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FetchUnpublished", mock.Anything, defaultBatch).Return([]*Event{}, nil)

	p := NewPoller(repo, new(MockPublisher))
	p.tick = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}
