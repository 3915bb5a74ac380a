package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New()),
	}
}

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("routes events by type", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		orders := &recordingHandler{types: []string{"OrderSubmitted"}}
		users := &recordingHandler{types: []string{"UserRegistered"}}
		bus.Subscribe(orders)
		bus.Subscribe(users)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderSubmitted")))

		assert.Len(t, orders.received, 1)
		assert.Empty(t, users.received)
	})

	t.Run("wildcard handler receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		all := &recordingHandler{}
		bus.Subscribe(all)

		require.NoError(t, bus.Publish(ctx, newTestEvent("A"), newTestEvent("B")))
		assert.Len(t, all.received, 2)
	})

	t.Run("failing handler does not block the rest", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"A"}, err: errors.New("nope")}
		healthy := &recordingHandler{types: []string{"A"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("A")))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("panicking handler is recovered", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{types: []string{"A"}, panics: true}
		healthy := &recordingHandler{types: []string{"A"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("A")))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"A"}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("A")))
		assert.Empty(t, handler.received)
	})
}
