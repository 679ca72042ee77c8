package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weshare/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Donation", uuid.New()),
		Data:            "test data",
	}
}

type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{
		eventTypes: eventTypes,
		handled:    make([]shared.DomainEvent, 0),
	}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panics {
		panic("handler blew up")
	}
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func startedBus(t *testing.T) *InMemoryEventBus {
	t.Helper()
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	return bus
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := startedBus(t)

	handler := newTestHandler("DonationRequested")
	bus.Subscribe(handler, "DonationRequested")

	event := newTestEvent("DonationRequested")
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_PublishToMultipleHandlers(t *testing.T) {
	bus := startedBus(t)

	first := newTestHandler("RequestAccepted")
	second := newTestHandler("RequestAccepted")
	bus.Subscribe(first, "RequestAccepted")
	bus.Subscribe(second, "RequestAccepted")

	err := bus.Publish(context.Background(), newTestEvent("RequestAccepted"))

	require.NoError(t, err)
	assert.Len(t, first.getHandled(), 1)
	assert.Len(t, second.getHandled(), 1)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := startedBus(t)

	failing := newTestHandler("DonationFulfilled")
	failing.err = errors.New("smtp down")
	healthy := newTestHandler("DonationFulfilled")
	bus.Subscribe(failing, "DonationFulfilled")
	bus.Subscribe(healthy, "DonationFulfilled")

	err := bus.Publish(context.Background(), newTestEvent("DonationFulfilled"))

	require.NoError(t, err)
	assert.Len(t, healthy.getHandled(), 1)
}

func TestInMemoryEventBus_HandlerPanicIsRecovered(t *testing.T) {
	bus := startedBus(t)

	panicking := newTestHandler("DonationExpired")
	panicking.panics = true
	healthy := newTestHandler("DonationExpired")
	bus.Subscribe(panicking, "DonationExpired")
	bus.Subscribe(healthy, "DonationExpired")

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("DonationExpired"))
	})
	assert.Len(t, healthy.getHandled(), 1, "delivery continues past the panicking handler")

	err := bus.dispatchToHandler(context.Background(), panicking, newTestEvent("DonationExpired"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler panic")
}

func TestInMemoryEventBus_SubscribeUsesHandlerEventTypes(t *testing.T) {
	bus := startedBus(t)

	handler := newTestHandler("DonationRequested", "RequestAccepted")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("DonationRequested")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("RequestAccepted")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("RequestRated")))

	assert.Len(t, handler.getHandled(), 2)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := startedBus(t)

	handler := newTestHandler("DonationRequested")
	bus.Subscribe(handler, "DonationRequested")
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("DonationRequested")))
	assert.Empty(t, handler.getHandled())
}

func TestInMemoryEventBus_WildcardHandler(t *testing.T) {
	_ = NewInMemoryEventBus(zap.NewNop())

	registry := NewHandlerRegistry()
	wildcard := newTestHandler()
	registry.Register(wildcard)

	handlers := registry.GetHandlers("anything")
	assert.Len(t, handlers, 1)
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	handler := newTestHandler("DonationRequested")
	bus.Subscribe(handler, "DonationRequested")

	t.Run("publish before start is refused", func(t *testing.T) {
		err := bus.Publish(ctx, newTestEvent("DonationRequested"))
		require.ErrorIs(t, err, ErrBusNotRunning)
		assert.Empty(t, handler.getHandled())
	})

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(ctx, newTestEvent("DonationRequested")))
	require.NoError(t, bus.Stop(ctx))

	t.Run("publish after stop is refused", func(t *testing.T) {
		err := bus.Publish(ctx, newTestEvent("DonationRequested"))
		require.ErrorIs(t, err, ErrBusNotRunning)
		assert.Len(t, handler.getHandled(), 1)
	})
}
