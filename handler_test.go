package typebus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// suffixHandler appends its suffix to the event data in place.
type suffixHandler struct {
	suffix string
}

func (h *suffixHandler) Handle(e *testEvent) {
	e.Data += h.suffix
}

// countingHandler records how many events it saw.
type countingHandler struct {
	hits int
}

func (h *countingHandler) Handle(e testEvent) {
	h.hits++
}

func TestHandlerMutatesEventInPlace(t *testing.T) {
	bus := New()
	defer bus.Close()

	_, err := RegisterHandler[*testEvent](bus, &suffixHandler{suffix: "_tested"})
	require.NoError(t, err)

	event := &testEvent{Data: "start"}
	bus.Publish(event)

	assert.Equal(t, "start_tested", event.Data, "mutation must be visible to the publisher")
}

func TestHandlersMutateInRegistrationOrder(t *testing.T) {
	bus := New()
	defer bus.Close()

	_, err := RegisterHandler[*testEvent](bus, &suffixHandler{suffix: "_first"})
	require.NoError(t, err)
	_, err = RegisterHandler[*testEvent](bus, &suffixHandler{suffix: "_second"})
	require.NoError(t, err)

	event := &testEvent{Data: "start"}
	bus.Publish(event)

	assert.Equal(t, "start_first_second", event.Data,
		"the second handler must observe the first handler's mutation")
}

func TestRegisterHandlerNil(t *testing.T) {
	bus := New()
	defer bus.Close()

	_, err := RegisterHandler[testEvent](bus, nil)
	assert.ErrorIs(t, err, ErrNilHandler)
	assert.Zero(t, bus.SubscriberCount())
}

func TestUnregisterHandler(t *testing.T) {
	bus := New()
	defer bus.Close()

	first := &countingHandler{}
	second := &countingHandler{}

	_, err := RegisterHandler[testEvent](bus, first)
	require.NoError(t, err)
	_, err = RegisterHandler[testEvent](bus, second)
	require.NoError(t, err)

	UnregisterHandler[testEvent](bus, first)

	bus.Publish(testEvent{})

	assert.Zero(t, first.hits, "unregistered handler must not be invoked")
	assert.Equal(t, 1, second.hits)

	// Removing an unknown handler is a no-op.
	UnregisterHandler[testEvent](bus, first)
	UnregisterHandler[testEvent](bus, &countingHandler{})
}

func TestUnregisterHandlerRemovesFirstMatchOnly(t *testing.T) {
	bus := New()
	defer bus.Close()

	h := &countingHandler{}
	_, err := RegisterHandler[testEvent](bus, h)
	require.NoError(t, err)
	_, err = RegisterHandler[testEvent](bus, h)
	require.NoError(t, err)

	UnregisterHandler[testEvent](bus, h)

	bus.Publish(testEvent{})
	assert.Equal(t, 1, h.hits, "one of the two registrations must survive")
}

func TestHandlerTokenRelease(t *testing.T) {
	bus := New()
	defer bus.Close()

	h := &countingHandler{}
	tok, err := RegisterHandler[testEvent](bus, h)
	require.NoError(t, err)

	bus.Publish(testEvent{})
	require.Equal(t, 1, h.hits)

	require.NoError(t, tok.Close())

	bus.Publish(testEvent{})
	assert.Equal(t, 1, h.hits, "released handler must not be invoked")
}

func TestHandlerAndCallbackShareEventType(t *testing.T) {
	bus := New()
	defer bus.Close()

	var order []string
	h := &suffixHandler{suffix: "_handled"}

	_, err := RegisterHandler[*testEvent](bus, h)
	require.NoError(t, err)
	_, err = Subscribe(bus, func(e *testEvent) {
		order = append(order, e.Data)
	})
	require.NoError(t, err)

	bus.Publish(&testEvent{Data: "start"})

	// The callback registered after the handler sees the mutated event.
	require.Len(t, order, 1)
	assert.Equal(t, "start_handled", order[0])
}
