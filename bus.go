package typebus

import (
	"log/slog"
	"reflect"
	"sync/atomic"
)

// Bus is a synchronous, in-process event bus. Events are dispatched on the
// concrete type of the published value: a subscription for T receives
// exactly the values published as T. A pointer type and its element type
// are distinct; there is no interface or supertype fan-out.
//
// Thread-safety: a Bus is safe for concurrent use. Multiple goroutines can
// publish events and subscribe/unsubscribe concurrently. Within one
// Publish call, subscribers run in registration order; no ordering holds
// across concurrent Publish calls.
//
// Performance: subscribers run synchronously on the publishing goroutine.
// A slow subscriber delays the publish; a subscriber that never returns
// blocks it. Subscribers needing long processing should hand the event to
// a goroutine of their own.
type Bus struct {
	logger *slog.Logger
	reg    *registry

	// idCounter generates unique subscription IDs.
	idCounter atomic.Uint64
}

// New creates an event bus.
func New(opts ...Option) *Bus {
	b := &Bus{reg: newRegistry()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers event to every live subscription registered for the
// event's concrete type, in registration order, followed by wildcard
// subscriptions. Subscribers run synchronously on the calling goroutine;
// Publish returns once the last one has.
//
// A nil event, or an event type nobody subscribed to, is a no-op.
//
// A panic inside a subscriber propagates to the caller of Publish and
// aborts the remaining deliveries of this call; subscribers already
// invoked keep their effects. Weak subscriptions whose target has been
// collected are skipped and removed from the registry after the pass.
func (b *Bus) Publish(event any) {
	if event == nil {
		return
	}

	etype := reflect.TypeOf(event)
	typed, wildcard := b.reg.snapshot(etype)
	if len(typed) == 0 && len(wildcard) == 0 {
		return
	}

	if dead := b.dispatch(typed, event, etype); len(dead) > 0 {
		b.reg.prune(etype, dead)
	}
	if dead := b.dispatch(wildcard, event, etype); len(dead) > 0 {
		b.reg.prune(nil, dead)
	}
}

// dispatch invokes one snapshot in order and returns the IDs of entries
// whose weakly held target turned out to be gone.
func (b *Bus) dispatch(snapshot []*entry, event any, etype reflect.Type) (dead []uint64) {
	for _, e := range snapshot {
		invoke, alive := e.target.resolve()
		if !alive {
			dead = append(dead, e.id)
			continue
		}
		// A rejected filter skips this publish only; the entry stays
		// registered.
		if e.filter != nil && !e.filter(event) {
			continue
		}
		if b.logger != nil {
			b.logger.Debug("dispatching event",
				slog.String("event_type", etype.String()),
				slog.Uint64("subscription", e.id))
		}
		invoke(event)
	}
	return dead
}

// Unsubscribe releases the subscription identified by tok. It is
// idempotent: a nil, already-released, or unknown token is a no-op.
func (b *Bus) Unsubscribe(tok *Token) {
	tok.Unsubscribe()
}

// SubscriberCount returns the number of registered subscriptions,
// wildcard subscriptions included. Expired weak subscriptions still count
// until a publish prunes them.
func (b *Bus) SubscriberCount() int {
	return b.reg.count()
}

// Close shuts the bus down and drops all subscriptions. Publishing after
// Close is a no-op and registrations return ErrBusClosed.
//
// Closing an already closed bus returns ErrBusClosed.
func (b *Bus) Close() error {
	return b.reg.close()
}

// subscribe stores a validated registration and issues its token. etype
// is nil for wildcard subscriptions.
func (b *Bus) subscribe(etype reflect.Type, target targetRef, filter func(any) bool) (*Token, error) {
	e := &entry{
		id:     b.idCounter.Add(1),
		etype:  etype,
		target: target,
		filter: filter,
	}
	if err := b.reg.add(e); err != nil {
		return nil, err
	}
	return &Token{bus: b, etype: etype, id: e.id}, nil
}
