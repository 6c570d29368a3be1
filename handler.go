package typebus

// Handler is the handler-object form of a subscriber: a long-lived object
// with a single Handle capability. Registering the object directly (rather
// than one of its methods) makes it removable later by passing the same
// object to UnregisterHandler.
//
// Handlers registered for a pointer event type may mutate the event in
// place. Subscribers run in registration order, so a later handler
// observes the mutations of earlier ones, and the publisher observes all
// of them once Publish returns.
type Handler[T any] interface {
	Handle(event T)
}

// RegisterHandler registers h for events published as type T. The bus
// keeps h alive until the registration is released through the token or
// UnregisterHandler.
func RegisterHandler[T any](b *Bus, h Handler[T]) (*Token, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	return b.subscribe(typeOf[T](), newHandlerRef(h), nil)
}

// RegisterHandlerWeak registers h without keeping it alive: the bus holds
// a weak pointer, and the registration expires once h becomes unreachable
// everywhere else. The handler must be a pointer so that its lifetime is
// governed by whoever owns it.
func RegisterHandlerWeak[T any, H any, PH interface {
	*H
	Handler[T]
}](b *Bus, h PH) (*Token, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	return b.subscribe(typeOf[T](), newWeakHandlerRef[T, H, PH](h), nil)
}

// UnregisterHandler removes the first registration of h for event type T.
// Identity is object identity of the handler. Removing an unknown handler
// is a no-op.
func UnregisterHandler[T any](b *Bus, h Handler[T]) {
	if h == nil {
		return
	}
	b.reg.removeFirstMatch(typeOf[T](), h)
}
