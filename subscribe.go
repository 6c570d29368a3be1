package typebus

import "reflect"

// The registration API is a family of package-level generic functions
// because Go methods cannot carry type parameters. All of them are safe
// for concurrent use.

// Subscribe registers fn for events published as type T. The bus holds fn
// strongly; the subscription lasts until released through the token,
// UnsubscribeFunc, or Close. The same callback may be subscribed any
// number of times, and each registration is invoked independently.
func Subscribe[T any](b *Bus, fn func(T)) (*Token, error) {
	if fn == nil {
		return nil, ErrNilCallback
	}
	return b.subscribe(typeOf[T](), newFuncRef(fn), nil)
}

// SubscribeFiltered registers fn for the events of type T that satisfy
// filter. An event rejected by the filter is skipped for that publish
// only; the subscription stays registered for future publishes.
func SubscribeFiltered[T any](b *Bus, fn func(T), filter func(T) bool) (*Token, error) {
	if fn == nil {
		return nil, ErrNilCallback
	}
	if filter == nil {
		return nil, ErrNilFilter
	}
	return b.subscribe(typeOf[T](), newFuncRef(fn), wrapFilter(filter))
}

// SubscribeWeak registers fn without keeping owner alive. The bus holds
// owner through a weak pointer and fn strongly; on every delivery fn
// receives the owner alongside the event. Once owner becomes unreachable
// everywhere else, the subscription expires and a later publish prunes it,
// with no explicit unsubscribe needed.
//
// fn must not capture owner: a captured owner would be reachable through
// the bus itself and the subscription would never expire. Use the *O
// parameter instead.
func SubscribeWeak[T any, O any](b *Bus, owner *O, fn func(*O, T)) (*Token, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	if fn == nil {
		return nil, ErrNilCallback
	}
	return b.subscribe(typeOf[T](), newWeakFuncRef(owner, fn), nil)
}

// SubscribeFilteredWeak combines SubscribeWeak with a filter.
func SubscribeFilteredWeak[T any, O any](b *Bus, owner *O, fn func(*O, T), filter func(T) bool) (*Token, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	if fn == nil {
		return nil, ErrNilCallback
	}
	if filter == nil {
		return nil, ErrNilFilter
	}
	return b.subscribe(typeOf[T](), newWeakFuncRef(owner, fn), wrapFilter(filter))
}

// SubscribeAll registers fn for every event published on the bus,
// regardless of type. Wildcard subscribers run after the type-specific
// subscribers of each publish. This is useful for logging, debugging, or
// analytics.
func SubscribeAll(b *Bus, fn func(any)) (*Token, error) {
	if fn == nil {
		return nil, ErrNilCallback
	}
	return b.subscribe(nil, newFuncRef(fn), nil)
}

// UnsubscribeFunc removes the first subscription for T whose callback is
// fn. Identity is the callback's code pointer: a named function or method
// value matches itself, and closures created from the same function
// literal share identity. Removing an unknown callback is a no-op.
func UnsubscribeFunc[T any](b *Bus, fn func(T)) {
	if fn == nil {
		return
	}
	b.reg.removeFirstMatch(typeOf[T](), fn)
}

// HasSubscribers reports whether a publish of type T would reach any
// subscription. It can be used to skip constructing an expensive event no
// one is listening for.
func HasSubscribers[T any](b *Bus) bool {
	return b.reg.hasSubscribers(typeOf[T]())
}

// typeOf returns the registry key for T.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// wrapFilter adapts a typed predicate to the registry's untyped form.
func wrapFilter[T any](filter func(T) bool) func(any) bool {
	return func(event any) bool { return filter(event.(T)) }
}
