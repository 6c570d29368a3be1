package typebus

import (
	"reflect"
	"weak"
)

// targetRef holds a subscriber target, either strongly or weakly.
//
// resolve returns the dispatch function for the target. For a weak
// reference, alive reports whether the target is still reachable; a dead
// reference is skipped and pruned by the dispatcher.
//
// matches reports whether the reference identifies the given target. It is
// used for identity-based unsubscription and must never resurrect or pin a
// weakly held target.
type targetRef interface {
	resolve() (invoke func(event any), alive bool)
	matches(target any) bool
}

// funcRef strongly holds a callback. It is always alive.
type funcRef struct {
	invoke func(event any)

	// fnPtr is the callback's code pointer, the identity used for removal
	// by callback. Closures created from the same function literal share a
	// code pointer and therefore share identity.
	fnPtr uintptr
}

func newFuncRef[T any](fn func(T)) *funcRef {
	return &funcRef{
		invoke: func(event any) { fn(event.(T)) },
		fnPtr:  reflect.ValueOf(fn).Pointer(),
	}
}

func (r *funcRef) resolve() (func(event any), bool) {
	return r.invoke, true
}

func (r *funcRef) matches(target any) bool {
	v := reflect.ValueOf(target)
	return v.Kind() == reflect.Func && v.Pointer() == r.fnPtr
}

// handlerRef strongly holds a handler object. It is always alive.
type handlerRef struct {
	invoke  func(event any)
	handler any
}

func newHandlerRef[T any](h Handler[T]) *handlerRef {
	return &handlerRef{
		invoke:  func(event any) { h.Handle(event.(T)) },
		handler: h,
	}
}

func (r *handlerRef) resolve() (func(event any), bool) {
	return r.invoke, true
}

func (r *handlerRef) matches(target any) bool {
	if target == nil || !reflect.TypeOf(target).Comparable() {
		return false
	}
	return target == r.handler
}

// weakFuncRef is the weak callback form: the owner is held through a weak
// pointer and the method strongly. The subscription stays effective for as
// long as the owner is reachable elsewhere and expires silently once it is
// collected. The reference itself never keeps the owner alive.
type weakFuncRef[O any, T any] struct {
	owner weak.Pointer[O]
	fn    func(*O, T)
	fnPtr uintptr
}

func newWeakFuncRef[T any, O any](owner *O, fn func(*O, T)) *weakFuncRef[O, T] {
	return &weakFuncRef[O, T]{
		owner: weak.Make(owner),
		fn:    fn,
		fnPtr: reflect.ValueOf(fn).Pointer(),
	}
}

func (r *weakFuncRef[O, T]) resolve() (func(event any), bool) {
	owner := r.owner.Value()
	if owner == nil {
		return nil, false
	}
	// The returned closure holds owner strongly for the duration of the
	// dispatch pass, so the target cannot be collected mid-invocation.
	return func(event any) { r.fn(owner, event.(T)) }, true
}

func (r *weakFuncRef[O, T]) matches(target any) bool {
	v := reflect.ValueOf(target)
	return v.Kind() == reflect.Func && v.Pointer() == r.fnPtr
}

// weakHandlerRef holds a handler object through a weak pointer. PH is the
// pointer type *H constrained to implement Handler[T].
type weakHandlerRef[T any, H any, PH interface {
	*H
	Handler[T]
}] struct {
	target weak.Pointer[H]
}

func newWeakHandlerRef[T any, H any, PH interface {
	*H
	Handler[T]
}](h PH) *weakHandlerRef[T, H, PH] {
	return &weakHandlerRef[T, H, PH]{target: weak.Make((*H)(h))}
}

func (r *weakHandlerRef[T, H, PH]) resolve() (func(event any), bool) {
	p := r.target.Value()
	if p == nil {
		return nil, false
	}
	return func(event any) { PH(p).Handle(event.(T)) }, true
}

func (r *weakHandlerRef[T, H, PH]) matches(target any) bool {
	p := r.target.Value()
	if p == nil {
		return false
	}
	return target == any(PH(p))
}
