package typebus

import (
	"reflect"
	"slices"
	"sync"
)

// registry owns the mapping from event type to its ordered subscription
// entries. Insertion order determines dispatch order and is preserved
// across removals: removal splices the list, it never swaps or compacts.
//
// All structural mutation is serialized by a single RWMutex. Dispatch works
// on snapshots, so a publish in flight is unaffected by concurrent
// mutation, and a mutation never waits for a running handler.
type registry struct {
	mu sync.RWMutex

	// byType maps an event's concrete type to its subscriptions.
	byType map[reflect.Type][]*entry

	// wildcard holds subscriptions that receive every event.
	wildcard []*entry

	closed bool
}

func newRegistry() *registry {
	return &registry{byType: make(map[reflect.Type][]*entry)}
}

// add appends the entry to the list for its event type. Duplicates are
// never rejected; the same target registered twice is invoked twice.
func (r *registry) add(e *entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrBusClosed
	}
	if e.etype == nil {
		r.wildcard = append(r.wildcard, e)
		return nil
	}
	r.byType[e.etype] = append(r.byType[e.etype], e)
	return nil
}

// removeByID removes the entry with the given ID from the list for etype.
// It reports whether an entry was removed; an absent ID is a no-op.
func (r *registry) removeByID(etype reflect.Type, id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if etype == nil {
		for i, e := range r.wildcard {
			if e.id == id {
				r.wildcard = slices.Delete(r.wildcard, i, i+1)
				return true
			}
		}
		return false
	}

	subs := r.byType[etype]
	for i, e := range subs {
		if e.id == id {
			r.storeLocked(etype, slices.Delete(subs, i, i+1))
			return true
		}
	}
	return false
}

// removeFirstMatch removes the first entry for etype whose target matches
// the given identity. An unknown identity is a no-op.
func (r *registry) removeFirstMatch(etype reflect.Type, target any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.byType[etype]
	for i, e := range subs {
		if e.target.matches(target) {
			r.storeLocked(etype, slices.Delete(subs, i, i+1))
			return true
		}
	}
	return false
}

// snapshot returns stable copies of the entry lists a publish of etype
// must consider. Subscribe and unsubscribe calls made while the snapshot
// is being dispatched (including by a handler) do not affect it.
func (r *registry) snapshot(etype reflect.Type) (typed, wildcard []*entry) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, nil
	}
	if subs := r.byType[etype]; len(subs) > 0 {
		typed = slices.Clone(subs)
	}
	if len(r.wildcard) > 0 {
		wildcard = slices.Clone(r.wildcard)
	}
	return typed, wildcard
}

// prune removes the entries whose weak target was found dead during a
// dispatch pass. Entries already removed since the snapshot are skipped.
// etype nil prunes the wildcard list.
func (r *registry) prune(etype reflect.Type, ids []uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dead := func(e *entry) bool { return slices.Contains(ids, e.id) }
	if etype == nil {
		r.wildcard = slices.DeleteFunc(r.wildcard, dead)
		return
	}
	r.storeLocked(etype, slices.DeleteFunc(r.byType[etype], dead))
}

// storeLocked stores the entry list for etype, dropping the map key once
// the list is empty. Callers must hold the write lock.
func (r *registry) storeLocked(etype reflect.Type, subs []*entry) {
	if len(subs) == 0 {
		delete(r.byType, etype)
		return
	}
	r.byType[etype] = subs
}

// count returns the total number of registered subscriptions.
func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.wildcard)
	for _, subs := range r.byType {
		n += len(subs)
	}
	return n
}

// hasSubscribers reports whether a publish of etype would reach anything,
// counting wildcard subscriptions.
func (r *registry) hasSubscribers(etype reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byType[etype]) > 0 || len(r.wildcard) > 0
}

// close marks the registry closed and drops every subscription.
func (r *registry) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrBusClosed
	}
	r.closed = true
	r.byType = make(map[reflect.Type][]*entry)
	r.wildcard = nil
	return nil
}
