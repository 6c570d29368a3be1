package typebus

import (
	"reflect"
)

// entry is a single registration in the registry: the event type it was
// registered for, the (strong or weak) reference to its target, and an
// optional filter. Entries are immutable once created; removal replaces
// the whole entry, never edits it.
type entry struct {
	// id uniquely identifies the entry for removal, independent of its
	// position in the registry.
	id uint64

	// etype is the concrete event type this entry listens for.
	// A nil etype marks a wildcard subscription.
	etype reflect.Type

	// target resolves to the subscriber on every dispatch.
	target targetRef

	// filter decides per event whether this entry is invoked.
	// A nil filter accepts everything.
	filter func(event any) bool
}
