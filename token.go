package typebus

import (
	"reflect"
	"sync/atomic"
)

// Token identifies exactly one subscription. Every registration call
// returns one; releasing it removes that registration and no other, even
// when the same callback or handler is registered multiple times.
//
// A Token is safe for concurrent use and releasing it more than once is a
// no-op, so it can be tied to a defer for scope-based disposal:
//
//	tok, err := typebus.Subscribe(bus, onConfigChanged)
//	if err != nil {
//		return err
//	}
//	defer tok.Close()
type Token struct {
	bus      *Bus
	etype    reflect.Type
	id       uint64
	released atomic.Bool
}

// Unsubscribe removes the subscription from the bus. Subsequent calls do
// nothing; a nil token is a no-op.
func (t *Token) Unsubscribe() {
	if t == nil || !t.released.CompareAndSwap(false, true) {
		return
	}
	// The entry may already be gone if the subscription was weak and got
	// pruned; removal is a no-op then.
	t.bus.reg.removeByID(t.etype, t.id)
}

// Close releases the subscription like Unsubscribe. It implements
// io.Closer so a subscription can be managed like any other scoped
// resource; it never fails.
func (t *Token) Close() error {
	t.Unsubscribe()
	return nil
}
