// Package typebus is a synchronous, in-process event bus that dispatches
// on the concrete type of the published value.
//
// The bus decouples event producers from event consumers: multiple
// subscribers can listen for the same event type, and subscribers don't
// know about publishers. Dispatch is strictly synchronous; subscribers run
// on the publishing goroutine, in registration order.
//
// Subscriptions come in two shapes. Anonymous callbacks handle an event
// and are done:
//
//	tok, err := typebus.Subscribe(bus, func(e DownloadFinished) {
//		log.Printf("finished: %s", e.Path)
//	})
//
// Handler objects are long-lived values with a Handle method, typically
// registered for a pointer event type so they can mutate the event in
// place before later handlers and the publisher see it:
//
//	type Enricher struct{ region string }
//
//	func (en *Enricher) Handle(e *Request) { e.Region = en.region }
//
//	tok, err := typebus.RegisterHandler[*Request](bus, &Enricher{region: "eu"})
//
// Every registration returns a [Token]; releasing it removes exactly that
// subscription and is idempotent, so it fits a defer. Callbacks and
// handlers can also be removed by identity with [UnsubscribeFunc] and
// [UnregisterHandler].
//
// The weak registration forms ([SubscribeWeak], [RegisterHandlerWeak])
// hold the subscriber through a weak pointer: the bus never extends the
// subscriber's lifetime, and once the subscriber becomes unreachable the
// registration expires on its own and is pruned during a later publish.
package typebus
