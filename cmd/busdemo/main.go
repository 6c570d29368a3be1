// Package main is a small walkthrough of the typebus API: typed
// subscriptions, filtering, in-place handler mutation, weak subscriptions,
// and token-based release.
//
// Build:
//
//	go build -o build/busdemo ./cmd/busdemo
//
// Run:
//
//	TYPEBUS_LOG_LEVEL=DEBUG ./build/busdemo
package main

import (
	"fmt"
	"log"
	"runtime"

	"github.com/tejashwikalptaru/typebus"
	"github.com/tejashwikalptaru/typebus/internal/logger"
)

// OrderPlaced is a plain value event.
type OrderPlaced struct {
	ID     string
	Amount float64
}

// Request is published as a pointer so handlers can enrich it in place.
type Request struct {
	Path   string
	Region string
}

// RegionTagger is a handler object that mutates requests before anyone
// downstream sees them.
type RegionTagger struct {
	Region string
}

// Handle tags the request with the configured region.
func (rt *RegionTagger) Handle(req *Request) {
	req.Region = rt.Region
}

// auditLog is a subscriber whose lifetime is owned by main, not the bus.
type auditLog struct {
	seen int
}

func main() {
	slogger := logger.NewLogger(logger.DefaultConfig())
	bus := typebus.New(typebus.WithLogger(slogger))
	defer func() {
		if err := bus.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	// Plain subscription, released via defer.
	tok, err := typebus.Subscribe(bus, func(e OrderPlaced) {
		fmt.Printf("order placed: %s (%.2f)\n", e.ID, e.Amount)
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	defer tok.Close()

	// Filtered subscription: only large orders.
	large, err := typebus.SubscribeFiltered(bus,
		func(e OrderPlaced) { fmt.Printf("large order: %s\n", e.ID) },
		func(e OrderPlaced) bool { return e.Amount >= 100 },
	)
	if err != nil {
		log.Fatalf("subscribe filtered: %v", err)
	}
	defer large.Close()

	// Handler object mutating the event in place.
	htok, err := typebus.RegisterHandler[*Request](bus, &RegionTagger{Region: "eu-west"})
	if err != nil {
		log.Fatalf("register handler: %v", err)
	}
	defer htok.Close()

	// Weak subscription: the bus does not keep audit alive. Once audit is
	// unreachable and the GC has run, the registration expires on its own.
	audit := &auditLog{}
	if _, err := typebus.SubscribeWeak(bus, audit, func(a *auditLog, e OrderPlaced) {
		a.seen++
	}); err != nil {
		log.Fatalf("subscribe weak: %v", err)
	}

	bus.Publish(OrderPlaced{ID: "ord-1", Amount: 42})
	bus.Publish(OrderPlaced{ID: "ord-2", Amount: 250})

	req := &Request{Path: "/checkout"}
	bus.Publish(req)
	fmt.Printf("request region after publish: %s\n", req.Region)

	fmt.Printf("audit saw %d orders, %d subscriptions registered\n",
		audit.seen, bus.SubscriberCount())

	// Drop the only strong reference to audit; the next publish prunes the
	// expired weak subscription.
	audit = nil
	runtime.GC()
	bus.Publish(OrderPlaced{ID: "ord-3", Amount: 7})
	fmt.Printf("%d subscriptions after weak expiry\n", bus.SubscriberCount())
}
