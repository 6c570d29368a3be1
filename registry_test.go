package typebus

import (
	"testing"
)

func newTestEntry(id uint64) *entry {
	return &entry{
		id:     id,
		etype:  typeOf[testEvent](),
		target: newFuncRef(func(e testEvent) {}),
	}
}

// TestRegistryOrderAfterRemoval tests that splice removal keeps the
// remaining entries in insertion order.
func TestRegistryOrderAfterRemoval(t *testing.T) {
	reg := newRegistry()
	for id := uint64(1); id <= 4; id++ {
		if err := reg.add(newTestEntry(id)); err != nil {
			t.Fatalf("add returned error: %v", err)
		}
	}

	if !reg.removeByID(typeOf[testEvent](), 2) {
		t.Fatal("Expected removal of entry 2 to succeed")
	}

	typed, _ := reg.snapshot(typeOf[testEvent]())
	want := []uint64{1, 3, 4}
	if len(typed) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(typed))
	}
	for i, e := range typed {
		if e.id != want[i] {
			t.Errorf("Position %d: expected id %d, got %d", i, want[i], e.id)
		}
	}
}

// TestRegistryRemoveUnknownID tests that removing an absent ID reports
// false and changes nothing.
func TestRegistryRemoveUnknownID(t *testing.T) {
	reg := newRegistry()
	if err := reg.add(newTestEntry(1)); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	if reg.removeByID(typeOf[testEvent](), 99) {
		t.Error("Expected removal of unknown ID to report false")
	}
	if reg.count() != 1 {
		t.Errorf("Expected 1 entry, got %d", reg.count())
	}
}

// TestRegistryDropsEmptyTypeList tests that the last removal for a type
// drops the map key entirely.
func TestRegistryDropsEmptyTypeList(t *testing.T) {
	reg := newRegistry()
	if err := reg.add(newTestEntry(1)); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	reg.removeByID(typeOf[testEvent](), 1)

	if reg.hasSubscribers(typeOf[testEvent]()) {
		t.Error("Expected no subscribers after last removal")
	}
	if len(reg.byType) != 0 {
		t.Errorf("Expected empty type map, got %d keys", len(reg.byType))
	}
}

// TestRegistryPruneSkipsRemoved tests that pruning IDs already removed by
// a concurrent unsubscribe is harmless.
func TestRegistryPruneSkipsRemoved(t *testing.T) {
	reg := newRegistry()
	for id := uint64(1); id <= 3; id++ {
		if err := reg.add(newTestEntry(id)); err != nil {
			t.Fatalf("add returned error: %v", err)
		}
	}

	// Entry 2 disappears between snapshot and prune.
	reg.removeByID(typeOf[testEvent](), 2)
	reg.prune(typeOf[testEvent](), []uint64{2, 3})

	typed, _ := reg.snapshot(typeOf[testEvent]())
	if len(typed) != 1 || typed[0].id != 1 {
		t.Errorf("Expected only entry 1 to remain, got %v entries", len(typed))
	}
}

// TestRegistrySnapshotIsolation tests that a snapshot is unaffected by
// later mutation.
func TestRegistrySnapshotIsolation(t *testing.T) {
	reg := newRegistry()
	for id := uint64(1); id <= 2; id++ {
		if err := reg.add(newTestEntry(id)); err != nil {
			t.Fatalf("add returned error: %v", err)
		}
	}

	typed, _ := reg.snapshot(typeOf[testEvent]())
	reg.removeByID(typeOf[testEvent](), 1)
	if err := reg.add(newTestEntry(3)); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	if len(typed) != 2 || typed[0].id != 1 || typed[1].id != 2 {
		t.Error("Snapshot changed under mutation")
	}
}
