package hook

import (
	"context"
	"errors"
	"testing"
)

func newTestHandler() Handler {
	return HandlerFunc(func(ctx context.Context, args Args) error {
		return nil
	})
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	if r == nil {
		t.Fatal("expected non-nil registry")
	}
	if r.Count() != 0 {
		t.Errorf("expected count 0, got %d", r.Count())
	}
}

func TestRegistry_Add(t *testing.T) {
	r := NewRegistry()

	seq1, err := r.Add("file.saved", newTestHandler())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	seq2, err := r.Add("file.opened", newTestHandler())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if seq1 == seq2 {
		t.Errorf("expected distinct sequence numbers, both %d", seq1)
	}
	if r.Count() != 2 {
		t.Errorf("expected count 2, got %d", r.Count())
	}
	if r.CountByEvent("file.saved") != 1 {
		t.Errorf("expected 1 hook for file.saved, got %d", r.CountByEvent("file.saved"))
	}
}

func TestRegistry_Add_InvalidEventID(t *testing.T) {
	r := NewRegistry()

	_, err := r.Add("", newTestHandler())
	if !errors.Is(err, ErrInvalidEventID) {
		t.Fatalf("expected ErrInvalidEventID, got %v", err)
	}
	if r.Count() != 0 {
		t.Errorf("registry mutated by failed registration: count %d", r.Count())
	}
}

func TestRegistry_Add_NilHandler(t *testing.T) {
	r := NewRegistry()

	_, err := r.Add("file.saved", nil)
	if !errors.Is(err, ErrNilHandler) {
		t.Fatalf("expected ErrNilHandler, got %v", err)
	}
	if r.Count() != 0 {
		t.Errorf("registry mutated by failed registration: count %d", r.Count())
	}
}

func TestRegistry_Add_PriorityOrder(t *testing.T) {
	r := NewRegistry()

	// Registration order intentionally differs from priority order.
	if _, err := r.Add("my_event", newTestHandler(), WithName("some_event")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Add("my_event", newTestHandler(), WithPriority(20), WithName("some_other_event")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := r.Add("my_event", newTestHandler(), WithPriority(5), WithName("another_event")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	recs := r.Hooks("my_event")
	if len(recs) != 3 {
		t.Fatalf("expected 3 hooks, got %d", len(recs))
	}

	want := []string{"some_other_event", "another_event", "some_event"}
	for i, name := range want {
		if recs[i].Name() != name {
			t.Errorf("position %d: expected %s, got %s", i, name, recs[i].Name())
		}
	}
}

func TestRegistry_Add_EqualPriorityKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry()

	names := []string{"first", "second", "third", "fourth"}
	for _, name := range names {
		if _, err := r.Add("tied", newTestHandler(), WithPriority(7), WithName(name)); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}

	recs := r.Hooks("tied")
	if len(recs) != len(names) {
		t.Fatalf("expected %d hooks, got %d", len(names), len(recs))
	}
	for i, name := range names {
		if recs[i].Name() != name {
			t.Errorf("position %d: expected %s, got %s", i, name, recs[i].Name())
		}
	}
}

func TestRegistry_Add_DefaultName(t *testing.T) {
	r := NewRegistry()

	seq, err := r.Add("ev", newTestHandler())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	recs := r.Hooks("ev")
	want := "hook#0"
	if recs[0].Name() != want {
		t.Errorf("expected name %s, got %s", want, recs[0].Name())
	}
	if seq != 0 {
		t.Errorf("expected first sequence 0, got %d", seq)
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()

	seq1, _ := r.Add("ev", newTestHandler(), WithName("keep"))
	seq2, _ := r.Add("ev", newTestHandler(), WithName("drop"))

	if err := r.Remove("ev", seq2); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	recs := r.Hooks("ev")
	if len(recs) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(recs))
	}
	if recs[0].Sequence() != seq1 {
		t.Errorf("wrong hook removed: remaining seq %d", recs[0].Sequence())
	}

	if err := r.Remove("ev", seq2); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for repeated removal, got %v", err)
	}
	if err := r.Remove("nonexistent", seq1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown event, got %v", err)
	}
}

func TestRegistry_Remove_LastHookDropsEvent(t *testing.T) {
	r := NewRegistry()

	seq, _ := r.Add("ev", newTestHandler())
	if err := r.Remove("ev", seq); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if events := r.Events(); len(events) != 0 {
		t.Errorf("expected no events, got %v", events)
	}
}

func TestRegistry_Events(t *testing.T) {
	r := NewRegistry()

	if events := r.Events(); events != nil {
		t.Errorf("expected nil for empty registry, got %v", events)
	}

	r.Add("zulu", newTestHandler())
	r.Add("alpha", newTestHandler())
	r.Add("alpha", newTestHandler())

	events := r.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0] != "alpha" || events[1] != "zulu" {
		t.Errorf("expected sorted events [alpha zulu], got %v", events)
	}
}

func TestRegistry_Hooks_ReturnsCopy(t *testing.T) {
	r := NewRegistry()

	r.Add("ev", newTestHandler(), WithName("a"))
	r.Add("ev", newTestHandler(), WithName("b"))

	recs := r.Hooks("ev")
	recs[0] = nil

	again := r.Hooks("ev")
	if again[0] == nil {
		t.Error("mutating the returned slice affected the registry")
	}
}

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry()

	r.Add("ev", newTestHandler())
	r.Add("other", newTestHandler())
	r.Reset()

	if r.Count() != 0 {
		t.Errorf("expected empty registry after reset, got %d", r.Count())
	}

	// Sequence counter rewinds so re-registration is reproducible.
	seq, err := r.Add("ev", newTestHandler())
	if err != nil {
		t.Fatalf("Add after reset: %v", err)
	}
	if seq != 0 {
		t.Errorf("expected sequence 0 after reset, got %d", seq)
	}
}

func TestRegistry_ConcurrentAdd(t *testing.T) {
	r := NewRegistry()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				if _, err := r.Add("ev", newTestHandler()); err != nil {
					t.Errorf("Add: %v", err)
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if r.Count() != 400 {
		t.Errorf("expected 400 registrations, got %d", r.Count())
	}

	// Sequence numbers must be unique.
	seen := make(map[int64]bool)
	for _, rec := range r.Hooks("ev") {
		if seen[rec.Sequence()] {
			t.Fatalf("duplicate sequence %d", rec.Sequence())
		}
		seen[rec.Sequence()] = true
	}
}
