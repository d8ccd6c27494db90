package hook

import (
	"fmt"
	"sort"
	"sync"
)

// Record is an immutable registration: a handler paired with its
// priority and the sequence number stamped when it was added.
type Record struct {
	name     string
	priority int
	seq      int64
	handler  Handler
}

// Name returns the hook's trace name.
func (r *Record) Name() string {
	return r.name
}

// Priority returns the hook's priority.
func (r *Record) Priority() int {
	return r.priority
}

// Sequence returns the registration sequence number.
func (r *Record) Sequence() int64 {
	return r.seq
}

// Handler returns the registered handler.
func (r *Record) Handler() Handler {
	return r.handler
}

// Registry maps event identifiers to priority-ordered hook records.
// It is thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	hooks   map[string][]*Record
	nextSeq int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make(map[string][]*Record),
	}
}

// Add registers a handler for an event id and returns the sequence
// number stamped on the registration, usable with Remove.
//
// The per-event list is kept sorted by descending priority; hooks with
// equal priority keep registration order. The registry is not mutated
// when an error is returned.
func (r *Registry) Add(eventID string, h Handler, opts ...Option) (int64, error) {
	if eventID == "" {
		return 0, ErrInvalidEventID
	}
	if h == nil {
		return 0, ErrNilHandler
	}

	config := RecordConfig{Priority: DefaultPriority}
	for _, opt := range opts {
		opt(&config)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seq := r.nextSeq
	r.nextSeq++

	name := config.Name
	if name == "" {
		name = fmt.Sprintf("hook#%d", seq)
	}

	rec := &Record{
		name:     name,
		priority: config.Priority,
		seq:      seq,
		handler:  h,
	}

	recs := append(r.hooks[eventID], rec)

	// Higher priority first; registration order within a priority.
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].priority != recs[j].priority {
			return recs[i].priority > recs[j].priority
		}
		return recs[i].seq < recs[j].seq
	})

	r.hooks[eventID] = recs

	return seq, nil
}

// Remove drops the registration with the given sequence number from an
// event. Returns ErrNotFound if no such registration exists.
func (r *Registry) Remove(eventID string, seq int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recs := r.hooks[eventID]
	for i, rec := range recs {
		if rec.seq == seq {
			r.hooks[eventID] = append(recs[:i], recs[i+1:]...)
			if len(r.hooks[eventID]) == 0 {
				delete(r.hooks, eventID)
			}
			return nil
		}
	}
	return ErrNotFound
}

// Hooks returns the ordered records for an event id.
// Returns a copy to prevent modification during iteration; nil when the
// event has no hooks.
func (r *Registry) Hooks(eventID string) []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.hooks[eventID]
	if len(recs) == 0 {
		return nil
	}

	result := make([]*Record, len(recs))
	copy(result, recs)
	return result
}

// Events returns all event ids with at least one hook, sorted.
func (r *Registry) Events() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.hooks) == 0 {
		return nil
	}

	events := make([]string, 0, len(r.hooks))
	for id := range r.hooks {
		events = append(events, id)
	}
	sort.Strings(events)
	return events
}

// Count returns the total number of registrations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, recs := range r.hooks {
		count += len(recs)
	}
	return count
}

// CountByEvent returns the number of hooks for a specific event id.
func (r *Registry) CountByEvent(eventID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.hooks[eventID])
}

// Reset removes all registrations and rewinds the sequence counter, so
// a fresh registration history is reproducible. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hooks = make(map[string][]*Record)
	r.nextSeq = 0
}
