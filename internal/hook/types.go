package hook

import "context"

// DefaultPriority is the priority assigned when a registration does not
// specify one. Higher priorities run earlier.
const DefaultPriority = 0

// Args carries the arguments forwarded to every hook of a dispatch.
// Both parts are passed through verbatim: no reordering, no defaulting.
type Args struct {
	// Positional arguments, in caller order.
	Positional []any

	// Keyword arguments, keyed by name. May be nil.
	Keyword map[string]any
}

// NewArgs builds an Args from positional values.
func NewArgs(positional ...any) Args {
	return Args{Positional: positional}
}

// WithKeyword returns a copy of the Args with one keyword argument set.
func (a Args) WithKeyword(key string, value any) Args {
	kw := make(map[string]any, len(a.Keyword)+1)
	for k, v := range a.Keyword {
		kw[k] = v
	}
	kw[key] = value
	a.Keyword = kw
	return a
}

// Handler is the interface implemented by hooks.
type Handler interface {
	// Handle processes one dispatch of the event the hook is bound to.
	Handle(ctx context.Context, args Args) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, args Args) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, args Args) error {
	return f(ctx, args)
}

// RecordConfig contains configuration for a registration.
type RecordConfig struct {
	// Priority determines execution order (higher values execute first).
	Priority int

	// Name identifies the hook in traces and errors.
	// Empty means a name is derived from the sequence number.
	Name string
}

// Option configures a registration.
type Option func(*RecordConfig)

// WithPriority sets the hook priority.
func WithPriority(p int) Option {
	return func(c *RecordConfig) {
		c.Priority = p
	}
}

// WithName sets the hook's trace name.
func WithName(name string) Option {
	return func(c *RecordConfig) {
		c.Name = name
	}
}
