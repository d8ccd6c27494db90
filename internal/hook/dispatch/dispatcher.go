package dispatch

import (
	"context"
	"time"
)

// Handler is the execution-side view of a hook.
// The args parameter is type-erased; the hook package supplies its
// own argument type. Mirrored here to avoid a circular import.
type Handler interface {
	Handle(ctx context.Context, args any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, args any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, args any) error {
	return f(ctx, args)
}

// Result represents the outcome of a single handler execution.
type Result struct {
	// Success is true if the handler completed without error or panic.
	Success bool

	// Error is the error returned by the handler, if any.
	Error error

	// Panicked is true if the handler panicked.
	Panicked bool

	// PanicValue is the value passed to panic(), if Panicked is true.
	PanicValue any

	// PanicStack is the stack trace at the point of panic.
	PanicStack []byte

	// Duration is how long the handler took to execute.
	Duration time.Duration

	// Skipped is true if the handler was not executed (context cancelled).
	Skipped bool
}

// IsSuccess returns true if the result indicates successful execution.
func (r Result) IsSuccess() bool {
	return r.Success && !r.Panicked && r.Error == nil
}

// Err collapses the result into a single error value.
// Returns nil on success, a *PanicError if the handler panicked, the
// handler's own error otherwise.
func (r Result) Err() error {
	if r.Panicked {
		return &PanicError{Value: r.PanicValue, Stack: r.PanicStack}
	}
	return r.Error
}

// PanicHandler is called when a handler panics during execution.
// It receives the arguments being dispatched, the panic value, and the
// stack trace.
type PanicHandler func(args any, panicValue any, stack []byte)

// defaultPanicHandler is a no-op; panics are still captured in the Result.
func defaultPanicHandler(args any, panicValue any, stack []byte) {
}
