package hook

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the hook registry.
var (
	// ErrInvalidEventID is returned when a registration uses an empty event id.
	ErrInvalidEventID = errors.New("invalid event id")

	// ErrNilHandler is returned when a nil handler is registered.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNotFound is returned when removing a registration that does not exist.
	ErrNotFound = errors.New("registration not found")
)

// InvocationError wraps a failure from a single hook with its identity.
type InvocationError struct {
	// Event is the event id being dispatched.
	Event string

	// Hook is the trace name of the failing hook.
	Hook string

	// Priority is the failing hook's priority.
	Priority int

	// Err is the underlying error (the hook's own error, or a
	// *dispatch.PanicError for a recovered panic).
	Err error
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	return fmt.Sprintf("hook %q on event %q: %v", e.Hook, e.Event, e.Err)
}

// Unwrap returns the underlying error.
func (e *InvocationError) Unwrap() error {
	return e.Err
}

// DispatchError aggregates every hook failure from one Run call.
// Dispatch continues past failing hooks, so a single Run can surface
// several of them.
type DispatchError struct {
	// Event is the dispatched event id.
	Event string

	// Errs holds one *InvocationError per failing hook, in invocation order.
	Errs []error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dispatch %q: %d hook(s) failed", e.Event, len(e.Errs))
	for _, err := range e.Errs {
		b.WriteString("\n\t")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the per-hook errors for errors.Is / errors.As.
func (e *DispatchError) Unwrap() []error {
	return e.Errs
}
