package dispatch

import (
	"errors"
	"fmt"
)

// ErrHookPanic is the sentinel matched by errors.Is for panicking hooks.
var ErrHookPanic = errors.New("hook panicked")

// PanicError wraps a recovered panic value as an error.
type PanicError struct {
	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("hook panicked: %v", e.Value)
}

// Is allows errors.Is to match PanicError with ErrHookPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHookPanic
}
