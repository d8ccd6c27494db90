// Package dispatch provides hook execution for the registry.
//
// The Executor runs a single handler with panic recovery and timing,
// returning a Result that records success, error, panic, or skip. The
// SyncDispatcher wraps an Executor with execution statistics and runs
// handlers in the caller's goroutine.
//
// Dispatch is strictly synchronous. Hooks are independent observers, so
// a handler failure is captured in its Result rather than raised;
// callers drive the per-hook loop and decide what to surface.
package dispatch
