// Package hook provides the event-dispatch registry for Hookstorm.
//
// Callers register handlers ("hooks") against string event identifiers,
// optionally with a priority, and later trigger every hook bound to an
// identifier with forwarded arguments.
//
// # Ordering
//
// Hooks for an event run in descending priority order; hooks sharing a
// priority run in registration order. Every registration is stamped with
// a monotonic sequence number, so the ordering is a total order and is
// reproducible for a fixed registration history.
//
// # Basic Usage
//
//	mgr := hook.NewManager()
//
//	_, err := mgr.Add("file.saved", hook.HandlerFunc(func(ctx context.Context, args hook.Args) error {
//	    fmt.Println("saved:", args.Positional[0])
//	    return nil
//	}), hook.WithPriority(20), hook.WithName("log-save"))
//
//	err = mgr.Run(ctx, "file.saved", hook.NewArgs("main.go"))
//
// Dispatching an event with no registered hooks is a no-op, not an
// error: publishers do not know whether subscribers exist.
//
// # Failure Isolation
//
// Hooks are independent observers. A hook that returns an error or
// panics never prevents the hooks after it from running; Run collects
// every failure and returns them as a single *DispatchError that
// unwraps to the per-hook errors. Panics are recovered and reported as
// *dispatch.PanicError values.
//
// # Thread Safety
//
// The Registry and Manager are safe for concurrent use. Hooks execute
// outside the registry lock, so a hook may re-enter the registry
// (register further hooks, or dispatch another event) without
// deadlocking.
package hook
