package hook

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/hookstorm/internal/hook/dispatch"
)

// Manager is the facade over the registry and dispatcher: registration,
// dispatch with failure isolation, and the verbose trace toggle.
type Manager struct {
	registry   *Registry
	dispatcher *dispatch.SyncDispatcher

	mu     sync.RWMutex
	logger zerolog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the trace sink. The manager controls the level:
// Info when quiet, Debug when verbose.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger.Level(zerolog.InfoLevel)
	}
}

// WithVerbose enables per-hook trace output from construction.
func WithVerbose() ManagerOption {
	return func(m *Manager) {
		m.logger = m.logger.Level(zerolog.DebugLevel)
	}
}

// NewManager creates a Manager with an empty registry.
// Without WithLogger, traces are discarded.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		registry:   NewRegistry(),
		dispatcher: dispatch.NewSyncDispatcher(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetVerbose switches per-hook invocation tracing on or off.
func (m *Manager) SetVerbose(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if enabled {
		m.logger = m.logger.Level(zerolog.DebugLevel)
	} else {
		m.logger = m.logger.Level(zerolog.InfoLevel)
	}
}

func (m *Manager) log() zerolog.Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.logger
}

// Add registers a handler for an event id. See Registry.Add.
func (m *Manager) Add(eventID string, h Handler, opts ...Option) (int64, error) {
	return m.registry.Add(eventID, h, opts...)
}

// Remove drops a registration by event id and sequence number.
func (m *Manager) Remove(eventID string, seq int64) error {
	return m.registry.Remove(eventID, seq)
}

// Hooks returns the ordered records for an event id.
func (m *Manager) Hooks(eventID string) []*Record {
	return m.registry.Hooks(eventID)
}

// Events returns all event ids with at least one hook, sorted.
func (m *Manager) Events() []string {
	return m.registry.Events()
}

// Reset clears the registry. Intended for tests.
func (m *Manager) Reset() {
	m.registry.Reset()
}

// Stats returns dispatch statistics.
func (m *Manager) Stats() dispatch.SyncDispatcherStats {
	return m.dispatcher.Stats()
}

// Run invokes every hook bound to eventID in order (descending
// priority, registration order on ties), forwarding args verbatim.
//
// An event with no hooks is a no-op and returns nil. Failure policy is
// continue-on-error: a hook that errors or panics never stops the hooks
// after it; all failures are returned together as a *DispatchError.
// Context cancellation stops the remaining hooks and is reported the
// same way.
//
// The ordered list is snapshotted before the first invocation, and
// hooks execute outside the registry lock, so reentrant Run or Add
// calls from inside a hook are safe. Hooks registered for eventID by a
// running hook join the next dispatch, not the current one.
func (m *Manager) Run(ctx context.Context, eventID string, args Args) error {
	recs := m.registry.Hooks(eventID)

	logger := m.log()
	logger.Info().
		Str("event", eventID).
		Int("hooks", len(recs)).
		Msg("running hooks")

	if len(recs) == 0 {
		return nil
	}

	var errs []error
	for _, rec := range recs {
		logger.Debug().
			Str("event", eventID).
			Str("hook", rec.Name()).
			Int("priority", rec.Priority()).
			Int64("seq", rec.Sequence()).
			Msg("invoking hook")

		handler := rec.Handler()
		result := m.dispatcher.Dispatch(ctx, args, dispatch.HandlerFunc(
			func(ctx context.Context, v any) error {
				return handler.Handle(ctx, v.(Args))
			},
		))

		if err := result.Err(); err != nil {
			logger.Debug().
				Str("event", eventID).
				Str("hook", rec.Name()).
				Err(err).
				Msg("hook failed")

			errs = append(errs, &InvocationError{
				Event:    eventID,
				Hook:     rec.Name(),
				Priority: rec.Priority(),
				Err:      err,
			})
		}

		// A cancelled context skips the remaining hooks.
		if result.Skipped {
			break
		}
	}

	if len(errs) > 0 {
		return &DispatchError{Event: eventID, Errs: errs}
	}
	return nil
}
