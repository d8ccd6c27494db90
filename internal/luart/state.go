package luart

import (
	"fmt"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// State wraps gopher-lua for hook script execution.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes
// top-level chunk execution (DoFile/DoString) from Go code; Invoke is
// deliberately unguarded so that a running chunk can dispatch back into
// hooks registered on the same state. All use of a State must stay on
// one goroutine.
type State struct {
	L *lua.LState

	mu     sync.Mutex
	closed atomic.Bool
}

// NewState creates a new sandboxed Lua state.
func NewState() (*State, error) {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})

	openSafeLibraries(L)
	restrict(L)

	return &State{L: L}, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	// Base library (print, type, pairs, ipairs, etc.)
	lua.OpenBase(L)

	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Intentionally NOT opened: io, os, debug, package.
}

// restrict removes base-library functions that load code from outside
// the discovery mechanism.
func restrict(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile executes a Lua file. The call blocks until the chunk
// completes or errors.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrStateClosed
	}

	return s.doWithRecovery(func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua source string.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrStateClosed
	}

	return s.doWithRecovery(func() error {
		return s.L.DoString(code)
	})
}

// Invoke calls a Lua function value with the given arguments, discarding
// return values. Safe to call from inside a running chunk (reentrant
// dispatch); must stay on the state's goroutine.
func (s *State) Invoke(fn *lua.LFunction, args ...lua.LValue) error {
	if s.closed.Load() {
		return ErrStateClosed
	}

	return s.doWithRecovery(func() error {
		return s.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, args...)
	})
}

// doWithRecovery executes a function with panic recovery.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the underlying Lua state. Idempotent.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.CompareAndSwap(false, true) {
		s.L.Close()
	}
}
