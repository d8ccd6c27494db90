package luart

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hookstorm/internal/hook"
)

// InstallHooks binds the `hooks` module into the state's globals,
// backed by the given manager. Scripts loaded afterwards can register,
// remove, and dispatch hooks.
func InstallHooks(s *State, mgr *hook.Manager) {
	h := &hooksModule{state: s, mgr: mgr}

	tbl := s.L.NewTable()
	s.L.SetFuncs(tbl, map[string]lua.LGFunction{
		"add":    h.add,
		"remove": h.remove,
		"run":    h.run,
	})
	s.L.SetGlobal("hooks", tbl)
}

// hooksModule implements the Lua-facing registration surface.
type hooksModule struct {
	state *State
	mgr   *hook.Manager
}

// add handles every registration form:
//
//	hooks.add(id)               -> registrar function
//	hooks.add(id, priority)     -> registrar function
//	hooks.add(id, fn)           -> sequence number
//	hooks.add(id, priority, fn) -> sequence number
//
// The registrar form returns the function unchanged, so
// hooks.add("ev", 20)(fn) reads like the decorator it replaces.
func (h *hooksModule) add(L *lua.LState) int {
	id := L.CheckString(1)

	priority := hook.DefaultPriority
	var fn *lua.LFunction

	switch {
	case L.GetTop() >= 3:
		priority = L.CheckInt(2)
		fn = L.CheckFunction(3)
	case L.GetTop() == 2:
		if f, ok := L.Get(2).(*lua.LFunction); ok {
			fn = f
		} else {
			priority = L.CheckInt(2)
		}
	}

	if fn == nil {
		L.Push(L.NewFunction(func(L *lua.LState) int {
			registrar := L.CheckFunction(1)
			if _, err := h.register(id, priority, registrar); err != nil {
				L.RaiseError("hooks.add: %v", err)
			}
			L.Push(registrar)
			return 1
		}))
		return 1
	}

	seq, err := h.register(id, priority, fn)
	if err != nil {
		L.RaiseError("hooks.add: %v", err)
	}
	L.Push(lua.LNumber(seq))
	return 1
}

func (h *hooksModule) register(id string, priority int, fn *lua.LFunction) (int64, error) {
	return h.mgr.Add(id,
		&luaHandler{state: h.state, fn: fn},
		hook.WithPriority(priority),
		hook.WithName(functionName(fn)),
	)
}

// remove drops a registration by event id and sequence number.
// Returns true if a registration was removed.
func (h *hooksModule) remove(L *lua.LState) int {
	id := L.CheckString(1)
	seq := L.CheckInt64(2)

	err := h.mgr.Remove(id, seq)
	L.Push(lua.LBool(err == nil))
	return 1
}

// run dispatches an event from script code. Remaining arguments are
// forwarded positionally.
func (h *hooksModule) run(L *lua.LState) int {
	id := L.CheckString(1)

	positional := make([]any, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		positional = append(positional, FromLua(L.Get(i)))
	}

	if err := h.mgr.Run(context.Background(), id, hook.NewArgs(positional...)); err != nil {
		L.RaiseError("hooks.run: %v", err)
	}
	return 0
}

// luaHandler adapts a registered Lua function to hook.Handler.
type luaHandler struct {
	state *State
	fn    *lua.LFunction
}

// Handle converts the forwarded arguments to Lua values and calls the
// function. Positional arguments are passed in order; keyword arguments,
// when present, as one trailing table.
func (l *luaHandler) Handle(ctx context.Context, args hook.Args) error {
	lvs := make([]lua.LValue, 0, len(args.Positional)+1)
	for _, v := range args.Positional {
		lvs = append(lvs, ToLua(l.state.L, v))
	}
	if len(args.Keyword) > 0 {
		tbl := l.state.L.NewTable()
		for k, v := range args.Keyword {
			tbl.RawSetString(k, ToLua(l.state.L, v))
		}
		lvs = append(lvs, tbl)
	}

	return l.state.Invoke(l.fn, lvs...)
}

// functionName derives a trace name from the function's chunk source
// and line. Go-implemented functions have no proto; those fall back to
// the registry's sequence-derived name.
func functionName(fn *lua.LFunction) string {
	if fn == nil || fn.Proto == nil {
		return ""
	}
	src := strings.TrimPrefix(fn.Proto.SourceName, "@")
	if src == "" {
		src = "chunk"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(src), fn.Proto.LineDefined)
}
