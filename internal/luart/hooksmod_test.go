package luart

import (
	"context"
	"errors"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hookstorm/internal/hook"
)

func newTestEnv(t *testing.T) (*State, *hook.Manager) {
	t.Helper()

	s, err := NewState()
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	t.Cleanup(s.Close)

	mgr := hook.NewManager()
	InstallHooks(s, mgr)
	return s, mgr
}

// calls returns the numbers appended to the global `calls` table by the
// script's hooks.
func calls(t *testing.T, s *State) []any {
	t.Helper()

	v := FromLua(s.L.GetGlobal("calls"))
	if v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		t.Fatalf("calls global is %T, want array", v)
	}
	return arr
}

func TestHooksModule_RegistrarForm(t *testing.T) {
	s, mgr := newTestEnv(t)

	script := `
calls = {}
hooks.add("my_event", 20)(function(a, b)
    table.insert(calls, a - b)
end)
hooks.add("my_event", 5)(function(a, b)
    table.insert(calls, a * b)
end)
hooks.add("my_event")(function(a, b)
    table.insert(calls, a + b)
end)
`
	if err := s.DoString(script); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	if got := mgr.Events(); len(got) != 1 || got[0] != "my_event" {
		t.Fatalf("expected [my_event], got %v", got)
	}

	if err := mgr.Run(context.Background(), "my_event", hook.NewArgs(5, 3)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := calls(t, s)
	want := []any{int64(2), int64(15), int64(8)}
	if len(got) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestHooksModule_DirectForms(t *testing.T) {
	s, mgr := newTestEnv(t)

	script := `
calls = {}
seq1 = hooks.add("ev", function()
    table.insert(calls, "default")
end)
seq2 = hooks.add("ev", 10, function()
    table.insert(calls, "high")
end)
`
	if err := s.DoString(script); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	if mgr.Hooks("ev") == nil {
		t.Fatal("direct forms registered nothing")
	}

	if err := mgr.Run(context.Background(), "ev", hook.Args{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := calls(t, s)
	if len(got) != 2 || got[0] != "high" || got[1] != "default" {
		t.Errorf("expected [high default], got %v", got)
	}

	// Sequence numbers surface for later removal.
	if s.L.GetGlobal("seq1").Type() != lua.LTNumber {
		t.Error("direct form did not return a sequence number")
	}
}

func TestHooksModule_Remove(t *testing.T) {
	s, mgr := newTestEnv(t)

	script := `
calls = {}
local seq = hooks.add("ev", function()
    table.insert(calls, "gone")
end)
removed = hooks.remove("ev", seq)
missing = hooks.remove("ev", 999)
`
	if err := s.DoString(script); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	if s.L.GetGlobal("removed") != lua.LTrue {
		t.Error("remove of a live registration returned false")
	}
	if s.L.GetGlobal("missing") != lua.LFalse {
		t.Error("remove of an unknown registration returned true")
	}

	if err := mgr.Run(context.Background(), "ev", hook.Args{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := calls(t, s); len(got) != 0 {
		t.Errorf("removed hook still ran: %v", got)
	}
}

func TestHooksModule_RunFromScript(t *testing.T) {
	s, _ := newTestEnv(t)

	// A chunk can dispatch hooks registered earlier in the same load.
	script := `
calls = {}
hooks.add("greet")(function(name)
    table.insert(calls, "hello " .. name)
end)
hooks.run("greet", "world")
`
	if err := s.DoString(script); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	got := calls(t, s)
	if len(got) != 1 || got[0] != "hello world" {
		t.Errorf("expected [hello world], got %v", got)
	}
}

func TestHooksModule_KeywordArgsArriveAsTable(t *testing.T) {
	s, mgr := newTestEnv(t)

	script := `
hooks.add("ev")(function(first, kw)
    got_first = first
    got_mode = kw.mode
end)
`
	if err := s.DoString(script); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	args := hook.NewArgs("pos").WithKeyword("mode", "fast")
	if err := mgr.Run(context.Background(), "ev", args); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if v := s.L.GetGlobal("got_first"); v != lua.LString("pos") {
		t.Errorf("positional arg lost: %v", v)
	}
	if v := s.L.GetGlobal("got_mode"); v != lua.LString("fast") {
		t.Errorf("keyword arg lost: %v", v)
	}
}

func TestHooksModule_EmptyEventIDFails(t *testing.T) {
	s, mgr := newTestEnv(t)

	err := s.DoString(`hooks.add("", function() end)`)
	if err == nil {
		t.Fatal("expected error for empty event id")
	}
	if !strings.Contains(err.Error(), "invalid event id") {
		t.Errorf("unexpected error: %v", err)
	}
	if len(mgr.Events()) != 0 {
		t.Error("failed registration mutated the registry")
	}
}

func TestHooksModule_LuaErrorSurfacesInDispatch(t *testing.T) {
	s, mgr := newTestEnv(t)

	script := `
calls = {}
hooks.add("ev", 1)(function()
    error("hook broke")
end)
hooks.add("ev")(function()
    table.insert(calls, "still ran")
end)
`
	if err := s.DoString(script); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	err := mgr.Run(context.Background(), "ev", hook.Args{})
	if err == nil {
		t.Fatal("expected dispatch error")
	}

	var de *hook.DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DispatchError, got %T", err)
	}
	if !strings.Contains(err.Error(), "hook broke") {
		t.Errorf("lua error message lost: %v", err)
	}

	// The failing Lua hook must not stop the one after it.
	if got := calls(t, s); len(got) != 1 || got[0] != "still ran" {
		t.Errorf("later hook did not run: %v", got)
	}
}

func TestHooksModule_HookNamesFromChunk(t *testing.T) {
	s, mgr := newTestEnv(t)

	if err := s.DoString(`hooks.add("ev")(function() end)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	recs := mgr.Hooks("ev")
	if len(recs) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(recs))
	}
	if !strings.Contains(recs[0].Name(), ":") {
		t.Errorf("expected source:line name, got %q", recs[0].Name())
	}
}
