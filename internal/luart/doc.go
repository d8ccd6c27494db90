// Package luart embeds the Lua runtime that hook script files run in.
//
// A State wraps a sandboxed gopher-lua interpreter: only the base,
// table, string, and math libraries are opened, and the file/module
// loading primitives (dofile, loadfile, load, loadstring) are removed
// so a script cannot reach outside the discovery mechanism.
//
// InstallHooks binds the `hooks` module into the state's globals.
// Scripts register against it at load time:
//
//	hooks.add("file.saved", 20)(function(path)
//	    print("saved " .. path)
//	end)
//
//	-- direct forms
//	local seq = hooks.add("file.saved", function(path) end)
//	local seq = hooks.add("file.saved", 20, function(path) end)
//
//	hooks.remove("file.saved", seq)
//	hooks.run("file.saved", "main.go")
//
// Positional arguments arrive as Lua values; when keyword arguments are
// present they arrive as one trailing table.
//
// gopher-lua states are not goroutine-safe. A State and every hook
// registered through it must be driven from a single goroutine.
package luart
