// Package discover finds and loads hook script files.
//
// A Loader walks its root directories for files named *<suffix>.lua
// (default suffix "_hooks") and hands each one to a Runner exactly
// once; loading a file executes its top-level code, which is where its
// hook registrations happen. The loader is agnostic to what the file
// does beyond that.
//
// Files load in lexicographic path order within each root, roots in
// configured order, so registration sequence numbers are reproducible
// for a fixed directory snapshot. Files are deduplicated by canonical
// path, and re-running ImportHooks skips everything already loaded
// while picking up newly matched files.
//
// A file that fails to load aborts the whole ImportHooks call with a
// *LoadError naming the path. Skipping it and continuing would leave
// the registry partially populated and silently change dispatch
// behavior.
package discover
