package discover

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSuffix is the file-name suffix that marks a hook script:
// a file loads iff its name ends in <suffix>.lua.
const DefaultSuffix = "_hooks"

// Runner executes a discovered hook file. Satisfied by *luart.State.
type Runner interface {
	DoFile(path string) error
}

// Loader discovers hook files under a set of roots and loads each at
// most once. Not safe for concurrent use; drive it from the goroutine
// that owns the Runner.
type Loader struct {
	runner Runner
	roots  []string
	suffix string

	// Canonical paths already loaded this session.
	loaded map[string]struct{}
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRoots sets the directories to walk. Default: the working directory.
func WithRoots(roots ...string) LoaderOption {
	return func(l *Loader) {
		l.roots = roots
	}
}

// WithSuffix sets the hook file suffix. Default: DefaultSuffix.
func WithSuffix(suffix string) LoaderOption {
	return func(l *Loader) {
		l.suffix = suffix
	}
}

// NewLoader creates a loader that feeds matched files to runner.
func NewLoader(runner Runner, opts ...LoaderOption) *Loader {
	l := &Loader{
		runner: runner,
		suffix: DefaultSuffix,
		loaded: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if len(l.roots) == 0 {
		if cwd, err := os.Getwd(); err == nil {
			l.roots = []string{cwd}
		}
	}
	return l
}

// Roots returns the configured root directories.
func (l *Loader) Roots() []string {
	return l.roots
}

// Loaded returns the number of files loaded so far.
func (l *Loader) Loaded() int {
	return len(l.loaded)
}

// ImportHooks walks every root and loads each matched file that has not
// been loaded yet. Fails fast on the first file that does not load,
// wrapping it in a *LoadError; files loaded before the failure stay
// loaded. Idempotent with respect to already-loaded files.
func (l *Loader) ImportHooks(ctx context.Context) error {
	for _, root := range l.roots {
		files, err := l.matchRoot(root)
		if err != nil {
			return err
		}

		for _, path := range files {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			canonical := canonicalPath(path)
			if _, ok := l.loaded[canonical]; ok {
				continue
			}

			if err := l.runner.DoFile(path); err != nil {
				return &LoadError{Path: path, Err: err}
			}
			l.loaded[canonical] = struct{}{}
		}
	}
	return nil
}

// matchRoot collects matched file paths under one root, sorted
// lexicographically. A missing root is not an error.
func (l *Loader) matchRoot(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), l.suffix+".lua") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// canonicalPath resolves a path for deduplication, so the same file
// reached through different walks loads once.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
