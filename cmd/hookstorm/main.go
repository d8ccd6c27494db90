// Package main is the entry point for the hookstorm CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/hookstorm/internal/config"
	"github.com/dshills/hookstorm/internal/discover"
	"github.com/dshills/hookstorm/internal/hook"
	"github.com/dshills/hookstorm/internal/luart"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:          "hookstorm",
		Short:        "Event hooks discovered from Lua hook files",
		Long:         "Hookstorm registers named hooks against event identifiers and runs them\nin priority order. Hook files (*_hooks.lua) are discovered from a directory\ntree and loaded so their registrations take effect automatically.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("hookstorm %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// session bundles everything a discovery-backed command needs.
type session struct {
	manager *hook.Manager
	state   *luart.State
	loader  *discover.Loader
}

// newSession resolves config-file defaults against flags and wires the
// manager, Lua state, and loader together. Empty flag values fall back
// to the config file, then to built-in defaults.
func newSession(rootPath, suffix string, verbose bool) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(cwd)
	if err != nil {
		return nil, err
	}

	roots := cfg.Roots
	if rootPath != "" {
		roots = []string{rootPath}
	}
	if len(roots) == 0 {
		roots = []string{cwd}
	}
	if suffix == "" {
		suffix = cfg.Suffix
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	manager := hook.NewManager(hook.WithLogger(logger))
	manager.SetVerbose(verbose || cfg.Verbose)

	state, err := luart.NewState()
	if err != nil {
		return nil, err
	}
	luart.InstallHooks(state, manager)

	loader := discover.NewLoader(state,
		discover.WithRoots(roots...),
		discover.WithSuffix(suffix),
	)

	return &session{
		manager: manager,
		state:   state,
		loader:  loader,
	}, nil
}

// Close releases the session's Lua state.
func (s *session) Close() {
	s.state.Close()
}
