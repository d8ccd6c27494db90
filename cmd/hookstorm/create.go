package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/hookstorm/internal/discover"
)

const hookTemplate = `-- Hooks in this file are registered automatically on discovery.

hooks.add("my_event")(function(...)
    print("Hello from my_event!")
end)
`

func newCreateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new hooks file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := dir
			if target == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				target = cwd
			}
			path, err := createHooksFile(target, args[0], discover.DefaultSuffix)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", "", "Directory to create the hooks file in")
	return cmd
}

// createHooksFile writes the scaffold, normalizing the name so that the
// discovery suffix and .lua extension are always present.
func createHooksFile(dir, name, suffix string) (string, error) {
	name = strings.TrimSuffix(name, ".lua")
	if !strings.Contains(name, suffix) {
		name += suffix
	}
	name += ".lua"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	if err := os.WriteFile(path, []byte(hookTemplate), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
