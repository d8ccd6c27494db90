package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/dshills/hookstorm/internal/hook"
)

func newRunCmd() *cobra.Command {
	var (
		rootPath string
		suffix   string
		verbose  bool
		argsJSON string
	)

	cmd := &cobra.Command{
		Use:   "run <event>",
		Short: "Discover hook files and run all hooks for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hookArgs, err := parseArgsJSON(argsJSON)
			if err != nil {
				return err
			}

			sess, err := newSession(rootPath, suffix, verbose)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.loader.ImportHooks(cmd.Context()); err != nil {
				return err
			}

			return sess.manager.Run(cmd.Context(), args[0], hookArgs)
		},
	}

	cmd.Flags().StringVarP(&rootPath, "path", "p", "", "Root path for hook discovery")
	cmd.Flags().StringVarP(&suffix, "suffix", "s", "", "File suffix for hook discovery (without .lua)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Trace each hook invocation")
	cmd.Flags().StringVar(&argsJSON, "args", "", "Arguments as JSON: array = positional, object = keyword")
	return cmd
}

// parseArgsJSON maps a JSON document onto hook arguments: a top-level
// array becomes positional arguments, an object becomes keyword
// arguments, any other value a single positional argument.
func parseArgsJSON(raw string) (hook.Args, error) {
	if raw == "" {
		return hook.Args{}, nil
	}
	if !gjson.Valid(raw) {
		return hook.Args{}, fmt.Errorf("--args is not valid JSON: %s", raw)
	}

	v := gjson.Parse(raw)
	switch {
	case v.IsArray():
		elems := v.Array()
		positional := make([]any, 0, len(elems))
		for _, e := range elems {
			positional = append(positional, e.Value())
		}
		return hook.Args{Positional: positional}, nil
	case v.IsObject():
		keyword := make(map[string]any)
		v.ForEach(func(k, val gjson.Result) bool {
			keyword[k.String()] = val.Value()
			return true
		})
		return hook.Args{Keyword: keyword}, nil
	default:
		return hook.NewArgs(v.Value()), nil
	}
}
