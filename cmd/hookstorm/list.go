package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

func newListCmd() *cobra.Command {
	var (
		rootPath string
		suffix   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Discover hook files and list registered events and hooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := newSession(rootPath, suffix, false)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.loader.ImportHooks(cmd.Context()); err != nil {
				return err
			}

			if asJSON {
				out, err := listJSON(sess)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}

			events := sess.manager.Events()
			if len(events) == 0 {
				fmt.Println("No hooks registered.")
				return nil
			}
			for _, ev := range events {
				fmt.Println(ev)
				for _, rec := range sess.manager.Hooks(ev) {
					fmt.Printf("  %s (priority %d, seq %d)\n",
						rec.Name(), rec.Priority(), rec.Sequence())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&rootPath, "path", "p", "", "Root path for hook discovery")
	cmd.Flags().StringVarP(&suffix, "suffix", "s", "", "File suffix for hook discovery (without .lua)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

// listJSON renders the registry as a JSON array of events.
func listJSON(sess *session) (string, error) {
	out := "[]"
	for _, ev := range sess.manager.Events() {
		recs := sess.manager.Hooks(ev)
		hooks := make([]map[string]any, 0, len(recs))
		for _, rec := range recs {
			hooks = append(hooks, map[string]any{
				"name":     rec.Name(),
				"priority": rec.Priority(),
				"sequence": rec.Sequence(),
			})
		}

		var err error
		out, err = sjson.Set(out, "-1", map[string]any{
			"event": ev,
			"hooks": hooks,
		})
		if err != nil {
			return "", err
		}
	}
	return out, nil
}
