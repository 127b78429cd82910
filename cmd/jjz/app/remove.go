package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jjzio/jjz/pkg/output"
	"github.com/jjzio/jjz/pkg/session"
)

func newRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Tear down a session's workspace, tab, and record",
		Args:  cobra.ExactArgs(1),
		RunE: withRecover(func(cmd *cobra.Command, args []string) error {
			w := newWriter()
			d, cleanup, err := newDeps()
			if err != nil {
				finish(w, "session-remove", output.Result{}, err)
				return nil
			}
			defer cleanup()

			name := args[0]
			if !force {
				proceed, confirmErr := confirmRemoval(cmd, d, name)
				if confirmErr != nil {
					finish(w, "session-remove", output.Result{}, confirmErr)
					return nil
				}
				if !proceed {
					finish(w, "session-remove", output.Result{
						Type:   "session-remove",
						Flavor: output.FlavorSingle,
						JSON:   map[string]any{"name": name, "removed": false, "cancelled": true},
						Rows:   [][]string{{name}},
					}, nil)
					return nil
				}
			}

			err = d.engine.Remove(cmd.Context(), name, session.RemoveOptions{Force: force})
			finish(w, "session-remove", output.Result{
				Type:   "session-remove",
				Flavor: output.FlavorSingle,
				JSON:   map[string]any{"name": name, "removed": err == nil},
				Rows:   [][]string{{name}},
			}, err)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the uncommitted-changes confirmation prompt")

	return cmd
}

// confirmRemoval prints an interactive confirmation when the session's
// workspace has uncommitted VCS changes. It never alters the engine's own
// step ordering (SPEC_FULL.md §4.6.3) — it only gates whether Remove is
// called at all. proceed is false only when the user declines; that is not
// an error, so the caller must handle it distinctly from confirmErr.
func confirmRemoval(cmd *cobra.Command, d *deps, name string) (proceed bool, confirmErr error) {
	sess, err := d.store.Get(cmd.Context(), name)
	if err != nil {
		return false, err
	}

	status, err := d.engine.VCS.Status(cmd.Context(), sess.WorkspacePath)
	if err != nil || status.ChangedFiles == 0 {
		return true, nil
	}

	fmt.Fprintf(os.Stderr, "session %q has %d uncommitted change(s); remove anyway? [y/N] ", name, status.ChangedFiles)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(answer)) == "y", nil
}
