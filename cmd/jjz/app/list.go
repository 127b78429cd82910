package app

import (
	"github.com/spf13/cobra"

	"github.com/jjzio/jjz/pkg/output"
	"github.com/jjzio/jjz/pkg/store"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: withRecover(func(cmd *cobra.Command, _ []string) error {
			w := newWriter()
			d, cleanup, err := newDeps()
			if err != nil {
				finish(w, "session-list", output.Result{}, err)
				return nil
			}
			defer cleanup()

			sessions, err := d.engine.Store.List(cmd.Context(), store.ListFilter{})
			if err != nil {
				finish(w, "session-list", output.Result{}, err)
				return nil
			}
			if !all {
				sessions = excludeDeleted(sessions)
			}

			changes := workspaceChangesByName(cmd.Context(), d.engine, sessions)
			finish(w, "session-list", sessionListResult(sessions, changes), nil)
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include Deleted sessions alongside every other status")

	return cmd
}

// excludeDeleted drops Deleted sessions, the default list view's only
// status exclusion; Active, Paused, Completed, and Merged sessions all
// remain visible without --all.
func excludeDeleted(sessions []store.Session) []store.Session {
	kept := make([]store.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Status != store.StatusDeleted {
			kept = append(kept, s)
		}
	}
	return kept
}
