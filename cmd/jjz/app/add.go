package app

import (
	"github.com/spf13/cobra"

	"github.com/jjzio/jjz/pkg/output"
	"github.com/jjzio/jjz/pkg/session"
)

func newAddCmd() *cobra.Command {
	var branch, issueID string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new session",
		Args:  cobra.ExactArgs(1),
		RunE: withRecover(func(cmd *cobra.Command, args []string) error {
			w := newWriter()
			d, cleanup, err := newDeps()
			if err != nil {
				finish(w, "session", output.Result{}, err)
				return nil
			}
			defer cleanup()

			sess, err := d.engine.Add(cmd.Context(), args[0], session.AddOptions{Branch: branch, IssueID: issueID})
			if err != nil {
				finish(w, "session", output.Result{}, err)
				return nil
			}
			finish(w, "session", sessionResult(sess, workspaceChanges(cmd.Context(), d.engine, sess)), nil)
			return nil
		}),
	}

	cmd.Flags().StringVar(&branch, "branch", "", "VCS branch to associate with the session")
	cmd.Flags().StringVar(&issueID, "issue", "", "issue tracker ID to associate with the session")

	return cmd
}
