package app

import (
	"github.com/spf13/cobra"

	"github.com/jjzio/jjz/pkg/output"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus <name>",
		Short: "Focus a session's multiplexer tab, recreating it if necessary",
		Args:  cobra.ExactArgs(1),
		RunE: withRecover(func(cmd *cobra.Command, args []string) error {
			w := newWriter()
			d, cleanup, err := newDeps()
			if err != nil {
				finish(w, "session", output.Result{}, err)
				return nil
			}
			defer cleanup()

			sess, err := d.engine.Focus(cmd.Context(), args[0])
			if err != nil {
				finish(w, "session", output.Result{}, err)
				return nil
			}
			finish(w, "session", sessionResult(sess, workspaceChanges(cmd.Context(), d.engine, sess)), nil)
			return nil
		}),
	}

	return cmd
}
