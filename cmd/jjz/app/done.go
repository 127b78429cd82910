package app

import (
	"github.com/spf13/cobra"

	"github.com/jjzio/jjz/pkg/output"
	"github.com/jjzio/jjz/pkg/session"
)

func newDoneCmd() *cobra.Command {
	var keepWorkspace, dryRun bool

	cmd := &cobra.Command{
		Use:   "done <name>",
		Short: "Mark a session complete, merging its changes unless --keep-workspace is set",
		Args:  cobra.ExactArgs(1),
		RunE: withRecover(func(cmd *cobra.Command, args []string) error {
			w := newWriter()
			d, cleanup, err := newDeps()
			if err != nil {
				finish(w, "session-done", output.Result{}, err)
				return nil
			}
			defer cleanup()

			res, err := d.engine.Done(cmd.Context(), args[0], session.DoneOptions{
				KeepWorkspace: keepWorkspace,
				DryRun:        dryRun,
			})
			finish(w, "session-done", doneResult(res), err)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&keepWorkspace, "keep-workspace", false, "mark Completed without merging or removing the workspace")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the would-be new status without making changes")

	return cmd
}
