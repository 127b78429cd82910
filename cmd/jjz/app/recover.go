package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jjzio/jjz/pkg/output"
)

// withRecover wraps a command's RunE so an unexpected panic surfaces as an
// Unknown error through the normal exit-code path instead of an uncontrolled
// process abort. This is defense-in-depth only: every known failure mode is
// expected to return a tagged error well before this ever fires.
func withRecover(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer func() {
			if r := recover(); r != nil {
				finish(newWriter(), cmd.Name(), output.Result{}, fmt.Errorf("panic: %v", r))
			}
		}()
		return fn(cmd, args)
	}
}
