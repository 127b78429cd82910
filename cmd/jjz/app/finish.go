package app

import (
	"os"

	"github.com/jjzio/jjz/pkg/errors"
	"github.com/jjzio/jjz/pkg/output"
)

// finish renders res (on success) or err (on failure) through w, then exits
// the process with the stable exit code the error taxonomy assigns. Exit
// codes are part of jjz's external interface, so every command funnels
// through this single path rather than returning ad hoc errors to cobra.
func finish(w *output.Writer, typ string, res output.Result, err error) {
	if err == nil {
		if emitErr := w.Emit(res, nil); emitErr != nil {
			os.Stderr.WriteString("failed to render output: " + emitErr.Error() + "\n")
			os.Exit(2)
		}
		return
	}

	cmdErr, ok := err.(*errors.Error)
	if !ok {
		cmdErr = errors.NewUnknownError(err.Error(), err)
	}

	if emitErr := w.Emit(output.Result{Type: typ}, cmdErr); emitErr != nil {
		os.Stderr.WriteString("failed to render error output: " + emitErr.Error() + "\n")
	}
	os.Exit(cmdErr.ExitCode())
}
