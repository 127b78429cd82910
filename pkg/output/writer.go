package output

import (
	"fmt"
	"io"

	"github.com/jjzio/jjz/pkg/errors"
)

// Writer dispatches a command's Result to the rendering selected by Mode.
type Writer struct {
	Mode Mode
	Out  io.Writer
	Err  io.Writer
}

// NewWriter builds a Writer for the given mode and stream pair.
func NewWriter(mode Mode, out, err io.Writer) *Writer {
	return &Writer{Mode: mode, Out: out, Err: err}
}

// Emit renders res, or cmdErr if non-nil, according to w.Mode. Exactly one
// of res/cmdErr is meaningful per call: callers pass the zero Result when
// reporting a failure.
func (w *Writer) Emit(res Result, cmdErr *errors.Error) error {
	if cmdErr != nil {
		return w.emitError(res.Type, cmdErr)
	}

	switch w.Mode {
	case ModeJSON:
		return WriteJSON(w.Out, NewDataEnvelope(res.Type, res.Flavor, res.JSON))
	case ModeTSV:
		return writeTSV(w.Out, res.Rows)
	default:
		return writeTable(w.Out, res.Headers, res.Rows)
	}
}

func (w *Writer) emitError(typ string, cmdErr *errors.Error) error {
	if w.Mode == ModeJSON {
		return WriteJSON(w.Out, NewErrorEnvelope(typ, cmdErr))
	}

	if _, err := fmt.Fprintf(w.Err, "Error: %s\n", cmdErr.Message); err != nil {
		return err
	}
	if cmdErr.Suggestion != "" {
		if _, err := fmt.Fprintf(w.Err, "Suggestion: %s\n", cmdErr.Suggestion); err != nil {
			return err
		}
	}
	return nil
}
