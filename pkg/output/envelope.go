// Package output implements the format-dispatch layer described in
// SPEC_FULL.md §4.5: a stable JSON envelope for --json, a minimal
// pipe-friendly TSV rendering, and a human table rendering via tablewriter.
package output

import (
	"encoding/json"
	"io"

	"github.com/jjzio/jjz/pkg/errors"
)

// Flavor distinguishes a single-object payload from a collection.
type Flavor string

const (
	FlavorSingle Flavor = "single"
	FlavorArray  Flavor = "array"
)

// ErrorPayload is the envelope's error variant.
type ErrorPayload struct {
	Type       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Envelope is the stable JSON ABI emitted for --json (SPEC_FULL.md §6):
// exactly one of Data or Error is populated.
type Envelope struct {
	Type   string        `json:"type"`
	Flavor Flavor        `json:"flavor"`
	Data   any           `json:"data,omitempty"`
	Error  *ErrorPayload `json:"error,omitempty"`
}

// NewDataEnvelope builds a success envelope.
func NewDataEnvelope(typ string, flavor Flavor, data any) Envelope {
	return Envelope{Type: typ, Flavor: flavor, Data: data}
}

// NewErrorEnvelope builds a failure envelope from a tagged error.
func NewErrorEnvelope(typ string, err *errors.Error) Envelope {
	return Envelope{
		Type:  typ,
		Error: &ErrorPayload{Type: string(err.Type), Message: err.Message, Suggestion: err.Suggestion},
	}
}

// WriteJSON encodes the envelope as indented JSON, matching the stable ABI
// promised by SPEC_FULL.md §6.
func WriteJSON(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
