package output

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Mode selects which of the three renderings (SPEC_FULL.md §4.5) a Writer
// produces.
type Mode int

const (
	ModeHuman Mode = iota
	ModeTSV
	ModeJSON
)

// DetectMode implements the dispatch rule: --json wins outright; otherwise
// --silent or a non-TTY stdout falls back to minimal TSV; otherwise human.
func DetectMode(jsonRequested, silentRequested bool, out *os.File) Mode {
	if jsonRequested {
		return ModeJSON
	}
	if silentRequested || !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return ModeTSV
	}
	return ModeHuman
}
