package output

import (
	"fmt"
	"io"
	"strings"
)

// writeTSV emits one tab-separated line per row, no header, no decoration.
// An empty Rows slice produces zero bytes, as required by SPEC_FULL.md's
// pipe-output scenario.
func writeTSV(w io.Writer, rows [][]string) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
