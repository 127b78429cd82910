package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeTable renders rows as a bordered, left-aligned table, the same style
// the teacher uses for its status tables.
func writeTable(w io.Writer, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	opts := []tablewriter.Option{
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
	}
	if len(headers) > 0 {
		opts = append(opts, tablewriter.WithHeader(headers), tablewriter.WithAlignment(tw.MakeAlign(len(headers), tw.AlignLeft)))
	}
	table.Options(opts...)

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	return table.Render()
}
