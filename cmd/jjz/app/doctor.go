package app

import (
	"github.com/spf13/cobra"

	jjzdoctor "github.com/jjzio/jjz/pkg/doctor"
	"github.com/jjzio/jjz/pkg/output"
)

func newDoctorCmd() *cobra.Command {
	var fix, dryRun bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Find and optionally repair orphaned sessions and workspace directories",
		Args:  cobra.NoArgs,
		RunE: withRecover(func(cmd *cobra.Command, _ []string) error {
			w := newWriter()
			d, cleanup, err := newDeps()
			if err != nil {
				finish(w, "doctor", output.Result{}, err)
				return nil
			}
			defer cleanup()

			checks, err := d.doctor.Scan(cmd.Context())
			if err != nil {
				finish(w, "doctor", output.Result{}, err)
				return nil
			}

			if !fix && !dryRun {
				finish(w, "doctor", doctorResult(checks, nil), nil)
				return nil
			}

			res, fixErr := d.doctor.Fix(cmd.Context(), checks, dryRun)
			finish(w, "doctor", doctorResult(checks, &res), fixErr)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "attempt to repair auto-fixable findings")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what --fix would do without making changes")

	return cmd
}

func doctorResult(checks []jjzdoctor.DoctorCheck, fixRes *jjzdoctor.FixResult) output.Result {
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		rows = append(rows, []string{c.Name, string(c.Status), c.Detail})
	}

	data := map[string]any{"checks": checks}
	if fixRes != nil {
		data["fix"] = fixRes
	}

	return output.Result{
		Type:    "doctor",
		Flavor:  output.FlavorArray,
		JSON:    data,
		Headers: []string{"Check", "Status", "Detail"},
		Rows:    rows,
	}
}
