package app

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jjzio/jjz/pkg/output"
)

// emitHelpJSON walks the full command tree and emits one "help"/array
// envelope describing every subcommand, per SPEC_FULL.md §4.5.
func emitHelpJSON(root *cobra.Command) error {
	var commands []output.CommandHelp
	walkCommands(root, &commands)
	return output.WriteJSON(os.Stdout, output.NewHelpEnvelope(commands))
}

func walkCommands(cmd *cobra.Command, out *[]output.CommandHelp) {
	flags := []string{}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		flags = append(flags, "--"+f.Name)
	})

	*out = append(*out, output.CommandHelp{
		Name:      cmd.CommandPath(),
		Short:     cmd.Short,
		Usage:     cmd.UseLine(),
		Flags:     flags,
		ExitCodes: []int{0, 1, 2, 3, 4},
	})

	for _, child := range cmd.Commands() {
		walkCommands(child, out)
	}
}
