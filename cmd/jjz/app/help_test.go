package app

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/jjzio/jjz/pkg/output"
)

func TestWalkCommandsIncludesRootAndChildren(t *testing.T) {
	root := &cobra.Command{Use: "jjz", Short: "manage sessions"}
	child := &cobra.Command{Use: "add <name>", Short: "add a session"}
	child.Flags().String("branch", "", "branch name")
	root.AddCommand(child)

	var commands []output.CommandHelp
	walkCommands(root, &commands)

	if len(commands) != 2 {
		t.Fatalf("expected 2 commands, got %d: %+v", len(commands), commands)
	}
	if commands[0].Name != "jjz" {
		t.Fatalf("expected root first, got %+v", commands[0])
	}
	if commands[1].Name != "jjz add" {
		t.Fatalf("expected child command path, got %+v", commands[1])
	}
	found := false
	for _, f := range commands[1].Flags {
		if f == "--branch" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected --branch flag in %+v", commands[1].Flags)
	}
	if len(commands[1].ExitCodes) == 0 {
		t.Fatalf("expected exit codes to be populated")
	}
}
