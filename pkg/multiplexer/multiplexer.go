// Package multiplexer defines the narrow capability jjz requires of the
// zellij terminal multiplexer. This is the sole place in the core that spawns
// the `zellij` binary.
package multiplexer

import "context"

// TabName derives the multiplexer tab identifier for a session name, per
// SPEC_FULL.md §3.
func TabName(sessionName string) string {
	return "jjz:" + sessionName
}

// Capability is the narrow, typed surface the lifecycle engine depends on.
// Implementations must wrap every underlying failure into the *errors.Error
// taxonomy before returning.
type Capability interface {
	// RunningInside reports whether the current process is a child of the
	// multiplexer.
	RunningInside() bool
	// CreateTab creates a new tab named `name` with working directory cwd.
	// Best-effort: callers decide whether a failure is fatal.
	CreateTab(ctx context.Context, name, cwd string) error
	// FocusTab focuses the tab named `name`. Returns a TabNotFound error if
	// no such tab exists.
	FocusTab(ctx context.Context, name string) error
	// CloseTab closes the tab named `name`. Non-critical: callers should log
	// and continue on failure.
	CloseTab(ctx context.Context, name string) error
	// IsTTY reports whether standard output is a terminal.
	IsTTY() bool
}
