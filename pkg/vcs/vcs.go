// Package vcs defines the narrow capability jjz requires of its Jujutsu-style
// version-control backend. This is the sole place in the core that spawns the
// `jj` binary, which keeps the lifecycle engine testable against a fake.
package vcs

import (
	"context"
	"fmt"
)

// MinVersion is the minimum supported `jj` version; minor bumps of the
// backend often change workspace semantics, so this is pinned deliberately.
var MinVersion = Version{Major: 0, Minor: 23, Patch: 0}

// Version is a parsed major.minor.patch backend version.
type Version struct {
	Major, Minor, Patch int
}

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return formatVersion(v)
}

// Less reports whether v is strictly older than other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// StatusSummary is the result of a read-only workspace status query.
type StatusSummary struct {
	ChangedFiles int
	Branch       string
}

// Capability is the narrow, typed surface the lifecycle engine depends on.
// Implementations must wrap every underlying failure into the *errors.Error
// taxonomy before returning.
type Capability interface {
	// CheckAvailable invokes the backend binary and parses its version.
	CheckAvailable(ctx context.Context) (Version, error)
	// CreateWorkspace creates a new workspace at `at` named `name`. On
	// failure, no artifacts remain at `at`.
	CreateWorkspace(ctx context.Context, at, name string) error
	// ForgetWorkspace removes the backend's record of the workspace.
	ForgetWorkspace(ctx context.Context, name string) error
	// Status reports the workspace's changed-file count and branch without
	// mutating anything.
	Status(ctx context.Context, at string) (StatusSummary, error)
	// Merge advances branch to include the workspace's current change. The
	// lifecycle engine's `done` operation delegates its merge path here;
	// the exact backend semantics (rebase, squash, bookmark move) are this
	// implementation's concern, not the engine's.
	Merge(ctx context.Context, at, branch string) error
}

func formatVersion(v Version) string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
