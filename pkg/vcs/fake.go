package vcs

import (
	"context"
	"os"
)

// FakeCapability is a hand-written test double for Capability, used by the
// pkg/session lifecycle-engine tests so they never shell out to a real `jj`
// binary.
type FakeCapability struct {
	Version           Version
	CheckAvailableErr error

	CreateWorkspaceErr error
	CreatedWorkspaces  map[string]string // at -> name

	ForgetWorkspaceErr  error
	ForgottenWorkspaces []string

	StatusFn  func(at string) (StatusSummary, error)
	StatusErr error

	MergeErr      error
	MergedBranch  map[string]string // at -> branch
}

// NewFakeCapability returns a FakeCapability preconfigured to report a
// version satisfying MinVersion.
func NewFakeCapability() *FakeCapability {
	return &FakeCapability{
		Version:           Version{Major: 0, Minor: 25, Patch: 0},
		CreatedWorkspaces: make(map[string]string),
		MergedBranch:      make(map[string]string),
	}
}

// CheckAvailable implements Capability.
func (f *FakeCapability) CheckAvailable(context.Context) (Version, error) {
	return f.Version, f.CheckAvailableErr
}

// CreateWorkspace implements Capability.
func (f *FakeCapability) CreateWorkspace(_ context.Context, at, name string) error {
	if f.CreateWorkspaceErr != nil {
		return f.CreateWorkspaceErr
	}
	if err := os.MkdirAll(at, 0o755); err != nil {
		return err
	}
	f.CreatedWorkspaces[at] = name
	return nil
}

// ForgetWorkspace implements Capability.
func (f *FakeCapability) ForgetWorkspace(_ context.Context, name string) error {
	if f.ForgetWorkspaceErr != nil {
		return f.ForgetWorkspaceErr
	}
	f.ForgottenWorkspaces = append(f.ForgottenWorkspaces, name)
	return nil
}

// Status implements Capability.
func (f *FakeCapability) Status(_ context.Context, at string) (StatusSummary, error) {
	if f.StatusErr != nil {
		return StatusSummary{}, f.StatusErr
	}
	if f.StatusFn != nil {
		return f.StatusFn(at)
	}
	return StatusSummary{}, nil
}

// Merge implements Capability.
func (f *FakeCapability) Merge(_ context.Context, at, branch string) error {
	if f.MergeErr != nil {
		return f.MergeErr
	}
	f.MergedBranch[at] = branch
	return nil
}
