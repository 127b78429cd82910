package multiplexer

import (
	"context"
	"fmt"

	"github.com/jjzio/jjz/pkg/errors"
)

func errTabNotFound(name string) error {
	return errors.NewTabNotFoundError(fmt.Sprintf("no tab named %q", name), nil)
}

// FakeCapability is a hand-written test double for Capability, used by the
// pkg/session lifecycle-engine tests so they never shell out to a real
// `zellij` binary.
type FakeCapability struct {
	Inside bool
	TTY    bool

	CreateTabErr error
	CreatedTabs  map[string]string // name -> cwd

	FocusTabErr  error
	ExistingTabs map[string]bool
	FocusedTabs  []string
	CloseTabErr  error
	ClosedTabs   []string
}

// NewFakeCapability returns an empty, ready-to-use FakeCapability.
func NewFakeCapability() *FakeCapability {
	return &FakeCapability{
		CreatedTabs:  make(map[string]string),
		ExistingTabs: make(map[string]bool),
	}
}

// RunningInside implements Capability.
func (f *FakeCapability) RunningInside() bool { return f.Inside }

// CreateTab implements Capability.
func (f *FakeCapability) CreateTab(_ context.Context, name, cwd string) error {
	if f.CreateTabErr != nil {
		return f.CreateTabErr
	}
	f.CreatedTabs[name] = cwd
	f.ExistingTabs[name] = true
	return nil
}

// FocusTab implements Capability.
func (f *FakeCapability) FocusTab(_ context.Context, name string) error {
	if f.FocusTabErr != nil {
		return f.FocusTabErr
	}
	if !f.ExistingTabs[name] {
		return errTabNotFound(name)
	}
	f.FocusedTabs = append(f.FocusedTabs, name)
	return nil
}

// CloseTab implements Capability.
func (f *FakeCapability) CloseTab(_ context.Context, name string) error {
	if f.CloseTabErr != nil {
		return f.CloseTabErr
	}
	delete(f.ExistingTabs, name)
	f.ClosedTabs = append(f.ClosedTabs, name)
	return nil
}

// IsTTY implements Capability.
func (f *FakeCapability) IsTTY() bool { return f.TTY }
