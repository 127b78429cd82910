package multiplexer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/jjzio/jjz/pkg/errors"
)

// Zellij is the Capability implementation backed by the real `zellij` binary.
type Zellij struct {
	// BinaryPath overrides PATH lookup when non-empty.
	BinaryPath string
}

func (z *Zellij) binary() string {
	if z.BinaryPath != "" {
		return z.BinaryPath
	}
	return "zellij"
}

func (z *Zellij) run(ctx context.Context, cwd string, args ...string) (stdout, stderr bytes.Buffer, err error) {
	bin := z.binary()
	if z.BinaryPath == "" {
		if _, lookErr := exec.LookPath(bin); lookErr != nil {
			return stdout, stderr, errors.NewVcsNotInstalledError(
				"zellij binary not found on PATH", lookErr,
			).WithSuggestion("install zellij or set JJZ_ZELLIJ_PATH")
		}
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = cwd
	cmd.Env = os.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout, stderr, err
}

// RunningInside implements Capability. zellij exports the ZELLIJ environment
// variable in every pane it spawns.
func (*Zellij) RunningInside() bool {
	return os.Getenv("ZELLIJ") != ""
}

// CreateTab implements Capability.
func (z *Zellij) CreateTab(ctx context.Context, name, cwd string) error {
	_, stderr, err := z.run(ctx, cwd, "action", "new-tab", "--name", name, "--cwd", cwd)
	if err != nil {
		return errors.NewMultiplexerError(
			fmt.Sprintf("zellij new-tab failed: %s", stderr.String()), err,
		)
	}
	return nil
}

// FocusTab implements Capability.
func (z *Zellij) FocusTab(ctx context.Context, name string) error {
	_, stderr, err := z.run(ctx, "", "action", "go-to-tab-name", name)
	if err != nil {
		msg := stderr.String()
		if strings.Contains(strings.ToLower(msg), "not found") ||
			strings.Contains(strings.ToLower(msg), "no tab") {
			return errors.NewTabNotFoundError(fmt.Sprintf("no tab named %q", name), err)
		}
		return errors.NewMultiplexerError(fmt.Sprintf("zellij go-to-tab-name failed: %s", msg), err)
	}
	return nil
}

// CloseTab implements Capability.
func (z *Zellij) CloseTab(ctx context.Context, name string) error {
	if err := z.FocusTab(ctx, name); err != nil {
		return err
	}
	_, stderr, err := z.run(ctx, "", "action", "close-tab")
	if err != nil {
		return errors.NewMultiplexerError(
			fmt.Sprintf("zellij close-tab failed: %s", stderr.String()), err,
		)
	}
	return nil
}

// IsTTY implements Capability.
func (*Zellij) IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
