package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"

	"github.com/jjzio/jjz/pkg/errors"
)

// Jujutsu is the Capability implementation backed by the real `jj` binary.
type Jujutsu struct {
	// BinaryPath overrides PATH lookup when non-empty.
	BinaryPath string
}

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)

func (j *Jujutsu) binary() string {
	if j.BinaryPath != "" {
		return j.BinaryPath
	}
	return "jj"
}

func (j *Jujutsu) run(ctx context.Context, dir string, args ...string) (stdout, stderr bytes.Buffer, err error) {
	bin := j.binary()
	if j.BinaryPath == "" {
		if _, lookErr := exec.LookPath(bin); lookErr != nil {
			return stdout, stderr, errors.NewVcsNotInstalledError(
				"jj binary not found on PATH", lookErr,
			).WithSuggestion("install jj or set JJZ_JJ_PATH")
		}
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout, stderr, err
}

// CheckAvailable implements Capability.
func (j *Jujutsu) CheckAvailable(ctx context.Context) (Version, error) {
	stdout, stderr, err := j.run(ctx, "", "--version")
	if err != nil {
		if errors.IsVcsNotInstalled(err) {
			return Version{}, err
		}
		return Version{}, errors.NewVcsNotInstalledError(
			fmt.Sprintf("failed to run jj --version: %s", stderr.String()), err,
		)
	}

	m := versionPattern.FindStringSubmatch(stdout.String())
	if m == nil {
		return Version{}, errors.NewVcsError("could not parse jj version output", nil)
	}

	v := Version{}
	if _, err := fmt.Sscanf(m[0], "%d.%d.%d", &v.Major, &v.Minor, &v.Patch); err != nil {
		return Version{}, errors.NewVcsError("could not parse jj version output", err)
	}

	if v.Less(MinVersion) {
		return v, errors.NewVcsTooOldError(
			fmt.Sprintf("jj %s is older than the required minimum %s", v, MinVersion), nil,
		)
	}
	return v, nil
}

// CreateWorkspace implements Capability. On failure it removes any partial
// directory it created so the caller observes no artifacts at `at`.
func (j *Jujutsu) CreateWorkspace(ctx context.Context, at, name string) error {
	if err := os.MkdirAll(at, 0o755); err != nil {
		return errors.NewVcsError(fmt.Sprintf("failed to create workspace directory %s", at), err)
	}

	_, stderr, err := j.run(ctx, at, "workspace", "add", "--name", name, at)
	if err != nil {
		_ = os.RemoveAll(at)
		return errors.NewVcsError(
			fmt.Sprintf("jj workspace add failed: %s", stderr.String()), err,
		)
	}
	return nil
}

// ForgetWorkspace implements Capability.
func (j *Jujutsu) ForgetWorkspace(ctx context.Context, name string) error {
	_, stderr, err := j.run(ctx, "", "workspace", "forget", name)
	if err != nil {
		return errors.NewVcsError(
			fmt.Sprintf("jj workspace forget failed: %s", stderr.String()), err,
		)
	}
	return nil
}

// Status implements Capability.
func (j *Jujutsu) Status(ctx context.Context, at string) (StatusSummary, error) {
	stdout, stderr, err := j.run(ctx, at, "status")
	if err != nil {
		return StatusSummary{}, errors.NewVcsError(
			fmt.Sprintf("jj status failed: %s", stderr.String()), err,
		)
	}

	return parseStatus(stdout.String()), nil
}

// Merge implements Capability by moving branch to the workspace's current
// change, the jj analogue of a fast-forward merge.
func (j *Jujutsu) Merge(ctx context.Context, at, branch string) error {
	if branch == "" {
		branch = "main"
	}
	_, stderr, err := j.run(ctx, at, "bookmark", "move", branch, "--to", "@")
	if err != nil {
		return errors.NewVcsError(
			fmt.Sprintf("jj bookmark move failed: %s", stderr.String()), err,
		)
	}
	return nil
}

func parseStatus(output string) StatusSummary {
	changedFilesPattern := regexp.MustCompile(`(?m)^(?:[A-Z]{1,2}) `)
	matches := changedFilesPattern.FindAllString(output, -1)

	branchPattern := regexp.MustCompile(`(?m)^Working copy.*bookmark[s]?:\s*(\S+)`)
	branch := ""
	if m := branchPattern.FindStringSubmatch(output); m != nil {
		branch = m[1]
	}

	return StatusSummary{ChangedFiles: len(matches), Branch: branch}
}
