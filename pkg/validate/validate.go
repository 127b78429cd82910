// Package validate implements the two independent, pure validators invoked
// before any session side effect: the name validator and the workspace-path
// validator (SPEC_FULL.md §4.1).
package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jjzio/jjz/pkg/errors"
)

// NamePattern is the exact pattern every valid session name matches (invariant 4).
var NamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

// reservedNames may never be used as a session name. Each starts with a dot,
// so none can match NamePattern; Name checks the list as a second guard.
var reservedNames = map[string]bool{
	".":    true,
	"..":   true,
	".git": true,
	".jj":  true,
}

// Name validates a session name against invariant 4 and the reserved-name list.
func Name(name string) error {
	if !NamePattern.MatchString(name) {
		return errors.NewInvalidNameError(
			fmt.Sprintf("name %q must match %s", name, NamePattern.String()), nil,
		).WithSuggestion("use a short name starting with a letter, e.g. \"feat-a\"")
	}
	if reservedNames[strings.ToLower(name)] {
		return errors.NewInvalidNameError(
			fmt.Sprintf("name %q is reserved", name), nil,
		).WithSuggestion("choose a different name")
	}
	return nil
}

// WorkspacePath validates and returns the canonical workspace directory for
// name under root, per §4.1. It never touches the filesystem beyond resolving
// existing symlinks for canonicalization.
func WorkspacePath(root, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", errors.NewInvalidPathError(
			fmt.Sprintf("name %q must not be an absolute path", name), nil,
		)
	}

	dotdots := 0
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			dotdots++
		}
	}
	if dotdots > 1 {
		return "", errors.NewInvalidPathError(
			fmt.Sprintf("name %q escapes the workspace root", name), nil,
		)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", errors.NewInvalidPathError(fmt.Sprintf("invalid workspace root %q", root), err)
	}

	candidate := filepath.Join(absRoot, name)

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewInvalidPathError(
			fmt.Sprintf("path for %q is not a descendant of %q", name, absRoot), nil,
		)
	}

	resolvedRoot, err := canonicalizeExistingPrefix(absRoot)
	if err != nil {
		return "", errors.NewInvalidPathError(fmt.Sprintf("cannot resolve workspace root %q", root), err)
	}
	resolvedCandidate, err := canonicalizeExistingPrefix(candidate)
	if err != nil {
		return "", errors.NewInvalidPathError(fmt.Sprintf("cannot resolve path for %q", name), err)
	}

	relResolved, err := filepath.Rel(resolvedRoot, resolvedCandidate)
	if err != nil || relResolved == ".." || strings.HasPrefix(relResolved, ".."+string(filepath.Separator)) {
		return "", errors.NewInvalidPathError(
			fmt.Sprintf("path for %q escapes %q after symlink resolution", name, resolvedRoot), nil,
		)
	}

	return candidate, nil
}
