// Package doctor implements the orphan-detection and recovery operation
// (SPEC_FULL.md §4.7): reconciling the session store against the workspace
// root's actual directory contents.
package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jjzio/jjz/pkg/errors"
	"github.com/jjzio/jjz/pkg/store"
)

// CheckStatus is the outcome of one DoctorCheck.
type CheckStatus string

const (
	StatusPass CheckStatus = "Pass"
	StatusWarn CheckStatus = "Warn"
	StatusFail CheckStatus = "Fail"
)

// Kind identifies which orphan class, if any, a DoctorCheck reports.
type Kind string

const (
	// KindRecordOrphan is Type 1: a session record with no backing directory.
	KindRecordOrphan Kind = "record_orphan"
	// KindDirectoryOrphan is Type 2: a directory with no backing record.
	KindDirectoryOrphan Kind = "directory_orphan"
)

// DoctorCheck is one reconciliation finding.
type DoctorCheck struct {
	Name        string
	Status      CheckStatus
	AutoFixable bool
	Detail      string
	Kind        Kind
	SessionName string // set for KindRecordOrphan
	Path        string // set for KindDirectoryOrphan
}

// Doctor reconciles the store's session records against the workspace root.
type Doctor struct {
	Store         store.Store
	WorkspaceRoot string
}

// NewDoctor builds a Doctor over the given store and workspace root.
func NewDoctor(s store.Store, workspaceRoot string) *Doctor {
	return &Doctor{Store: s, WorkspaceRoot: workspaceRoot}
}

// Scan runs the two read-only reconciliation sources — the store listing and
// a workspace-root directory walk — concurrently, then reconciles them
// in-process. Neither source mutates shared state, so concurrency cannot
// violate the engine's sequential-step ordering guarantee elsewhere.
func (d *Doctor) Scan(ctx context.Context) ([]DoctorCheck, error) {
	var sessions []store.Session
	var dirs []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := d.Store.List(gctx, store.ListFilter{})
		sessions = s
		return err
	})
	g.Go(func() error {
		ds, err := listWorkspaceDirs(d.WorkspaceRoot)
		dirs = ds
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.NewStoreError("doctor scan failed", err)
	}

	claimed := make(map[string]bool, len(sessions))
	var checks []DoctorCheck

	for _, sess := range sessions {
		if sess.Status == store.StatusDeleted {
			continue
		}
		claimed[filepath.Clean(sess.WorkspacePath)] = true

		if _, err := os.Stat(sess.WorkspacePath); err != nil {
			if os.IsNotExist(err) {
				checks = append(checks, DoctorCheck{
					Name:        fmt.Sprintf("session %q workspace directory", sess.Name),
					Status:      StatusFail,
					AutoFixable: true,
					Detail:      fmt.Sprintf("record exists but %s is missing", sess.WorkspacePath),
					Kind:        KindRecordOrphan,
					SessionName: sess.Name,
				})
				continue
			}
			checks = append(checks, DoctorCheck{
				Name:   fmt.Sprintf("session %q workspace directory", sess.Name),
				Status: StatusWarn,
				Detail: fmt.Sprintf("could not stat %s: %v", sess.WorkspacePath, err),
			})
			continue
		}

		checks = append(checks, DoctorCheck{
			Name:   fmt.Sprintf("session %q workspace directory", sess.Name),
			Status: StatusPass,
		})
	}

	for _, dir := range dirs {
		if claimed[filepath.Clean(dir)] {
			continue
		}
		checks = append(checks, DoctorCheck{
			Name:        fmt.Sprintf("directory %s", dir),
			Status:      StatusFail,
			AutoFixable: false,
			Detail:      "directory under the workspace root has no session record",
			Kind:        KindDirectoryOrphan,
			Path:        dir,
		})
	}

	return checks, nil
}

// FixResult reports what Fix did (or, under dryRun, would do).
type FixResult struct {
	Fixed        []string
	WouldFix     []string
	Failed       []string
	NotAttempted []string
}

// Fix invokes the fix action for every AutoFixable Fail check. Checks that
// fail but are not AutoFixable are reported in NotAttempted so the caller is
// never misled into thinking they were handled. Under dryRun, no store
// mutation occurs; qualifying checks are reported in WouldFix instead.
func (d *Doctor) Fix(ctx context.Context, checks []DoctorCheck, dryRun bool) (FixResult, error) {
	var res FixResult

	for _, c := range checks {
		if c.Status != StatusFail {
			continue
		}
		if !c.AutoFixable {
			res.NotAttempted = append(res.NotAttempted, c.Name)
			continue
		}

		if dryRun {
			res.WouldFix = append(res.WouldFix, c.Name)
			continue
		}

		if err := d.Store.Delete(ctx, c.SessionName); err != nil {
			res.Failed = append(res.Failed, c.Name)
			continue
		}
		res.Fixed = append(res.Fixed, c.Name)
	}

	return res, nil
}

func listWorkspaceDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirs = append(dirs, filepath.Join(root, entry.Name()))
	}
	return dirs, nil
}
