// Package session implements the lifecycle engine (SPEC_FULL.md §4.6): the
// ordered, compensable sequences of VCS/multiplexer/store operations behind
// `add`, `focus`, `remove`, and `done`. This is the one piece of business
// logic with no direct teacher analogue — the teacher orchestrates
// containers where jjz orchestrates a VCS workspace and a multiplexer tab.
package session

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jjzio/jjz/pkg/errors"
	"github.com/jjzio/jjz/pkg/logger"
	"github.com/jjzio/jjz/pkg/multiplexer"
	"github.com/jjzio/jjz/pkg/store"
	"github.com/jjzio/jjz/pkg/validate"
	"github.com/jjzio/jjz/pkg/vcs"
)

// IssueNotifier notifies an external issue tracker that a session completed.
// The default is a no-op; wiring a real bridge is out of scope (SPEC_FULL.md
// §4.6.4).
type IssueNotifier interface {
	NotifyCompleted(ctx context.Context, sess store.Session) error
}

// NoopNotifier is the default IssueNotifier.
type NoopNotifier struct{}

// NotifyCompleted implements IssueNotifier by doing nothing.
func (NoopNotifier) NotifyCompleted(context.Context, store.Session) error { return nil }

// Engine orchestrates the three external capabilities behind one consistent
// view of a Session's lifecycle.
type Engine struct {
	VCS           vcs.Capability
	Multiplexer   multiplexer.Capability
	Store         store.Store
	WorkspaceRoot string
	Notifier      IssueNotifier
}

// NewEngine builds an Engine with a no-op IssueNotifier.
func NewEngine(v vcs.Capability, m multiplexer.Capability, s store.Store, workspaceRoot string) *Engine {
	return &Engine{VCS: v, Multiplexer: m, Store: s, WorkspaceRoot: workspaceRoot, Notifier: NoopNotifier{}}
}

// AddOptions carries the optional inputs to Add.
type AddOptions struct {
	Branch  string
	IssueID string
}

// Add implements the `add` operation (SPEC_FULL.md §4.6.1).
func (e *Engine) Add(ctx context.Context, name string, opts AddOptions) (store.Session, error) {
	if _, err := e.VCS.CheckAvailable(ctx); err != nil {
		return store.Session{}, err
	}
	if err := validate.Name(name); err != nil {
		return store.Session{}, err
	}
	path, err := validate.WorkspacePath(e.WorkspaceRoot, name)
	if err != nil {
		return store.Session{}, err
	}

	sess := store.Session{
		Name:          name,
		WorkspacePath: path,
		TabName:       multiplexer.TabName(name),
		Branch:        opts.Branch,
		IssueID:       opts.IssueID,
		Status:        store.StatusActive,
	}

	if err := e.Store.Create(ctx, sess); err != nil {
		return store.Session{}, err
	}

	if err := e.VCS.CreateWorkspace(ctx, path, name); err != nil {
		if delErr := e.Store.Delete(ctx, name); delErr != nil {
			logger.Errorf("failed to compensate tentative record for %q after workspace creation failure: %v", name, delErr)
		}
		return store.Session{}, err
	}

	if e.Multiplexer.RunningInside() {
		if err := e.Multiplexer.CreateTab(ctx, sess.TabName, path); err != nil {
			logger.Warnf("failed to create multiplexer tab for %q: %v", name, err)
		}
	}

	return sess, nil
}

// Focus implements the `focus` operation (SPEC_FULL.md §4.6.2).
func (e *Engine) Focus(ctx context.Context, name string) (store.Session, error) {
	sess, err := e.Store.Get(ctx, name)
	if err != nil {
		return store.Session{}, err
	}

	if err := e.Multiplexer.FocusTab(ctx, sess.TabName); err != nil {
		if errors.IsVcsNotInstalled(err) {
			return store.Session{}, err
		}
		if !errors.IsTabNotFound(err) {
			return store.Session{}, errors.NewMultiplexerError("failed to focus session tab", err)
		}
		if createErr := e.Multiplexer.CreateTab(ctx, sess.TabName, sess.WorkspacePath); createErr != nil {
			return store.Session{}, errors.NewMultiplexerError("failed to recreate missing session tab", createErr)
		}
		if focusErr := e.Multiplexer.FocusTab(ctx, sess.TabName); focusErr != nil {
			return store.Session{}, errors.NewMultiplexerError("failed to focus recreated session tab", focusErr)
		}
	}

	return sess, nil
}

// RemoveOptions carries the optional inputs to Remove.
type RemoveOptions struct {
	// Force suppresses the interactive confirmation the CLI would otherwise
	// print before calling Remove; it has no effect on the engine's own
	// step ordering, which is unconditional.
	Force bool
}

// Remove implements the `remove` operation (SPEC_FULL.md §4.6.3).
func (e *Engine) Remove(ctx context.Context, name string, _ RemoveOptions) error {
	sess, err := e.Store.Get(ctx, name)
	if err != nil {
		return err
	}

	if err := e.Multiplexer.CloseTab(ctx, sess.TabName); err != nil {
		logger.Warnf("failed to close multiplexer tab for %q: %v", name, err)
	}

	if err := e.VCS.ForgetWorkspace(ctx, name); err != nil {
		logger.Warnf("failed to forget vcs workspace for %q: %v", name, err)
	}

	// Steps 5-6 (directory removal, then record delete) are not safely
	// resumable if interrupted between them: a killed process here leaves a
	// Type 1 orphan (record present, directory gone). SIGINT is buffered for
	// their duration and redelivered to the process right after step 6,
	// so an interrupt lands as soon as it's safe rather than mid-sequence.
	restore := maskInterrupt()
	rmErr := removeWorkspaceMasked(sess.WorkspacePath)
	if rmErr != nil {
		restore()
		if markErr := e.Store.MarkRemovalFailed(ctx, name, rmErr.Error()); markErr != nil {
			logger.Errorf("failed to record removal failure for %q: %v", name, markErr)
		}
		return errors.NewWorkspaceRemovalFailedError(
			"failed to remove workspace directory; session record preserved for retry", rmErr,
		)
	}

	delErr := e.Store.Delete(ctx, name)
	restore()
	if delErr != nil {
		return errors.NewStoreError(
			"workspace removed but session record could not be deleted; run `jjz doctor` to reconcile", delErr,
		)
	}

	return nil
}

// maskInterrupt buffers SIGINT delivery to this process until the returned
// func is called, at which point any buffered signal is redelivered. It
// guards the directory-removal/record-delete pair in Remove, which cannot be
// safely resumed if interrupted between them (SPEC_FULL.md §5).
func maskInterrupt() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT)
	return func() {
		signal.Stop(ch)
		close(ch)
		if _, buffered := <-ch; buffered {
			self, err := os.FindProcess(os.Getpid())
			if err == nil {
				_ = self.Signal(syscall.SIGINT)
			}
		}
	}
}

// DoneOptions carries the optional inputs to Done.
type DoneOptions struct {
	KeepWorkspace bool
	DryRun        bool
}

// DoneResult reports the outcome of Done. When DryRun is true, Session.Status
// is the would-be new status and no side effects occurred.
type DoneResult struct {
	Session store.Session
	DryRun  bool
}

// Done implements the `done` operation (SPEC_FULL.md §4.6.4). On success the
// record's status is strictly Completed or Merged, never Active: UpdateStatus
// is always called on the non-dry-run, non-error path, and its error is
// always propagated rather than swallowed in favor of a successful-looking
// return.
func (e *Engine) Done(ctx context.Context, name string, opts DoneOptions) (DoneResult, error) {
	if _, err := e.VCS.CheckAvailable(ctx); err != nil {
		return DoneResult{}, err
	}

	sess, err := e.Store.Get(ctx, name)
	if err != nil {
		return DoneResult{}, err
	}
	if sess.Status != store.StatusActive && sess.Status != store.StatusPaused {
		return DoneResult{}, errors.NewInvalidTransitionError(
			"done requires an Active or Paused session", nil,
		)
	}

	newStatus := store.StatusMerged
	if opts.KeepWorkspace {
		newStatus = store.StatusCompleted
	}

	if opts.DryRun {
		sess.Status = newStatus
		return DoneResult{Session: sess, DryRun: true}, nil
	}

	if !opts.KeepWorkspace {
		if err := e.VCS.Merge(ctx, sess.WorkspacePath, sess.Branch); err != nil {
			return DoneResult{}, err
		}
	}

	if err := e.Store.UpdateStatus(ctx, name, newStatus); err != nil {
		return DoneResult{}, err
	}
	sess.Status = newStatus

	if err := e.Notifier.NotifyCompleted(ctx, sess); err != nil {
		logger.Warnf("issue notifier failed for %q: %v", name, err)
	}

	return DoneResult{Session: sess}, nil
}

func removeWorkspaceMasked(path string) error {
	return os.RemoveAll(path)
}
