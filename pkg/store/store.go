package store

import "context"

// Store is the persistent mapping from session name to Session (§4.4). The
// lifecycle engine (pkg/session) depends on this interface, not on any
// concrete backend; its tests use a SQLite store in a temporary directory.
type Store interface {
	// Create inserts a new session record. Fails with a DuplicateName error
	// if name already exists.
	Create(ctx context.Context, s Session) error
	// Get reads a session by name. Fails with a SessionNotFound error if
	// absent.
	Get(ctx context.Context, name string) (Session, error)
	// List returns sessions ordered by created_at, optionally filtered by
	// status.
	List(ctx context.Context, filter ListFilter) ([]Session, error)
	// UpdateStatus validates the transition against the state machine and
	// fails with an InvalidTransition error on violation.
	UpdateStatus(ctx context.Context, name string, newStatus Status) error
	// MarkRemovalFailed records removal_status/removal_error without
	// deleting the row.
	MarkRemovalFailed(ctx context.Context, name, reason string) error
	// Delete removes the row outright.
	Delete(ctx context.Context, name string) error
	// Close releases the store's resources, including its write lock.
	Close() error
}
