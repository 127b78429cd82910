package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"

	"github.com/jjzio/jjz/pkg/errors"
	"github.com/jjzio/jjz/pkg/lockfile"
	"github.com/jjzio/jjz/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore is the Store implementation backed by modernc.org/sqlite, a
// pure-Go (no cgo) SQLite driver chosen so the binary stays trivially
// cross-compilable.
type SQLiteStore struct {
	db   *sql.DB
	lock *flock.Flock
}

// NewSessionStore opens (creating if necessary) the session store under
// dataDir, running any pending migrations.
func NewSessionStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.NewStoreError(fmt.Sprintf("failed to create data dir %s", dataDir), err)
	}

	dbPath := filepath.Join(dataDir, "state.db")
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewStoreError("failed to open session store", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	lockPath := filepath.Join(dataDir, "state.db.lock")
	lock := lockfile.NewTrackedLock(lockPath)

	return &SQLiteStore{db: db, lock: lock}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.NewStoreError("failed to set migration dialect", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return errors.NewStoreError("failed to run migrations", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	lockfile.ReleaseTrackedLock(s.lockPath(), s.lock)
	return s.db.Close()
}

func (s *SQLiteStore) lockPath() string {
	return s.lock.Path()
}

// withWriteLock acquires the store's machine-local exclusive lock for the
// duration of fn, failing fast with StoreLocked if another process holds it.
func (s *SQLiteStore) withWriteLock(fn func() error) error {
	locked, err := s.lock.TryLock()
	if err != nil {
		return errors.NewStoreError("failed to acquire store lock", err)
	}
	if !locked {
		return errors.NewStoreLockedError("another process is writing to the session store", nil)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			logger.Warnf("failed to release store lock: %v", err)
		}
	}()
	return fn()
}

// Create implements Store.
func (s *SQLiteStore) Create(ctx context.Context, sess Session) error {
	return s.withWriteLock(func() error {
		metadata, err := json.Marshal(sess.Metadata)
		if err != nil {
			return errors.NewStoreError("failed to encode session metadata", err)
		}

		now := time.Now().Unix()
		if sess.CreatedAt == 0 {
			sess.CreatedAt = now
		}
		if sess.UpdatedAt == 0 {
			sess.UpdatedAt = now
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO sessions
				(name, workspace_path, tab_name, branch, issue_id, status, created_at, updated_at, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sess.Name, sess.WorkspacePath, sess.TabName, nullable(sess.Branch), nullable(sess.IssueID),
			string(sess.Status), sess.CreatedAt, sess.UpdatedAt, string(metadata),
		)
		if err != nil {
			if isUniqueConstraintErr(err) {
				return errors.NewDuplicateNameError(fmt.Sprintf("session %q already exists", sess.Name), err)
			}
			return errors.NewStoreError("failed to create session", err)
		}
		return nil
	})
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, name string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, workspace_path, tab_name, branch, issue_id, status, created_at, updated_at,
		       metadata, removal_status, removal_error
		FROM sessions WHERE name = ?`, name)

	sess, err := scanSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Session{}, errors.NewSessionNotFoundError(fmt.Sprintf("no session named %q", name), nil)
		}
		return Session{}, errors.NewStoreError("failed to read session", err)
	}
	return sess, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]Session, error) {
	query := `
		SELECT name, workspace_path, tab_name, branch, issue_id, status, created_at, updated_at,
		       metadata, removal_status, removal_error
		FROM sessions`
	args := []any{}
	if filter.Status != "" {
		query += " WHERE status = ?"
		args = append(args, string(filter.Status))
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("failed to list sessions", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, errors.NewStoreError("failed to scan session row", err)
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("failed to iterate sessions", err)
	}
	return out, nil
}

// UpdateStatus implements Store.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, name string, newStatus Status) error {
	return s.withWriteLock(func() error {
		current, err := s.Get(ctx, name)
		if err != nil {
			return err
		}
		if !ValidTransition(current.Status, newStatus) {
			return errors.NewInvalidTransitionError(
				fmt.Sprintf("cannot transition %q from %s to %s", name, current.Status, newStatus), nil,
			)
		}

		_, err = s.db.ExecContext(ctx,
			`UPDATE sessions SET status = ?, updated_at = ? WHERE name = ?`,
			string(newStatus), time.Now().Unix(), name,
		)
		if err != nil {
			return errors.NewStoreError("failed to update session status", err)
		}
		return nil
	})
}

// MarkRemovalFailed implements Store.
func (s *SQLiteStore) MarkRemovalFailed(ctx context.Context, name, reason string) error {
	return s.withWriteLock(func() error {
		res, err := s.db.ExecContext(ctx,
			`UPDATE sessions SET removal_status = 'removal_failed', removal_error = ?, updated_at = ? WHERE name = ?`,
			reason, time.Now().Unix(), name,
		)
		if err != nil {
			return errors.NewStoreError("failed to record removal failure", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errors.NewSessionNotFoundError(fmt.Sprintf("no session named %q", name), nil)
		}
		return nil
	})
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	return s.withWriteLock(func() error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE name = ?`, name)
		if err != nil {
			return errors.NewStoreError("failed to delete session", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errors.NewSessionNotFoundError(fmt.Sprintf("no session named %q", name), nil)
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(r scanner) (Session, error) {
	var (
		sess            Session
		branch, issueID sql.NullString
		metadata        string
		removalStatus   sql.NullString
		removalError    sql.NullString
		status          string
	)

	if err := r.Scan(
		&sess.Name, &sess.WorkspacePath, &sess.TabName, &branch, &issueID, &status,
		&sess.CreatedAt, &sess.UpdatedAt, &metadata, &removalStatus, &removalError,
	); err != nil {
		return Session{}, err
	}

	sess.Status = Status(status)
	sess.Branch = branch.String
	sess.IssueID = issueID.String
	sess.RemovalStatus = removalStatus.String
	sess.RemovalError = removalError.String

	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &sess.Metadata); err != nil {
			return Session{}, fmt.Errorf("invalid metadata JSON: %w", err)
		}
	}
	return sess, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed: UNIQUE")
}
