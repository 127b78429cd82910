// Package lockfile provides a process-local registry of file locks so every
// lock acquired by the running process can be released on shutdown, even if
// the caller that acquired it never gets the chance to clean up (e.g. a
// recovered panic at the CLI boundary).
//
// pkg/store uses NewTrackedLock to implement the session store's
// machine-local single-writer lock.
package lockfile

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/jjzio/jjz/pkg/logger"
)

type lockRegistry struct {
	mu    sync.RWMutex
	locks map[string]*flock.Flock
}

// RegisterLock records lock under path so CleanupAll can release it later.
func (r *lockRegistry) RegisterLock(path string, lock *flock.Flock) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks[path] = lock
}

// UnregisterLock removes path from the registry without releasing it.
func (r *lockRegistry) UnregisterLock(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, path)
}

// CleanupAll unlocks and removes every lock file currently tracked.
func (r *lockRegistry) CleanupAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for path, lock := range r.locks {
		if err := lock.Unlock(); err != nil {
			logger.Warnf("failed to unlock %s: %v", path, err)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warnf("failed to remove lock file %s: %v", path, err)
		}
		delete(r.locks, path)
	}
}

var globalRegistry = &lockRegistry{locks: make(map[string]*flock.Flock)}

// NewTrackedLock creates a flock.Flock at path and registers it in the
// global registry so CleanupAllLocks can release it.
func NewTrackedLock(path string) *flock.Flock {
	lock := flock.New(path)
	globalRegistry.RegisterLock(path, lock)
	return lock
}

// ReleaseTrackedLock unlocks lock, removes its file, and unregisters it.
func ReleaseTrackedLock(path string, lock *flock.Flock) {
	if err := lock.Unlock(); err != nil {
		logger.Warnf("failed to unlock %s: %v", path, err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warnf("failed to remove lock file %s: %v", path, err)
	}
	globalRegistry.UnregisterLock(path)
}

// CleanupAllLocks releases every lock currently tracked in the global registry.
func CleanupAllLocks() {
	globalRegistry.CleanupAll()
}

// CleanupStaleLocks removes lock files under dirs that are older than maxAge
// and not currently held by any process. Intended to be run opportunistically
// on store open to reclaim locks abandoned by a process that crashed instead
// of releasing them cleanly.
func CleanupStaleLocks(dirs []string, maxAge time.Duration) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if time.Since(info.ModTime()) < maxAge {
				continue
			}

			lock := flock.New(path)
			locked, err := lock.TryLock()
			if err != nil || !locked {
				// Held by a live process (or inaccessible) — leave it alone.
				continue
			}
			_ = lock.Unlock()
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				logger.Warnf("failed to remove stale lock %s: %v", path, err)
			}
		}
	}
}
