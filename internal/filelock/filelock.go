// Package filelock keeps two gestor processes from moving files into the
// same target directory at once.
package filelock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileLock wraps a flock file lock for coordinating access to a target.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// PathFor returns the lock file used for target. The lock lives in dir, named
// after a hash of the target's absolute path, so the target tree itself never
// gains an extra file.
func PathFor(dir, target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve target %s: %w", target, err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, "gestor-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// ForTarget returns the lock guarding target, with its file in the OS temp
// directory.
func ForTarget(target string) (*FileLock, error) {
	path, err := PathFor(os.TempDir(), target)
	if err != nil {
		return nil, err
	}
	return NewFileLock(path), nil
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held by another process.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	if !acquired {
		return false, nil
	}

	// The previous holder removes the file on release. A lock taken on a
	// file that is no longer at path guards nothing.
	held, err := fl.flock.Stat()
	if err == nil {
		var onDisk os.FileInfo
		onDisk, err = os.Stat(fl.path)
		if err == nil && os.SameFile(held, onDisk) {
			return true, nil
		}
	}
	if err := fl.flock.Unlock(); err != nil {
		return false, fmt.Errorf("failed to release stale lock on %s: %w", fl.path, err)
	}
	return false, nil
}

// Unlock removes the lock file and releases the lock. The file is removed
// while the lock is still held.
func (fl *FileLock) Unlock() error {
	if fl.flock.Locked() {
		if err := os.Remove(fl.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove lock file %s: %w", fl.path, err)
		}
	}

	err := fl.flock.Unlock()
	if err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}
