package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathForIsStable(t *testing.T) {
	dir := t.TempDir()

	a, err := PathFor(dir, "/srv/out")
	require.NoError(t, err)
	b, err := PathFor(dir, "/srv/out/")
	require.NoError(t, err)
	c, err := PathFor(dir, "/srv/other")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, dir, filepath.Dir(a))
	assert.Regexp(t, `^gestor-[0-9a-f]{16}\.lock$`, filepath.Base(a))
}

func TestTryLockExcludesSecondHolder(t *testing.T) {
	path, err := PathFor(t.TempDir(), "/srv/out")
	require.NoError(t, err)

	first := NewFileLock(path)
	ok, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	second := NewFileLock(path)
	ok, err = second.TryLock()
	require.NoError(t, err)
	assert.False(t, ok, "second lock should not be acquired while the first is held")

	require.NoError(t, first.Unlock())

	ok, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, second.Unlock())
}

func TestForTarget(t *testing.T) {
	lock, err := ForTarget("out")
	require.NoError(t, err)
	assert.NotEmpty(t, lock.Path())
}

func TestUnlockRemovesLockFile(t *testing.T) {
	path, err := PathFor(t.TempDir(), "/srv/out")
	require.NoError(t, err)

	lock := NewFileLock(path)
	ok, err := lock.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	assert.FileExists(t, path)

	require.NoError(t, lock.Unlock())
	assert.NoFileExists(t, path)

	// Unlocking again is harmless.
	require.NoError(t, lock.Unlock())
}

func TestTryLockRejectsRemovedFile(t *testing.T) {
	path, err := PathFor(t.TempDir(), "/srv/out")
	require.NoError(t, err)

	// Holding the lock on a file that a previous holder then removed.
	lock := NewFileLock(path)
	ok, err := lock.flock.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, os.Remove(path))

	ok, err = lock.TryLock()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, lock.flock.Locked())

	// A fresh file at the path is lockable again.
	ok, err = lock.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, lock.Unlock())
}
