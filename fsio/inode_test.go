package fsio_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wardlem/fabricdb/fsio"
)

// TestDeferredCloseWaitsForUnlock exercises §4.4's deferred-close
// contract: closing a handle whose inode still has an active lock must
// not drop the lock a sibling handle depends on.
func TestDeferredCloseWaitsForUnlock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inode.tmp")

	fhA, err := fsio.CreateFile(path)
	require.NoError(t, err)

	fhB, err := fsio.OpenReadWrite(path)
	require.NoError(t, err)

	require.NoError(t, fsio.AcquireSharedLock(fhA))
	require.NoError(t, fsio.AcquireReservedLock(fhA))

	// Closing fhB while fhA still holds RESERVED must not release it: a
	// third handle attempting RESERVED should still see Busy afterward.
	require.NoError(t, fsio.Close(fhB))

	fhC, err := fsio.OpenReadWrite(path)
	require.NoError(t, err)
	defer fsio.Close(fhC)

	require.NoError(t, fsio.AcquireSharedLock(fhC))
	err = fsio.AcquireReservedLock(fhC)
	require.Error(t, err)

	require.NoError(t, fsio.Unlock(fhA))
	require.NoError(t, fsio.Close(fhA))
	require.NoError(t, fsio.Unlock(fhC))
}
