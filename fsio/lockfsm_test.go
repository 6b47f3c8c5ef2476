package fsio_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wardlem/fabricdb/ferrors"
	"github.com/wardlem/fabricdb/fsio"
)

func TestAcquireSharedThenUnlockReturnsToNoLock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lock.tmp")
	fh, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(fh)

	require.NoError(t, fsio.AcquireSharedLock(fh))
	require.Equal(t, fsio.SharedLock, fh.LockLevel())

	require.NoError(t, fsio.Unlock(fh))
	require.Equal(t, fsio.NoLock, fh.LockLevel())
}

func TestSharedThenReservedThenExclusive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lock.tmp")
	fh, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(fh)

	require.NoError(t, fsio.AcquireSharedLock(fh))
	require.NoError(t, fsio.AcquireReservedLock(fh))
	require.Equal(t, fsio.ReservedLock, fh.LockLevel())

	require.NoError(t, fsio.AcquireExclusiveLock(fh))
	require.Equal(t, fsio.ExclusiveLock, fh.LockLevel())

	require.NoError(t, fsio.Unlock(fh))
	require.Equal(t, fsio.NoLock, fh.LockLevel())
}

func TestDowngradeFromExclusive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lock.tmp")
	fh, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(fh)

	require.NoError(t, fsio.AcquireSharedLock(fh))
	require.NoError(t, fsio.AcquireReservedLock(fh))
	require.NoError(t, fsio.AcquireExclusiveLock(fh))

	require.NoError(t, fsio.DowngradeLock(fh))
	require.Equal(t, fsio.SharedLock, fh.LockLevel())
}

// TestExclusiveBusyWhileOtherHandleShared mirrors spec.md §8 scenario 5:
// a handle that upgrades to exclusive while a second handle still holds
// SHARED advances to PENDING but reports Busy rather than blocking.
func TestExclusiveBusyWhileOtherHandleShared(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lock.tmp")

	fhA, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(fhA)

	fhB, err := fsio.OpenReadWrite(path)
	require.NoError(t, err)
	defer fsio.Close(fhB)

	require.NoError(t, fsio.AcquireSharedLock(fhA))
	require.NoError(t, fsio.AcquireSharedLock(fhB))

	err = fsio.AcquireExclusiveLock(fhA)
	require.True(t, ferrors.HasCode(err, ferrors.Busy))
}

func TestReservedBusyWhenAlreadyReserved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lock.tmp")

	fhA, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(fhA)

	fhB, err := fsio.OpenReadWrite(path)
	require.NoError(t, err)
	defer fsio.Close(fhB)

	require.NoError(t, fsio.AcquireSharedLock(fhA))
	require.NoError(t, fsio.AcquireSharedLock(fhB))
	require.NoError(t, fsio.AcquireReservedLock(fhA))

	err = fsio.AcquireReservedLock(fhB)
	require.True(t, ferrors.HasCode(err, ferrors.Busy))
}

func TestCheckReservedLock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lock.tmp")

	fhA, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(fhA)

	fhB, err := fsio.OpenReadWrite(path)
	require.NoError(t, err)
	defer fsio.Close(fhB)

	held, err := fsio.CheckReservedLock(fhB)
	require.NoError(t, err)
	require.False(t, held)

	require.NoError(t, fsio.AcquireSharedLock(fhA))
	require.NoError(t, fsio.AcquireReservedLock(fhA))

	held, err = fsio.CheckReservedLock(fhB)
	require.NoError(t, err)
	require.True(t, held)
}

// TestConcurrentExclusiveInProcess mirrors the teacher's
// TestMultipleExclusive: goroutines racing for EXCLUSIVE on distinct
// FileHandles sharing one InodeInfo must never both succeed at once. Each
// worker takes SHARED then RESERVED, releasing and retrying on Busy, so
// that only the RESERVED holder waits for the other readers to drain
// before EXCLUSIVE.
func TestConcurrentExclusiveInProcess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lock.tmp")
	seed, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(seed)

	const workers = 4
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		inCritical int
		sawOverlap bool
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			fh, err := fsio.OpenReadWrite(path)
			require.NoError(t, err)
			defer fsio.Close(fh)

			for {
				if err := fsio.AcquireSharedLock(fh); err != nil {
					require.True(t, ferrors.HasCode(err, ferrors.Busy))
					time.Sleep(time.Millisecond)
					continue
				}
				err := fsio.AcquireReservedLock(fh)
				if err == nil {
					break
				}
				require.True(t, ferrors.HasCode(err, ferrors.Busy))
				require.NoError(t, fsio.Unlock(fh))
				time.Sleep(time.Millisecond)
			}
			for {
				err := fsio.AcquireExclusiveLock(fh)
				if err == nil {
					break
				}
				if ferrors.HasCode(err, ferrors.Busy) {
					time.Sleep(time.Millisecond)
					continue
				}
				require.NoError(t, err)
			}

			mu.Lock()
			inCritical++
			if inCritical > 1 {
				sawOverlap = true
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inCritical--
			mu.Unlock()

			require.NoError(t, fsio.Unlock(fh))
		}()
	}
	wg.Wait()

	require.False(t, sawOverlap, "two or more handles held EXCLUSIVE at once")
}
