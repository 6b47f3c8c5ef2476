package fsio

import (
	"golang.org/x/sys/unix"

	"github.com/wardlem/fabricdb/ferrors"
)

func setLock(fd int, start int64, lockType int16) error {
	flock := unix.Flock_t{
		Type:   lockType,
		Whence: int16(unix.SEEK_SET),
		Start:  start,
		Len:    1,
	}
	return unix.FcntlFlock(uintptr(fd), unix.F_SETLK, &flock)
}

func busyOrError(err error) error {
	if err == unix.EAGAIN || err == unix.EACCES {
		return ferrors.New(ferrors.Busy)
	}
	return ferrors.FromErrno(err)
}

// CheckReservedLock reports whether some process (possibly this one)
// holds a write lock on ReservedByte, without acquiring anything itself.
// Grounded on fdb_check_reserved_lock.
func CheckReservedLock(fh *FileHandle) (bool, error) {
	var reserved bool
	withInodeMutex(func() {
		reserved = fh.inode.lockLevel > SharedLock
	})
	if reserved {
		return true, nil
	}

	flock := unix.Flock_t{
		Type:   unix.F_WRLCK,
		Whence: int16(unix.SEEK_SET),
		Start:  ReservedByte,
		Len:    1,
	}
	if err := unix.FcntlFlock(uintptr(fh.fd), unix.F_GETLK, &flock); err != nil {
		return false, ferrors.FromErrno(err)
	}
	return flock.Type != unix.F_UNLCK, nil
}

// AcquireSharedLock upgrades fh to SharedLock, mediating through the
// shared InodeInfo so that any FileHandle in this process that already
// holds SHARED or RESERVED can join without touching the kernel.
// Returns Busy if another process holds at least PENDING.
func AcquireSharedLock(fh *FileHandle) error {
	if fh.lockLevel >= SharedLock {
		return nil
	}

	var rc error
	withInodeMutex(func() {
		info := fh.inode

		if info.lockLevel >= PendingLock {
			rc = ferrors.New(ferrors.Busy)
			return
		}

		if info.lockLevel == SharedLock || info.lockLevel == ReservedLock {
			fh.lockLevel = SharedLock
			info.sharedLockCount++
			info.lockCount++
			return
		}

		if err := setLock(fh.fd, PendingByte, unix.F_RDLCK); err != nil {
			rc = busyOrError(err)
			return
		}

		rc = setLock(fh.fd, SharedByte, unix.F_RDLCK)
		if rc != nil {
			rc = ferrors.FromErrno(rc)
		}

		if unlockErr := setLock(fh.fd, PendingByte, unix.F_UNLCK); unlockErr != nil && rc == nil {
			rc = ferrors.FromErrno(unlockErr)
		}

		if rc == nil {
			fh.lockLevel = SharedLock
			info.lockLevel = SharedLock
			info.lockCount++
			info.sharedLockCount = 1
		}
	})
	return rc
}

// AcquireReservedLock upgrades fh (which must already hold at least
// SharedLock) to ReservedLock, signaling writer intent to other
// processes. Returns Busy if any handle anywhere already holds
// RESERVED or higher.
func AcquireReservedLock(fh *FileHandle) error {
	if fh.lockLevel >= ReservedLock {
		return nil
	}

	var rc error
	withInodeMutex(func() {
		info := fh.inode

		if info.lockLevel >= ReservedLock {
			rc = ferrors.New(ferrors.Busy)
			return
		}

		if err := setLock(fh.fd, ReservedByte, unix.F_WRLCK); err != nil {
			rc = busyOrError(err)
			return
		}

		fh.lockLevel = ReservedLock
		info.lockLevel = ReservedLock
	})
	return rc
}

// AcquireExclusiveLock upgrades fh (which must already hold at least
// SharedLock) to ExclusiveLock by way of PendingLock. Returns Busy while
// other readers still hold SharedLock, leaving fh parked at PendingLock
// so a retry can complete once they release.
func AcquireExclusiveLock(fh *FileHandle) error {
	if fh.lockLevel == ExclusiveLock {
		return nil
	}

	var rc error
	withInodeMutex(func() {
		info := fh.inode

		if info.lockLevel != fh.lockLevel && info.lockLevel >= ReservedLock {
			rc = ferrors.New(ferrors.Busy)
			return
		}

		if fh.lockLevel < PendingLock {
			if err := setLock(fh.fd, PendingByte, unix.F_WRLCK); err != nil {
				rc = busyOrError(err)
				return
			}
		}

		fh.lockLevel = PendingLock
		info.lockLevel = PendingLock

		if info.sharedLockCount > 1 {
			rc = ferrors.New(ferrors.Busy)
			return
		}

		if err := setLock(fh.fd, SharedByte, unix.F_WRLCK); err != nil {
			rc = busyOrError(err)
			return
		}

		fh.lockLevel = ExclusiveLock
		info.lockLevel = ExclusiveLock
	})
	return rc
}

// DowngradeLock drops fh from RESERVED/PENDING/EXCLUSIVE back to SHARED.
// A handle already at SHARED or below is left unchanged.
func DowngradeLock(fh *FileHandle) error {
	if fh.lockLevel <= SharedLock {
		return nil
	}

	var rc error
	withInodeMutex(func() {
		info := fh.inode

		if err := setLock(fh.fd, SharedByte, unix.F_RDLCK); err != nil {
			rc = ferrors.FromErrno(err)
			return
		}
		if err := setLock(fh.fd, PendingByte, unix.F_UNLCK); err != nil {
			rc = ferrors.FromErrno(err)
			return
		}
		if err := setLock(fh.fd, ReservedByte, unix.F_UNLCK); err != nil {
			rc = ferrors.FromErrno(err)
			return
		}

		fh.lockLevel = SharedLock
		info.lockLevel = SharedLock
	})
	return rc
}

// Unlock releases fh's lock entirely, downgrading first if needed. When
// the last shared reference on the inode drops, the kernel SharedByte
// lock is released and any files deferred by Close are closed for real.
func Unlock(fh *FileHandle) error {
	if fh.lockLevel < SharedLock {
		return nil
	}

	if err := DowngradeLock(fh); err != nil {
		return err
	}

	var rc error
	withInodeMutex(func() {
		info := fh.inode

		info.sharedLockCount--
		if info.sharedLockCount == 0 {
			if err := setLock(fh.fd, SharedByte, unix.F_UNLCK); err != nil {
				rc = ferrors.FromErrno(err)
			}
			info.lockLevel = NoLock
		}

		info.lockCount--
		if info.lockCount == 0 {
			info.closeUnusedFiles()
		}

		fh.lockLevel = NoLock
	})
	return rc
}
