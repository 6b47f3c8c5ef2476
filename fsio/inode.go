package fsio

import (
	"golang.org/x/sys/unix"

	"github.com/wardlem/fabricdb/fmutex"
)

// fileID identifies a file by the (device, inode) pair the kernel itself
// uses, so that two FileHandles opened from different paths that happen
// to refer to the same file still share one InodeInfo.
type fileID struct {
	device uint64
	inode  uint64
}

// InodeInfo is the state shared by every FileHandle open on the same
// underlying file. It exists because advisory locks acquired via fcntl
// are per-process, not per-file-descriptor: two FileHandles in the same
// process must coordinate here before either one touches the kernel
// lock, and closing one fd must not silently drop locks the others
// still need.
type InodeInfo struct {
	id              fileID
	refCount        int
	lockLevel       LockLevel
	sharedLockCount int
	lockCount       int
	unusedFiles     []int
}

var inodeTable = map[fileID]*InodeInfo{}

func fetchInodeInfo(fd int) (*InodeInfo, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, err
	}
	id := fileID{device: uint64(st.Dev), inode: uint64(st.Ino)}

	if info, ok := inodeTable[id]; ok {
		return info, nil
	}

	info := &InodeInfo{id: id}
	inodeTable[id] = info
	return info, nil
}

func (info *InodeInfo) addReference() {
	info.refCount++
}

func (info *InodeInfo) removeReference() {
	info.refCount--
	if info.refCount < 1 {
		delete(inodeTable, info.id)
	}
}

func (info *InodeInfo) closeUnusedFiles() {
	for _, fd := range info.unusedFiles {
		unix.Close(fd)
	}
	info.unusedFiles = nil
}

func withInodeMutex(f func()) {
	t := fmutex.Enter(fmutex.InodeMutex, nil)
	defer fmutex.Leave(t)
	f()
}
