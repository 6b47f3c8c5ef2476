package ferrors

import (
	"errors"
	"syscall"
)

// FromErrno classifies a syscall error into a storage Code, mirroring
// fdb_ioerror_from_errno's switch over errno. Any syscall.Errno not named
// explicitly falls back to EIO, exactly as the source's switch falls
// through to its EIO default.
func FromErrno(err error) *Error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return Wrap(EIO, err)
	}

	var code Code
	switch errno {
	case syscall.EACCES:
		code = EACCES
	case syscall.EEXIST:
		code = EEXIST
	case syscall.EISDIR:
		code = EISDIR
	case syscall.ELOOP:
		code = ELOOP
	case syscall.EMFILE:
		code = EMFILE
	case syscall.ENAMETOOLONG:
		code = ENAMETOOLONG
	case syscall.ENFILE:
		code = ENFILE
	case syscall.ENOENT:
		code = ENOENT
	case syscall.ENOSPC:
		code = ENOSPC
	case syscall.ENOTDIR:
		code = ENOTDIR
	case syscall.EOVERFLOW:
		code = EOVERFLOW
	case syscall.EINVAL:
		code = EINVAL
	case syscall.EFBIG:
		code = EFBIG
	case syscall.EBADF:
		code = EBADF
	case syscall.ENOBUFS:
		code = ENOBUFS
	case syscall.ENOMEM:
		code = ENOMEM
	default:
		code = EIO
	}

	return Wrap(code, err)
}
