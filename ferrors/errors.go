// Package ferrors implements the typed error taxonomy the storage
// substrate reports through. It replaces the original integer result
// codes (FABRICDB_OK, FABRICDB_BUSY, ...) with a Code enum wrapped in a
// Go error, following chirst-cdb's planner/errors.go sentinel-error
// convention but adding classification so callers can branch on Code
// the way the C source branches on the integer's class bits.
package ferrors

import "github.com/pkg/errors"

// Code classifies a storage-layer failure. The numeric values are
// assigned in declaration order, grouped loosely by class, and carry no
// class bits; callers should compare against the named constants, never
// the numeric value.
type Code int

const (
	// OK is never itself wrapped in an Error; it exists so Code has a
	// recognizable zero-is-success value for callers that store a Code
	// independently of an error.
	OK Code = iota

	Busy
	CacheFull
	CacheDuplicateEntry
	IndexOutOfBounds
	InvalidFile
	ShortRead
	ShortWrite
	ENOMEM

	MisuseNullPointer
	MisusePragma

	EACCES
	EEXIST
	EISDIR
	ELOOP
	EMFILE
	ENAMETOOLONG
	ENFILE
	ENOENT
	ENOSPC
	ENOTDIR
	EOVERFLOW
	EINVAL
	EFBIG
	EBADF
	ENOBUFS
	EIO
)

var names = map[Code]string{
	OK:                  "ok",
	Busy:                "busy",
	CacheFull:           "cache full",
	CacheDuplicateEntry: "cache duplicate entry",
	IndexOutOfBounds:    "index out of bounds",
	InvalidFile:         "invalid file",
	ShortRead:           "short read",
	ShortWrite:          "short write",
	ENOMEM:              "out of memory",
	MisuseNullPointer:   "null pointer misuse",
	MisusePragma:        "pragma changed after init",
	EACCES:              "permission denied",
	EEXIST:              "file exists",
	EISDIR:              "is a directory",
	ELOOP:               "too many symbolic links",
	EMFILE:              "too many open files",
	ENAMETOOLONG:        "name too long",
	ENFILE:              "too many open files in system",
	ENOENT:              "no such file or directory",
	ENOSPC:              "no space left on device",
	ENOTDIR:             "not a directory",
	EOVERFLOW:           "value too large",
	EINVAL:              "invalid argument",
	EFBIG:               "file too large",
	EBADF:               "bad file descriptor",
	ENOBUFS:             "no buffer space available",
	EIO:                 "i/o error",
}

// String returns the human-readable name for c.
func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "unknown error"
}

// Error is a typed storage-layer error carrying a Code and, optionally,
// the underlying cause (an errno-mapped syscall error, for instance).
type Error struct {
	Code  Code
	cause error
}

// New constructs an Error with no underlying cause.
func New(code Code) *Error {
	return &Error{Code: code}
}

// Wrap constructs an Error that attributes code to cause, preserving
// cause's stack trace via pkg/errors so it can still be inspected with
// errors.Cause.
func Wrap(code Code, cause error) *Error {
	return &Error{Code: code, cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Code.String() + ": " + e.cause.Error()
	}
	return e.Code.String()
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether err is an *Error with the same Code as this one,
// allowing errors.Is(err, ferrors.New(ferrors.Busy)) style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// HasCode reports whether err is an *Error carrying code.
func HasCode(err error, code Code) bool {
	var fe *Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Code == code
}
