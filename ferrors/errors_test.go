package ferrors_test

import (
	"syscall"
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/require"

	"github.com/wardlem/fabricdb/ferrors"
)

func TestErrorMessageWithoutCause(t *testing.T) {
	err := ferrors.New(ferrors.Busy)
	require.Equal(t, "busy", err.Error())
}

func TestErrorMessageWithCause(t *testing.T) {
	err := ferrors.Wrap(ferrors.EIO, stderrors.New("disk exploded"))
	require.Contains(t, err.Error(), "i/o error")
	require.Contains(t, err.Error(), "disk exploded")
}

func TestIsMatchesSameCode(t *testing.T) {
	err := ferrors.New(ferrors.CacheFull)
	require.True(t, stderrors.Is(err, ferrors.New(ferrors.CacheFull)))
	require.False(t, stderrors.Is(err, ferrors.New(ferrors.Busy)))
}

func TestHasCode(t *testing.T) {
	err := ferrors.Wrap(ferrors.ShortRead, stderrors.New("eof"))
	require.True(t, ferrors.HasCode(err, ferrors.ShortRead))
	require.False(t, ferrors.HasCode(err, ferrors.ShortWrite))
	require.False(t, ferrors.HasCode(stderrors.New("plain"), ferrors.ShortRead))
}

func TestFromErrnoMapsKnownCodes(t *testing.T) {
	require.Equal(t, ferrors.ENOENT, ferrors.FromErrno(syscall.ENOENT).Code)
	require.Equal(t, ferrors.EACCES, ferrors.FromErrno(syscall.EACCES).Code)
	require.Equal(t, ferrors.ENOSPC, ferrors.FromErrno(syscall.ENOSPC).Code)
}

func TestFromErrnoUnknownFallsBackToEIO(t *testing.T) {
	require.Equal(t, ferrors.EIO, ferrors.FromErrno(stderrors.New("not an errno")).Code)
}
