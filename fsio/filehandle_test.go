package fsio_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wardlem/fabricdb/ferrors"
	"github.com/wardlem/fabricdb/fsio"
)

func TestCreateThenOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tempfile.tmp")

	fh, err := fsio.CreateFile(path)
	require.NoError(t, err)
	require.NotNil(t, fh)

	_, err = fsio.CreateFile(path)
	require.True(t, ferrors.HasCode(err, ferrors.EEXIST))

	require.NoError(t, fsio.Close(fh))

	_, err = fsio.OpenReadOnly(filepath.Join(dir, "fakefile.tmp"))
	require.Error(t, err)
}

func TestReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.tmp")

	fh, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(fh)

	payload := []byte("0123456789")
	require.NoError(t, fsio.Write(fh, payload, 0))
	require.NoError(t, fsio.Sync(fh))

	buf := make([]byte, len(payload))
	require.NoError(t, fsio.Read(fh, buf, 0))
	require.Equal(t, payload, buf)

	size, err := fsio.FileSize(fh)
	require.NoError(t, err)
	require.Equal(t, int64(len(payload)), size)
}

func TestTruncate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trunc.tmp")

	fh, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(fh)

	require.NoError(t, fsio.Write(fh, []byte("hello world"), 0))
	require.NoError(t, fsio.Truncate(fh, 5))

	size, err := fsio.FileSize(fh)
	require.NoError(t, err)
	require.Equal(t, int64(5), size)
}

func TestShortReadPastEOF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.tmp")

	fh, err := fsio.CreateFile(path)
	require.NoError(t, err)
	defer fsio.Close(fh)

	require.NoError(t, fsio.Write(fh, []byte("ab"), 0))

	buf := make([]byte, 10)
	err = fsio.Read(fh, buf, 0)
	require.Error(t, err)
}
