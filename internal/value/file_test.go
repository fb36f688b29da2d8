package value

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriteReadRoundTrip(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "hemlock-file-test")
	require.NoError(t, err)

	f := NewFile(tmp, tmp.Name(), "rw")
	n, err := f.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = f.Seek(0, os.SEEK_SET)
	require.NoError(t, err)

	data, err := f.Read(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFileCloseIsIdempotent(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "hemlock-file-test")
	require.NoError(t, err)

	f := NewFile(tmp, tmp.Name(), "rw")
	require.NoError(t, f.Close())
	assert.True(t, f.IsClosed())
	assert.NoError(t, f.Close())
}

func TestFileOperationsFailAfterClose(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "hemlock-file-test")
	require.NoError(t, err)

	f := NewFile(tmp, tmp.Name(), "rw")
	require.NoError(t, f.Close())

	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)
	_, err = f.Read(1)
	assert.ErrorIs(t, err, os.ErrClosed)
	_, err = f.Seek(0, os.SEEK_SET)
	assert.ErrorIs(t, err, os.ErrClosed)
}
