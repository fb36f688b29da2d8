package builtin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileOpenWriteThenReadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	_, err := biFileOpen([]value.Value{
		value.Heap(value.NewString(path)),
		value.Heap(value.NewString("w")),
	}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	exists, err := biFileExists([]value.Value{value.Heap(value.NewString(path))}, nil)
	require.NoError(t, err)
	assert.True(t, exists.AsBool())
}

func TestFileOpenUnknownModeErrors(t *testing.T) {
	_, err := biFileOpen([]value.Value{
		value.Heap(value.NewString(filepath.Join(t.TempDir(), "x"))),
		value.Heap(value.NewString("bogus")),
	}, nil)
	assert.Error(t, err)
}

func TestFileRemoveDeletesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := biFileRemove([]value.Value{value.Heap(value.NewString(path))}, nil)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
