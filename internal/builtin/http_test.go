package builtin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGetReturnsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	out, err := biHTTPGet([]value.Value{value.Heap(value.NewString(srv.URL))}, nil)
	require.NoError(t, err)
	payload, _ := out.Heap()
	obj := payload.(*value.ObjectVal)
	status, ok := obj.Get("status")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusCreated), status.AsInt64())
	body, ok := obj.Get("body")
	require.True(t, ok)
	assert.Equal(t, "hello", body.String())
}

func TestHTTPGetMissingURLErrors(t *testing.T) {
	_, err := biHTTPGet(nil, nil)
	assert.Error(t, err)
}
