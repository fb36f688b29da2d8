package methods

import (
	"testing"

	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, kind value.Kind, name string, self value.Value, args ...value.Value) value.Value {
	t.Helper()
	fn, ok := Registry.Lookup(kind, name)
	require.True(t, ok, "method %q not registered for kind %v", name, kind)
	v, err := fn(self, args, nil)
	require.NoError(t, err)
	return v
}

func TestStringLengthCountsCodepointsNotBytes(t *testing.T) {
	s := value.Heap(value.NewString("héllo"))
	assert.Equal(t, int64(5), call(t, value.KindString, "length", s).AsInt64())
	assert.Equal(t, int64(6), call(t, value.KindString, "byte_length", s).AsInt64())
}

func TestStringSplitAndContains(t *testing.T) {
	s := value.Heap(value.NewString("a,b,c"))
	assert.True(t, call(t, value.KindString, "contains", s, value.Heap(value.NewString("b"))).Truthy())

	parts := call(t, value.KindString, "split", s, value.Heap(value.NewString(",")))
	payload, ok := parts.Heap()
	require.True(t, ok)
	arr := payload.(*value.ArrayVal)
	assert.Equal(t, 3, arr.Len())
}

func TestStringToUpperToLower(t *testing.T) {
	s := value.Heap(value.NewString("MiXeD"))
	upper := call(t, value.KindString, "to_upper", s)
	lower := call(t, value.KindString, "to_lower", s)
	assert.Equal(t, "MIXED", upper.String())
	assert.Equal(t, "mixed", lower.String())
}

func TestStringReplaceAllReplacesEveryOccurrence(t *testing.T) {
	s := value.Heap(value.NewString("a-b-c"))
	out := call(t, value.KindString, "replace_all", s,
		value.Heap(value.NewString("-")), value.Heap(value.NewString("_")))
	assert.Equal(t, "a_b_c", out.String())
}
