package methods

import (
	"testing"

	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectSerializeRendersFieldsInInsertionOrder(t *testing.T) {
	obj := value.NewObject()
	obj.Set("b", value.I32(2))
	obj.Set("a", value.I32(1))

	out := call(t, value.KindObject, "serialize", value.Heap(obj))
	assert.Equal(t, `{"b":2,"a":1}`, out.String())
}

func TestObjectSerializeNestedArrayAndString(t *testing.T) {
	obj := value.NewObject()
	obj.Set("name", value.Heap(value.NewString("hi")))
	obj.Set("tags", value.Heap(value.NewArrayFrom([]value.Value{value.I32(1), value.I32(2)})))

	out := call(t, value.KindObject, "serialize", value.Heap(obj))
	assert.Equal(t, `{"name":"hi","tags":[1,2]}`, out.String())
}

func TestObjectSerializeDetectsCycle(t *testing.T) {
	obj := value.NewObject()
	self := value.Heap(obj)
	obj.Set("self", self)

	fn, ok := Registry.Lookup(value.KindObject, "serialize")
	require.True(t, ok)
	_, err := fn(self, nil, nil)
	assert.Error(t, err)
}
