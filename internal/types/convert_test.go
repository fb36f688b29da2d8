package types

import (
	"testing"

	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	types map[string]*value.TypeDefVal
}

func (s *stubResolver) EvalDefault(expr ast.Expr) (value.Value, error) {
	lit, ok := expr.(*ast.IntLit)
	if !ok {
		return value.Null(), nil
	}
	return value.I32(int32(lit.Value)), nil
}

func (s *stubResolver) LookupType(name string) (*value.TypeDefVal, bool) {
	td, ok := s.types[name]
	return td, ok
}

func TestConvertPrimitiveWidensAndNarrows(t *testing.T) {
	wide, err := ConvertPrimitive(value.I32(7), value.KindI64)
	require.NoError(t, err)
	assert.Equal(t, value.KindI64, wide.Kind())
	assert.Equal(t, int64(7), wide.AsInt64())

	narrow, err := ConvertPrimitive(value.I64(9), value.KindI32)
	require.NoError(t, err)
	assert.Equal(t, value.KindI32, narrow.Kind())
}

func TestConvertPrimitiveRejectsKindMismatch(t *testing.T) {
	str := value.Heap(value.NewStringBytes([]byte("x")))
	_, err := ConvertPrimitive(str, value.KindI32)
	assert.Error(t, err)
}

func TestConvertDuckTypeFillsOptionalDefault(t *testing.T) {
	td := &value.TypeDefVal{
		Name: "Point",
		Fields: []value.FieldSpec{
			{Name: "x", Annotation: "i32"},
			{Name: "y", Annotation: "i32", Optional: true, Default: &ast.IntLit{Value: 0}},
		},
	}
	src := value.NewObject()
	src.Set("x", value.I32(3))

	out, err := ConvertDuckType(value.Heap(src), td, &stubResolver{})
	require.NoError(t, err)
	assert.Equal(t, value.KindObject, out.Kind())

	payload, _ := out.Heap()
	obj := payload.(*value.ObjectVal)
	x, ok := obj.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(3), x.AsInt64())
	y, ok := obj.Get("y")
	require.True(t, ok)
	assert.Equal(t, int64(0), y.AsInt64())
}

func TestConvertDuckTypeErrorsOnMissingRequiredField(t *testing.T) {
	td := &value.TypeDefVal{
		Name: "Point",
		Fields: []value.FieldSpec{
			{Name: "x", Annotation: "i32"},
		},
	}
	src := value.NewObject()

	_, err := ConvertDuckType(value.Heap(src), td, &stubResolver{})
	require.Error(t, err)
	var mfe *MissingFieldError
	assert.ErrorAs(t, err, &mfe)
}
