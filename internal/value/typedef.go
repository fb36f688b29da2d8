package value

import "github.com/nbeerbower/hemlock/internal/ast"

// FieldSpec describes one field of a `define T {... }` duck-type definition.
type FieldSpec struct {
	Name       string
	Annotation string // primitive Kind name or another defined type's name
	Optional   bool
	Default    ast.Expr // nil if no default expression
}

// TypeDefVal is a heap payload wrapping a user-defined object type. It
// reuses KindType rather than introducing a new tag: a KindType Value with a
// nil heap names a primitive kind (see Value.AsTypeKind); a KindType Value
// with a non-nil heap of this type names a user-defined object type.
type TypeDefVal struct {
	RC
	Name   string
	Fields []FieldSpec
}

func (t *TypeDefVal) Kind() Kind     { return KindType }
func (t *TypeDefVal) Release() int32 { return t.Dec() }

// NewTypeDef constructs a Value wrapping a duck-type definition.
func NewTypeDef(name string, fields []FieldSpec) Value {
	return Heap(&TypeDefVal{RC: NewRC(), Name: name, Fields: fields})
}

// AsTypeDef returns the TypeDefVal if v is a KindType value naming a
// user-defined object type.
func (v Value) AsTypeDef() (*TypeDefVal, bool) {
	if v.kind != KindType {
		return nil, false
	}
	td, ok := v.heap.(*TypeDefVal)
	return td, ok
}
