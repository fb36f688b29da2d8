package value

import (
	"fmt"
	"sync/atomic"
)

// HeapPayload is implemented by every refcounted heap kind. All of them,
// including Task, Channel, File and Socket, are defined in this package
// and embed RC.
type HeapPayload interface {
	Kind() Kind
	Retain()
	// Release decrements the refcount and runs deep release when it
	// reaches zero. Returns the refcount after the decrement.
	Release() int32
	RefCount() int32
}

// RC is an embeddable atomic refcount, shared by every payload defined
// in this package.
type RC struct {
	count int32
}

// NewRC returns an RC initialized to 1.
func NewRC() RC { return RC{count: 1} }

func (r *RC) Retain()        { atomic.AddInt32(&r.count, 1) }
func (r *RC) Dec() int32     { return atomic.AddInt32(&r.count, -1) }
func (r *RC) RefCount() int32 { return atomic.LoadInt32(&r.count) }

// BuiltinFn is a native closure wrapped by a builtin_fn Value. It is not
// refcounted.
type BuiltinFn struct {
	Name string
	Call func(args []Value, ctx interface{}) (Value, error)
}

// Value is the tagged dynamic value.
type Value struct {
	kind Kind

	ival int64   // i8/i16/i32/i64, bool(0/1), rune, ptr (as address), type-kind tag
	uval uint64  // u8/u16/u32/u64
	fval float64 // f32/f64

	heap    HeapPayload
	builtin *BuiltinFn
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// Heap returns the heap payload and true if v is a heap-kind value.
func (v Value) Heap() (HeapPayload, bool) {
	if v.heap != nil {
		return v.heap, true
	}
	return nil, false
}

// Builtin returns the wrapped native closure, if any.
func (v Value) Builtin() (*BuiltinFn, bool) {
	if v.builtin != nil {
		return v.builtin, true
	}
	return nil, false
}

// ---- Constructors ----

func Null() Value  { return Value{kind: KindNull} }
func Bool(b bool) Value {
	i := int64(0)
	if b {
		i = 1
	}
	return Value{kind: KindBool, ival: i}
}
func I8(x int8) Value   { return Value{kind: KindI8, ival: int64(x)} }
func I16(x int16) Value { return Value{kind: KindI16, ival: int64(x)} }
func I32(x int32) Value { return Value{kind: KindI32, ival: int64(x)} }
func I64(x int64) Value { return Value{kind: KindI64, ival: x} }
func U8(x uint8) Value   { return Value{kind: KindU8, uval: uint64(x)} }
func U16(x uint16) Value { return Value{kind: KindU16, uval: uint64(x)} }
func U32(x uint32) Value { return Value{kind: KindU32, uval: uint64(x)} }
func U64(x uint64) Value { return Value{kind: KindU64, uval: x} }
func F32(x float32) Value { return Value{kind: KindF32, fval: float64(x)} }
func F64(x float64) Value { return Value{kind: KindF64, fval: x} }
func Rune(r rune) Value   { return Value{kind: KindRune, ival: int64(r)} }
func Ptr(addr uintptr) Value { return Value{kind: KindPtr, ival: int64(addr)} }
func TypeVal(k Kind) Value   { return Value{kind: KindType, ival: int64(k)} }
func Builtin(b *BuiltinFn) Value { return Value{kind: KindBuiltinFn, builtin: b} }

// Heap wraps any HeapPayload as a Value of its own Kind.
func Heap(p HeapPayload) Value { return Value{kind: p.Kind(), heap: p} }

// ---- Numeric accessors ----

// AsInt64 returns the value's integer payload for any signed integer
// kind, bool, rune, or ptr.
func (v Value) AsInt64() int64 { return v.ival }

// AsUint64 returns the value's integer payload for any unsigned kind.
func (v Value) AsUint64() uint64 { return v.uval }

// AsFloat64 returns the value's float payload for f32/f64.
func (v Value) AsFloat64() float64 { return v.fval }

// AsBool returns the raw bool payload (KindBool only).
func (v Value) AsBool() bool { return v.ival != 0 }

// AsRune returns the raw rune payload (KindRune only).
func (v Value) AsRune() rune { return rune(v.ival) }

// AsTypeKind returns the Kind this KindType value names.
func (v Value) AsTypeKind() Kind { return Kind(v.ival) }

// ---- Retain / Release ----

// Retain increments the refcount of a heap value; no-op on inline
// primitives and builtin_fn.
func (v Value) Retain() {
	if v.heap != nil {
		v.heap.Retain()
	}
}

// Release decrements the refcount of a heap value, triggering deep
// release when it reaches zero; no-op on inline primitives.
func (v Value) Release() {
	if v.heap != nil {
		v.heap.Release()
	}
}

// ---- Truthiness ----

// Truthy implements "null/false/0/empty-string/empty-array are false;
// everything else true".
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.ival != 0
	case KindI8, KindI16, KindI32, KindI64, KindRune:
		return v.ival != 0
	case KindU8, KindU16, KindU32, KindU64:
		return v.uval != 0
	case KindF32, KindF64:
		return v.fval != 0
	case KindString:
		if s, ok := v.heap.(*StringVal); ok {
			return s.ByteLen() > 0
		}
		return false
	case KindArray:
		if a, ok := v.heap.(*ArrayVal); ok {
			return a.Len() > 0
		}
		return false
	default:
		return true
	}
}

// String renders a printable representation.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.AsBool())
	case KindI8, KindI16, KindI32, KindI64:
		return fmt.Sprintf("%d", v.ival)
	case KindU8, KindU16, KindU32, KindU64:
		return fmt.Sprintf("%d", v.uval)
	case KindF32, KindF64:
		return formatFloat(v.fval)
	case KindRune:
		return string(rune(v.ival))
	case KindPtr:
		return fmt.Sprintf("0x%x", v.ival)
	case KindType:
		if td, ok := v.heap.(*TypeDefVal); ok {
			return td.Name
		}
		return v.AsTypeKind().String()
	case KindString:
		if s, ok := v.heap.(*StringVal); ok {
			return s.String()
		}
	case KindArray:
		if a, ok := v.heap.(*ArrayVal); ok {
			return a.Render()
		}
	case KindObject:
		if o, ok := v.heap.(*ObjectVal); ok {
			return o.Render()
		}
	case KindFunction:
		return "<function>"
	case KindBuiltinFn:
		if v.builtin != nil {
			return "<builtin " + v.builtin.Name + ">"
		}
	case KindFile:
		return "<file>"
	case KindTask:
		return "<task>"
	case KindChannel:
		return "<channel>"
	case KindSocket:
		return "<socket>"
	case KindBuffer:
		if b, ok := v.heap.(*BufferVal); ok {
			return fmt.Sprintf("<buffer len=%d>", b.Len())
		}
	}
	return "<?>"
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	// Ensure integral floats still render with a decimal point so typeof(f64)
	// values are visually distinguishable from integers (e.g. "3.5" not "3").
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return s
		}
	}
	return s + ".0"
}
