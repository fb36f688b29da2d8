// Package types implements the numeric promotion lattice and the
// duck-type conversion algebra used by annotated assignments.
package types

import "github.com/nbeerbower/hemlock/internal/value"

// rank gives each numeric kind its position in the promotion lattice: i8 <
// u8 < i16 < u16 < i32 < u32 < i64 < u64 < f32 < f64.
var rank = map[value.Kind]int{
	value.KindI8: 0, value.KindU8: 1, value.KindI16: 2, value.KindU16: 3,
	value.KindI32: 4, value.KindU32: 5, value.KindI64: 6, value.KindU64: 7,
	value.KindF32: 8, value.KindF64: 9,
}

// Join returns the higher-ranked of two numeric kinds in the lattice.
func Join(a, b value.Kind) value.Kind {
	if rank[a] >= rank[b] {
		return a
	}
	return b
}

// IsFloatKind reports whether k is f32 or f64.
func IsFloatKind(k value.Kind) bool { return k == value.KindF32 || k == value.KindF64 }

// ResultKind applies the storage-collapse rule: integer results of
// kind <= i32 are stored as i32, larger as i64; float results are f32
// or f64 mirroring the join.
func ResultKind(a, b value.Kind) value.Kind {
	j := Join(a, b)
	if IsFloatKind(j) {
		return j
	}
	if rank[j] <= rank[value.KindI32] {
		return value.KindI32
	}
	return value.KindI64
}

// AsFloat64 returns v's numeric value widened to float64, regardless
// of its concrete integer/float kind.
func AsFloat64(v value.Value) float64 {
	switch v.Kind() {
	case value.KindF32, value.KindF64:
		return v.AsFloat64()
	case value.KindU8, value.KindU16, value.KindU32, value.KindU64:
		return float64(v.AsUint64())
	default:
		return float64(v.AsInt64())
	}
}

// AsInt64 returns v's numeric value widened to int64 (meaningful only
// when the caller has already established the operation is integral).
func AsInt64(v value.Value) int64 {
	switch v.Kind() {
	case value.KindU8, value.KindU16, value.KindU32, value.KindU64:
		return int64(v.AsUint64())
	case value.KindF32, value.KindF64:
		return int64(v.AsFloat64())
	default:
		return v.AsInt64()
	}
}

// MakeResult builds a Value of the given result kind from a computed
// float64/int64 pair, selecting whichever the kind calls for.
func MakeResult(k value.Kind, asFloat float64, asInt int64) value.Value {
	switch k {
	case value.KindF32:
		return value.F32(float32(asFloat))
	case value.KindF64:
		return value.F64(asFloat)
	case value.KindI64:
		return value.I64(asInt)
	default:
		return value.I32(int32(asInt))
	}
}
