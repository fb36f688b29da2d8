package types

import (
	"fmt"

	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/langerrors"
	"github.com/nbeerbower/hemlock/internal/value"
)

// Resolver lets the conversion algebra reach back into the evaluator for the
// two things it cannot do itself: evaluating a field's default expression in
// the assignment's environment, and looking up another named type
// definition. Kept as an interface so this package never imports the
// evaluator.
type Resolver interface {
	EvalDefault(expr ast.Expr) (value.Value, error)
	LookupType(name string) (*value.TypeDefVal, bool)
}

// MissingFieldError and FieldKindError are the duck-type conversion
// failure modes: a required field absent from the source, or present
// at an incompatible kind.
type MissingFieldError struct{ Field string }

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

type FieldKindError struct {
	Field    string
	Expected string
	Got      value.Kind
}

func (e *FieldKindError) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Expected, e.Got)
}

// ConvertPrimitive implements the narrowing/widening half of annotated
// assignment: a numeric value assigned to a variable annotated with a
// narrower or wider numeric kind is converted to that kind's storage
// representation. Non-numeric kinds must match exactly.
func ConvertPrimitive(v value.Value, kind value.Kind) (value.Value, error) {
	if v.Kind() == kind {
		return v, nil
	}
	if v.Kind().IsNumeric() && kind.IsNumeric() {
		if IsFloatKind(kind) {
			return MakeResult(kind, AsFloat64(v), 0), nil
		}
		return MakeResult(kind, 0, AsInt64(v)), nil
	}
	return value.Null(), langerrors.NewNoRetry(fmt.Errorf("cannot convert %s to %s", v.Kind(), kind))
}

// ConvertDuckType implements structural conversion: a value satisfies
// a `define T` annotation if it carries every required field at a
// compatible kind; optional fields missing from the source are filled
// from their default expression, evaluated in the assignment's
// environment. The result is a fresh object tagged with T's name,
// independent of the source.
func ConvertDuckType(v value.Value, td *value.TypeDefVal, r Resolver) (value.Value, error) {
	payload, ok := v.Heap()
	if !ok {
		return value.Null(), langerrors.NewNoRetry(fmt.Errorf("cannot convert %s to %s: not an object", v.Kind(), td.Name))
	}
	src, ok := payload.(*value.ObjectVal)
	if !ok {
		return value.Null(), langerrors.NewNoRetry(fmt.Errorf("cannot convert %s to %s: not an object", v.Kind(), td.Name))
	}

	out := value.NewObject()
	for _, fs := range td.Fields {
		fv, present := src.Get(fs.Name)
		switch {
		case present:
			converted, err := coerceField(fv, fs, r)
			if err != nil {
				return value.Null(), err
			}
			out.Set(fs.Name, converted)
		case fs.Optional && fs.Default != nil:
			dv, err := r.EvalDefault(fs.Default)
			if err != nil {
				return value.Null(), err
			}
			out.Set(fs.Name, dv)
		case fs.Optional:
			// No default: field simply stays absent.
		default:
			return value.Null(), &MissingFieldError{Field: fs.Name}
		}
	}
	out.SetTypeName(td.Name)
	return value.Heap(out), nil
}

func coerceField(fv value.Value, fs value.FieldSpec, r Resolver) (value.Value, error) {
	if fs.Annotation == "" {
		return fv, nil
	}
	if k, ok := value.KindFromName(fs.Annotation); ok {
		converted, err := ConvertPrimitive(fv, k)
		if err != nil {
			return value.Null(), &FieldKindError{Field: fs.Name, Expected: fs.Annotation, Got: fv.Kind()}
		}
		return converted, nil
	}
	if nested, ok := r.LookupType(fs.Annotation); ok {
		converted, err := ConvertDuckType(fv, nested, r)
		if err != nil {
			return value.Null(), err
		}
		return converted, nil
	}
	return value.Null(), langerrors.NewNoRetry(fmt.Errorf("unknown type annotation %q", fs.Annotation))
}
