package builtin

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "sqrt", Call: unaryMath(math.Sqrt)})
	Register(&Info{Name: "abs", Call: unaryMath(math.Abs)})
	Register(&Info{Name: "floor", Call: unaryMath(math.Floor)})
	Register(&Info{Name: "ceil", Call: unaryMath(math.Ceil)})
	Register(&Info{Name: "round", Call: unaryMath(math.Round)})
	Register(&Info{Name: "pow", Call: biPow})
	Register(&Info{Name: "min", Call: biMin})
	Register(&Info{Name: "max", Call: biMax})
	Register(&Info{Name: "random", Call: biRandom})
}

func argFloat(args []value.Value, i int) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing numeric argument %d", i)
	}
	switch args[i].Kind() {
	case value.KindF32, value.KindF64:
		return args[i].AsFloat64(), nil
	case value.KindU8, value.KindU16, value.KindU32, value.KindU64:
		return float64(args[i].AsUint64()), nil
	default:
		return float64(args[i].AsInt64()), nil
	}
}

func unaryMath(fn func(float64) float64) func([]value.Value, interface{}) (value.Value, error) {
	return func(args []value.Value, ctx interface{}) (value.Value, error) {
		x, err := argFloat(args, 0)
		if err != nil {
			return value.Null(), err
		}
		return value.F64(fn(x)), nil
	}
}

func biPow(args []value.Value, ctx interface{}) (value.Value, error) {
	x, err := argFloat(args, 0)
	if err != nil {
		return value.Null(), err
	}
	y, err := argFloat(args, 1)
	if err != nil {
		return value.Null(), err
	}
	return value.F64(math.Pow(x, y)), nil
}

func biMin(args []value.Value, ctx interface{}) (value.Value, error) {
	x, err := argFloat(args, 0)
	if err != nil {
		return value.Null(), err
	}
	y, err := argFloat(args, 1)
	if err != nil {
		return value.Null(), err
	}
	return value.F64(math.Min(x, y)), nil
}

func biMax(args []value.Value, ctx interface{}) (value.Value, error) {
	x, err := argFloat(args, 0)
	if err != nil {
		return value.Null(), err
	}
	y, err := argFloat(args, 1)
	if err != nil {
		return value.Null(), err
	}
	return value.F64(math.Max(x, y)), nil
}

func biRandom(args []value.Value, ctx interface{}) (value.Value, error) {
	return value.F64(rand.Float64()), nil
}
