package builtin

import (
	"math"

	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/value"
)

// primitiveKindNames lists the type-kind constants names explicitly
// ("i8…f64, ptr, buffer") plus the rest of the closed Kind enum, bound as
// `type` Values so scripts can compare against `typeof(x)`.
var primitiveKindNames = []string{
	"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64",
	"bool", "rune", "ptr", "string", "buffer", "array", "object",
	"function", "file", "task", "channel", "socket",
}

// socketConstants names the address/protocol family and type constants IPv4
// socket builtins use.
var socketConstants = map[string]int32{
	"AF_INET":     2,
	"SOCK_STREAM": 1,
	"SOCK_DGRAM":  2,
}

// mathConstants binds the handful of named floating-point constants
// math builtins commonly reference.
var mathConstants = map[string]float64{
	"PI":  math.Pi,
	"E":   math.E,
	"INF": math.Inf(1),
}

func bindConstants(global *environment.Environment) {
	for _, name := range primitiveKindNames {
		k, ok := value.KindFromName(name)
		if !ok {
			continue
		}
		global.Define(name, value.TypeVal(k))
	}
	for name, v := range socketConstants {
		global.Define(name, value.I32(v))
	}
	for name, v := range mathConstants {
		global.Define(name, value.F64(v))
	}
	bindSignalConstants(global)
}
