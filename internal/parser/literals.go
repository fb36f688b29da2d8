package parser

import (
	"strconv"

	"github.com/nbeerbower/hemlock/internal/ast"
)

// parseIntLit parses a decimal, hex (0x), or binary (0b) integer literal and
// records whether it fits in i32, matching: "integer literals are i32 if
// they fit, else i64".
func parseIntLit(lit string, pos ast.Pos) *ast.IntLit {
	var v int64
	var err error
	switch {
	case len(lit) > 1 && (lit[1] == 'x' || lit[1] == 'X'):
		var u uint64
		u, err = strconv.ParseUint(lit[2:], 16, 64)
		v = int64(u)
	case len(lit) > 1 && (lit[1] == 'b' || lit[1] == 'B'):
		var u uint64
		u, err = strconv.ParseUint(lit[2:], 2, 64)
		v = int64(u)
	default:
		v, err = strconv.ParseInt(lit, 10, 64)
	}
	if err != nil {
		// Overflow or malformed: fall back to unsigned parse so large
		// literals still produce a value rather than a parser error.
		if u, uerr := strconv.ParseUint(lit, 10, 64); uerr == nil {
			v = int64(u)
		}
	}
	e := &ast.IntLit{Value: v, Is64: v > (1<<31 - 1) || v < -(1 << 31)}
	e.Position = pos
	return e
}

func parseFloat(lit string) float64 {
	v, _ := strconv.ParseFloat(lit, 64)
	return v
}
