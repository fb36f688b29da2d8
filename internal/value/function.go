package value

import "github.com/nbeerbower/hemlock/internal/ast"

// Param describes one function parameter: its name, optional type
// constraint, and optional default-value expression.
type Param struct {
	Name       string
	Annotation string // "" when unconstrained
	Default    ast.Expr
}

// FunctionVal is the callable bundle backing the `function` kind. Closure is
// stored as interface{} (rather than a concrete *environment.Environment) so
// this package never imports internal/environment, which itself imports
// internal/value — the evaluator is the only place that needs both sides and
// performs the type assertion.
type FunctionVal struct {
	RC
	Name       string
	Params     []Param
	ReturnType string
	Body       *ast.BlockStmt
	Closure    interface{}
	IsAsync    bool

	// Compile-to-C backend interop: when Native is set, Body/Closure are unused
	// and calls go through Native instead.
	Native      func(args []Value) (Value, error)
	NativeEnv   interface{}
}

func (f *FunctionVal) Kind() Kind { return KindFunction }

// NewFunction constructs an interpreted function value.
func NewFunction(name string, params []Param, retType string, body *ast.BlockStmt, closure interface{}, isAsync bool) *FunctionVal {
	return &FunctionVal{
		RC: NewRC(), Name: name, Params: params, ReturnType: retType,
		Body: body, Closure: closure, IsAsync: isAsync,
	}
}

// NewNativeFunction constructs a compile-to-C-backend-style function value
// carrying a native pointer instead of an AST body.
func NewNativeFunction(name string, fn func(args []Value) (Value, error), env interface{}) *FunctionVal {
	return &FunctionVal{RC: NewRC(), Name: name, Native: fn, NativeEnv: env}
}

func (f *FunctionVal) Release() int32 { return f.Dec() }
