package eval

import (
	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/types"
	"github.com/nbeerbower/hemlock/internal/value"
)

// evalExpr is the expression half of the evaluator's mutually recursive
// pair with execStmt. It returns Null whenever a control-flow flag is
// (or becomes) set: is_throwing, is_returning, is_breaking, or
// is_continuing.
func (i *Interpreter) evalExpr(e ast.Expr, env *environment.Environment) value.Value {
	if i.Ctx.Unwinding() {
		return value.Null()
	}
	switch n := e.(type) {
	case *ast.IntLit:
		if n.Is64 {
			return value.I64(n.Value)
		}
		return value.I32(int32(n.Value))
	case *ast.FloatLit:
		return value.F64(n.Value)
	case *ast.StringLit:
		return value.Heap(value.NewString(n.Value))
	case *ast.RuneLit:
		return value.Rune(n.Value)
	case *ast.BoolLit:
		return value.Bool(n.Value)
	case *ast.NullLit:
		return value.Null()
	case *ast.Identifier:
		return i.evalIdentifier(n, env)
	case *ast.BinaryExpr:
		return i.evalBinary(n, env)
	case *ast.LogicalExpr:
		return i.evalLogical(n, env)
	case *ast.UnaryExpr:
		return i.evalUnary(n, env)
	case *ast.IndexExpr:
		return i.evalIndex(n, env)
	case *ast.MemberExpr:
		return i.evalMember(n, env)
	case *ast.CallExpr:
		return i.evalCall(n, env)
	case *ast.ArrayLit:
		return i.evalArrayLit(n, env)
	case *ast.ObjectLit:
		return i.evalObjectLit(n, env)
	case *ast.FunctionLit:
		return i.evalFunctionLit(n, env)
	}
	i.throwf("unhandled expression node %T", e)
	return value.Null()
}

func (i *Interpreter) throw(v value.Value) { i.Ctx.Throw(v) }

func (i *Interpreter) throwf(format string, args ...interface{}) {
	i.Ctx.Throw(runtimeErrorf(format, args...))
}

func (i *Interpreter) evalIdentifier(n *ast.Identifier, env *environment.Environment) value.Value {
	v, ok := env.Get(n.Name)
	if !ok {
		i.throwf("undefined identifier %q", n.Name)
		return value.Null()
	}
	return v
}

func (i *Interpreter) evalLogical(n *ast.LogicalExpr, env *environment.Environment) value.Value {
	left := i.evalExpr(n.Left, env)
	if i.Ctx.Unwinding() {
		return value.Null()
	}
	switch n.Op {
	case "&&":
		if !left.Truthy() {
			return value.Bool(false)
		}
		right := i.evalExpr(n.Right, env)
		if i.Ctx.Unwinding() {
			return value.Null()
		}
		return value.Bool(right.Truthy())
	case "||":
		if left.Truthy() {
			return value.Bool(true)
		}
		right := i.evalExpr(n.Right, env)
		if i.Ctx.Unwinding() {
			return value.Null()
		}
		return value.Bool(right.Truthy())
	}
	i.throwf("unknown logical operator %q", n.Op)
	return value.Null()
}

func (i *Interpreter) evalUnary(n *ast.UnaryExpr, env *environment.Environment) value.Value {
	v := i.evalExpr(n.Operand, env)
	if i.Ctx.Unwinding() {
		return value.Null()
	}
	switch n.Op {
	case "-":
		if types.IsFloatKind(v.Kind()) {
			return types.MakeResult(v.Kind(), -types.AsFloat64(v), 0)
		}
		return types.MakeResult(v.Kind(), 0, -types.AsInt64(v))
	case "!":
		return value.Bool(!v.Truthy())
	case "~":
		return types.MakeResult(v.Kind(), 0, ^types.AsInt64(v))
	}
	i.throwf("unknown unary operator %q", n.Op)
	return value.Null()
}

func (i *Interpreter) evalBinary(n *ast.BinaryExpr, env *environment.Environment) value.Value {
	left := i.evalExpr(n.Left, env)
	if i.Ctx.Unwinding() {
		return value.Null()
	}
	right := i.evalExpr(n.Right, env)
	if i.Ctx.Unwinding() {
		return value.Null()
	}
	switch n.Op {
	case "==":
		return value.Bool(value.Equals(left, right))
	case "!=":
		return value.Bool(!value.Equals(left, right))
	case "<", "<=", ">", ">=":
		if !left.Kind().IsNumeric() || !right.Kind().IsNumeric() {
			i.throwf("comparison operator %q requires numeric operands", n.Op)
			return value.Null()
		}
		c := types.Compare(left, right)
		switch n.Op {
		case "<":
			return value.Bool(c < 0)
		case "<=":
			return value.Bool(c <= 0)
		case ">":
			return value.Bool(c > 0)
		default:
			return value.Bool(c >= 0)
		}
	case "+":
		if left.Kind() == value.KindString {
			return i.concatStrings(left, right)
		}
		return i.numericBinary(n.Op, left, right)
	case "-", "*", "/", "%", "&", "|", "^", "<<", ">>":
		return i.numericBinary(n.Op, left, right)
	}
	i.throwf("unknown binary operator %q", n.Op)
	return value.Null()
}

func (i *Interpreter) concatStrings(left, right value.Value) value.Value {
	ls, ok := left.Heap()
	if !ok {
		i.throwf("+ requires a string on the right when left is a string")
		return value.Null()
	}
	lsv := ls.(*value.StringVal)
	return value.Heap(value.NewString(lsv.String() + right.String()))
}

func (i *Interpreter) numericBinary(op string, left, right value.Value) value.Value {
	if !left.Kind().IsNumeric() || !right.Kind().IsNumeric() {
		i.throwf("operator %q requires numeric operands, got %s and %s", op, left.Kind(), right.Kind())
		return value.Null()
	}
	result, err := types.BinaryNumeric(op, left, right)
	if err != nil {
		i.throw(runtimeErrorf("%s", err.Error()))
		return value.Null()
	}
	return result
}

func (i *Interpreter) evalIndex(n *ast.IndexExpr, env *environment.Environment) value.Value {
	target := i.evalExpr(n.Target, env)
	if i.Ctx.Unwinding() {
		return value.Null()
	}
	idx := i.evalExpr(n.Index, env)
	if i.Ctx.Unwinding() {
		return value.Null()
	}
	return i.indexGet(target, idx)
}

func (i *Interpreter) indexGet(target, idx value.Value) value.Value {
	payload, ok := target.Heap()
	if !ok {
		i.throwf("cannot index value of kind %s", target.Kind())
		return value.Null()
	}
	switch p := payload.(type) {
	case *value.ArrayVal:
		n := int(types.AsInt64(idx))
		v, ok := p.Get(n)
		if !ok {
			i.throwf("array index %d out of range (length %d)", n, p.Len())
			return value.Null()
		}
		return v
	case *value.StringVal:
		n := int(types.AsInt64(idx))
		r, ok := p.CharAt(n)
		if !ok {
			i.throwf("string index %d out of range", n)
			return value.Null()
		}
		return value.Rune(r)
	case *value.BufferVal:
		n := int(types.AsInt64(idx))
		b, ok := p.Get(n)
		if !ok {
			i.throwf("buffer index %d out of range (length %d)", n, p.Len())
			return value.Null()
		}
		return value.U8(b)
	case *value.ObjectVal:
		if idx.Kind() != value.KindString {
			i.throwf("object index must be a string")
			return value.Null()
		}
		key := idx.String()
		v, ok := p.Get(key)
		if !ok {
			return value.Null()
		}
		return v
	}
	i.throwf("value of kind %s is not indexable", target.Kind())
	return value.Null()
}

func (i *Interpreter) evalMember(n *ast.MemberExpr, env *environment.Environment) value.Value {
	target := i.evalExpr(n.Target, env)
	if i.Ctx.Unwinding() {
		return value.Null()
	}
	return i.memberGet(target, n.Name)
}

func (i *Interpreter) memberGet(target value.Value, name string) value.Value {
	if target.Kind() == value.KindObject {
		payload, _ := target.Heap()
		obj := payload.(*value.ObjectVal)
		if v, ok := obj.Get(name); ok {
			return v
		}
	}
	if prop, ok := i.builtinProperty(target, name); ok {
		return prop
	}
	if m, ok := i.methods.Lookup(target.Kind(), name); ok {
		bound := target
		return value.Builtin(&value.BuiltinFn{
			Name: name,
			Call: func(args []value.Value, ctx interface{}) (value.Value, error) {
				return m(bound, args, i)
			},
		})
	}
	i.throwf("no member %q on value of kind %s", name, target.Kind())
	return value.Null()
}

func (i *Interpreter) evalArrayLit(n *ast.ArrayLit, env *environment.Environment) value.Value {
	elems := make([]value.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		v := i.evalExpr(el, env)
		if i.Ctx.Unwinding() {
			return value.Null()
		}
		elems = append(elems, v)
	}
	return value.Heap(value.NewArrayFrom(elems))
}

func (i *Interpreter) evalObjectLit(n *ast.ObjectLit, env *environment.Environment) value.Value {
	obj := value.NewObject()
	for _, f := range n.Fields {
		v := i.evalExpr(f.Value, env)
		if i.Ctx.Unwinding() {
			return value.Null()
		}
		obj.Set(f.Name, v)
	}
	return value.Heap(obj)
}

func (i *Interpreter) evalFunctionLit(n *ast.FunctionLit, env *environment.Environment) value.Value {
	params := make([]value.Param, 0, len(n.Params))
	for _, p := range n.Params {
		ann := ""
		if p.Annotation != nil {
			ann = p.Annotation.Name
		}
		params = append(params, value.Param{Name: p.Name, Annotation: ann, Default: p.Default})
	}
	retType := ""
	if n.ReturnType != nil {
		retType = n.ReturnType.Name
	}
	fv := value.NewFunction(n.Name, params, retType, n.Body, env, n.IsAsync)
	return value.Heap(fv)
}

func (i *Interpreter) evalCall(n *ast.CallExpr, env *environment.Environment) value.Value {
	var self *value.Value
	var fn value.Value
	if member, ok := n.Callee.(*ast.MemberExpr); ok {
		target := i.evalExpr(member.Target, env)
		if i.Ctx.Unwinding() {
			return value.Null()
		}
		self = &target
		fn = i.memberGet(target, member.Name)
		if i.Ctx.Unwinding() {
			return value.Null()
		}
	} else {
		fn = i.evalExpr(n.Callee, env)
		if i.Ctx.Unwinding() {
			return value.Null()
		}
	}

	args := make([]value.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v := i.evalExpr(a, env)
		if i.Ctx.Unwinding() {
			return value.Null()
		}
		args = append(args, v)
	}

	result, err := i.callValue(fn, args, self, n.Position)
	if err != nil {
		i.throw(runtimeErrorf("%s", err.Error()))
		return value.Null()
	}
	return result
}
