package eval

import (
	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/value"
)

// execBlock runs a block in a fresh child environment: block statements
// push an inner environment for their duration.
func (i *Interpreter) execBlock(b *ast.BlockStmt, env *environment.Environment) {
	inner := env.Child()
	for _, s := range b.Stmts {
		i.execStmt(s, inner)
		if i.Ctx.Unwinding() {
			return
		}
	}
}

// execStmt is the statement half of the evaluator's mutually recursive
// pair with evalExpr. It mutates context flags rather than returning a
// value.
func (i *Interpreter) execStmt(s ast.Stmt, env *environment.Environment) {
	if i.Ctx.Unwinding() {
		return
	}
	switch n := s.(type) {
	case *ast.BlockStmt:
		i.execBlock(n, env)
	case *ast.LetStmt:
		i.execLet(n, env)
	case *ast.AssignStmt:
		i.execAssign(n, env)
	case *ast.ExprStmt:
		i.evalExpr(n.Expr, env)
	case *ast.IfStmt:
		i.execIf(n, env)
	case *ast.WhileStmt:
		i.execWhile(n, env)
	case *ast.ForStmt:
		i.execFor(n, env)
	case *ast.ForInStmt:
		i.execForIn(n, env)
	case *ast.SwitchStmt:
		i.execSwitch(n, env)
	case *ast.BreakStmt:
		i.Ctx.IsBreaking = true
	case *ast.ContinueStmt:
		i.Ctx.IsContinuing = true
	case *ast.ReturnStmt:
		i.execReturn(n, env)
	case *ast.ThrowStmt:
		i.execThrow(n, env)
	case *ast.TryStmt:
		i.execTry(n, env)
	case *ast.DeferStmt:
		i.Ctx.PushDefer(n.Call, env)
	case *ast.DefineStmt:
		i.execDefine(n, env)
	case *ast.ImportStmt:
		// Module resolution is out-of-scope for core semantics; the core
		// only observes names that end up bound in the root environment
		// by whatever loaded the module.
	case *ast.ExportStmt:
		i.execStmt(n.Inner, env)
	default:
		i.throwf("unhandled statement node %T", s)
	}
}

func (i *Interpreter) execLet(n *ast.LetStmt, env *environment.Environment) {
	v := i.evalExpr(n.Value, env)
	if i.Ctx.Unwinding() {
		return
	}
	if n.Annotation != nil {
		converted, err := i.convertAnnotated(v, n.Annotation.Name, env)
		if err != nil {
			i.throw(runtimeErrorf("%s", err.Error()))
			return
		}
		v = converted
	}
	env.Define(n.Name, v)
}

func (i *Interpreter) execAssign(n *ast.AssignStmt, env *environment.Environment) {
	newVal := i.evalExpr(n.Value, env)
	if i.Ctx.Unwinding() {
		return
	}
	if n.Op != "=" {
		cur := i.evalExpr(n.Target, env)
		if i.Ctx.Unwinding() {
			return
		}
		op := n.Op[:len(n.Op)-1] // "+=" -> "+"
		if op == "+" && cur.Kind() == value.KindString {
			newVal = i.concatStrings(cur, newVal)
		} else {
			newVal = i.numericBinary(op, cur, newVal)
		}
		if i.Ctx.Unwinding() {
			return
		}
	}
	i.assignTo(n.Target, newVal, env)
}

func (i *Interpreter) assignTo(target ast.Expr, v value.Value, env *environment.Environment) {
	switch t := target.(type) {
	case *ast.Identifier:
		if err := env.Set(t.Name, v); err != nil {
			i.throw(runtimeErrorf("%s", err.Error()))
		}
	case *ast.IndexExpr:
		recv := i.evalExpr(t.Target, env)
		if i.Ctx.Unwinding() {
			return
		}
		idx := i.evalExpr(t.Index, env)
		if i.Ctx.Unwinding() {
			return
		}
		i.indexSet(recv, idx, v)
	case *ast.MemberExpr:
		recv := i.evalExpr(t.Target, env)
		if i.Ctx.Unwinding() {
			return
		}
		if recv.Kind() != value.KindObject {
			i.throwf("cannot assign member %q on value of kind %s", t.Name, recv.Kind())
			return
		}
		payload, _ := recv.Heap()
		payload.(*value.ObjectVal).Set(t.Name, v)
	default:
		i.throwf("invalid assignment target %T", target)
	}
}

func (i *Interpreter) indexSet(recv, idx, v value.Value) {
	payload, ok := recv.Heap()
	if !ok {
		i.throwf("cannot index-assign value of kind %s", recv.Kind())
		return
	}
	switch p := payload.(type) {
	case *value.ArrayVal:
		n := int(valueAsInt(idx))
		if !p.CheckElem(v) {
			i.throwf("array element type mismatch at index %d", n)
			return
		}
		if !p.Set(n, v) {
			i.throwf("array index %d out of range (length %d)", n, p.Len())
		}
	case *value.BufferVal:
		n := int(valueAsInt(idx))
		if !p.Set(n, byte(valueAsInt(v))) {
			i.throwf("buffer index %d out of range (length %d)", n, p.Len())
		}
	case *value.ObjectVal:
		if idx.Kind() != value.KindString {
			i.throwf("object index must be a string")
			return
		}
		p.Set(idx.String(), v)
	default:
		i.throwf("value of kind %s is not index-assignable", recv.Kind())
	}
}

func valueAsInt(v value.Value) int64 {
	switch v.Kind() {
	case value.KindU8, value.KindU16, value.KindU32, value.KindU64:
		return int64(v.AsUint64())
	default:
		return v.AsInt64()
	}
}

func (i *Interpreter) execIf(n *ast.IfStmt, env *environment.Environment) {
	cond := i.evalExpr(n.Cond, env)
	if i.Ctx.Unwinding() {
		return
	}
	if cond.Truthy() {
		i.execBlock(n.Then, env)
		return
	}
	if n.Else != nil {
		i.execStmt(n.Else, env)
	}
}

func (i *Interpreter) execWhile(n *ast.WhileStmt, env *environment.Environment) {
	for {
		cond := i.evalExpr(n.Cond, env)
		if i.Ctx.Unwinding() {
			return
		}
		if !cond.Truthy() {
			return
		}
		i.execBlock(n.Body, env)
		if i.Ctx.IsBreaking {
			i.Ctx.IsBreaking = false
			return
		}
		if i.Ctx.IsContinuing {
			i.Ctx.IsContinuing = false
			continue
		}
		if i.Ctx.IsThrowing || i.Ctx.IsReturning {
			return
		}
	}
}

func (i *Interpreter) execFor(n *ast.ForStmt, env *environment.Environment) {
	loopEnv := env.Child()
	if n.Init != nil {
		i.execStmt(n.Init, loopEnv)
		if i.Ctx.Unwinding() {
			return
		}
	}
	for {
		if n.Cond != nil {
			cond := i.evalExpr(n.Cond, loopEnv)
			if i.Ctx.Unwinding() {
				return
			}
			if !cond.Truthy() {
				return
			}
		}
		i.execBlock(n.Body, loopEnv)
		if i.Ctx.IsBreaking {
			i.Ctx.IsBreaking = false
			return
		}
		if i.Ctx.IsContinuing {
			i.Ctx.IsContinuing = false
		} else if i.Ctx.IsThrowing || i.Ctx.IsReturning {
			return
		}
		if n.Post != nil {
			i.execStmt(n.Post, loopEnv)
			if i.Ctx.Unwinding() {
				return
			}
		}
	}
}

func (i *Interpreter) execForIn(n *ast.ForInStmt, env *environment.Environment) {
	coll := i.evalExpr(n.Collection, env)
	if i.Ctx.Unwinding() {
		return
	}
	payload, ok := coll.Heap()
	if !ok {
		i.throwf("for-in requires an array or object, got %s", coll.Kind())
		return
	}
	switch p := payload.(type) {
	case *value.ArrayVal:
		for idx, elem := range p.Elems() {
			iterEnv := env.Child()
			if n.KeyName != "" {
				iterEnv.Define(n.KeyName, value.I32(int32(idx)))
			}
			iterEnv.Define(n.ValName, elem)
			i.execBlock(n.Body, iterEnv)
			if i.Ctx.IsBreaking {
				i.Ctx.IsBreaking = false
				return
			}
			if i.Ctx.IsContinuing {
				i.Ctx.IsContinuing = false
				continue
			}
			if i.Ctx.IsThrowing || i.Ctx.IsReturning {
				return
			}
		}
	case *value.ObjectVal:
		for _, key := range p.Keys() {
			v, _ := p.Get(key)
			iterEnv := env.Child()
			if n.KeyName != "" {
				iterEnv.Define(n.KeyName, value.Heap(value.NewString(key)))
			}
			iterEnv.Define(n.ValName, v)
			i.execBlock(n.Body, iterEnv)
			if i.Ctx.IsBreaking {
				i.Ctx.IsBreaking = false
				return
			}
			if i.Ctx.IsContinuing {
				i.Ctx.IsContinuing = false
				continue
			}
			if i.Ctx.IsThrowing || i.Ctx.IsReturning {
				return
			}
		}
	default:
		i.throwf("for-in requires an array or object, got %s", coll.Kind())
	}
}

func (i *Interpreter) execSwitch(n *ast.SwitchStmt, env *environment.Environment) {
	disc := i.evalExpr(n.Discriminant, env)
	if i.Ctx.Unwinding() {
		return
	}
	for _, c := range n.Cases {
		matched := false
		for _, ve := range c.Values {
			cv := i.evalExpr(ve, env)
			if i.Ctx.Unwinding() {
				return
			}
			if value.Equals(disc, cv) {
				matched = true
				break
			}
		}
		if matched {
			i.execCaseBody(c.Body, env)
			return
		}
	}
	if n.Default != nil {
		i.execCaseBody(n.Default, env)
	}
}

func (i *Interpreter) execCaseBody(stmts []ast.Stmt, env *environment.Environment) {
	inner := env.Child()
	for _, s := range stmts {
		i.execStmt(s, inner)
		if i.Ctx.Unwinding() {
			return
		}
	}
}

func (i *Interpreter) execReturn(n *ast.ReturnStmt, env *environment.Environment) {
	if n.Value == nil {
		i.Ctx.Return(value.Null())
		return
	}
	v := i.evalExpr(n.Value, env)
	if i.Ctx.Unwinding() {
		return
	}
	i.Ctx.Return(v)
}

func (i *Interpreter) execThrow(n *ast.ThrowStmt, env *environment.Environment) {
	v := i.evalExpr(n.Value, env)
	if i.Ctx.Unwinding() {
		return
	}
	i.throw(v)
}

func (i *Interpreter) execTry(n *ast.TryStmt, env *environment.Environment) {
	i.execBlock(n.Try, env)

	if i.Ctx.IsThrowing && n.Catch != nil {
		exc := i.Ctx.Exception
		i.Ctx.ClearThrow()
		catchEnv := env.Child()
		catchEnv.Define(n.CatchParam, exc)
		i.execBlock(n.Catch, catchEnv)
	}

	if n.Finally != nil {
		// finally runs unconditionally, preserving whatever pending unwind state
		// existed going in.
		pendingThrowing, pendingException := i.Ctx.IsThrowing, i.Ctx.Exception
		pendingReturning, pendingReturnValue := i.Ctx.IsReturning, i.Ctx.ReturnValue
		pendingBreaking, pendingContinuing := i.Ctx.IsBreaking, i.Ctx.IsContinuing

		i.Ctx.IsThrowing, i.Ctx.IsReturning, i.Ctx.IsBreaking, i.Ctx.IsContinuing = false, false, false, false

		i.execBlock(n.Finally, env)

		if i.Ctx.Unwinding() {
			// finally itself unwound (new throw/return/break/continue):
			// that takes precedence over whatever was pending.
			return
		}
		i.Ctx.IsThrowing, i.Ctx.Exception = pendingThrowing, pendingException
		i.Ctx.IsReturning, i.Ctx.ReturnValue = pendingReturning, pendingReturnValue
		i.Ctx.IsBreaking, i.Ctx.IsContinuing = pendingBreaking, pendingContinuing
	}
}

func (i *Interpreter) execDefine(n *ast.DefineStmt, env *environment.Environment) {
	fields := make([]value.FieldSpec, 0, len(n.Fields))
	for _, f := range n.Fields {
		ann := ""
		if f.Annotation != nil {
			ann = f.Annotation.Name
		}
		fields = append(fields, value.FieldSpec{
			Name:       f.Name,
			Annotation: ann,
			Optional:   f.Optional,
			Default:    f.Default,
		})
	}
	env.Define(n.Name, value.NewTypeDef(n.Name, fields))
}
