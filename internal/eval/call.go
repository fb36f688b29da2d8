package eval

import (
	"fmt"

	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/types"
	"github.com/nbeerbower/hemlock/internal/value"
)

// callValue applies fn to args. self, when non-nil, is bound as `self`
// for a method call.
func (i *Interpreter) callValue(fn value.Value, args []value.Value, self *value.Value, callSite ast.Pos) (value.Value, error) {
	if b, ok := fn.Builtin(); ok {
		return b.Call(args, i)
	}
	payload, ok := fn.Heap()
	if !ok {
		return value.Null(), fmt.Errorf("value of kind %s is not callable", fn.Kind())
	}
	fv, ok := payload.(*value.FunctionVal)
	if !ok {
		return value.Null(), fmt.Errorf("value of kind %s is not callable", fn.Kind())
	}

	if fv.Native != nil {
		return fv.Native(args)
	}

	if len(i.Ctx.Frames) >= i.maxCallDepth() {
		return value.Null(), fmt.Errorf("call stack exceeded depth %d", i.maxCallDepth())
	}

	closureEnv, _ := fv.Closure.(*environment.Environment)
	if closureEnv == nil {
		closureEnv = i.Global
	}
	callEnv := closureEnv.Child()

	if self != nil {
		callEnv.Define("self", *self)
	}

	if err := i.bindParams(fv, args, callEnv); err != nil {
		return value.Null(), err
	}

	name := fv.Name
	if name == "" {
		name = "<anonymous>"
	}
	i.Ctx.PushFrame(name, callSite)
	watermark := i.Ctx.Frames[len(i.Ctx.Frames)-1].DeferWatermark

	i.execBlock(fv.Body, callEnv)

	i.drainDefers(watermark)
	i.Ctx.PopFrame()

	if i.Ctx.IsThrowing {
		return value.Null(), nil
	}

	result := value.Null()
	if i.Ctx.IsReturning {
		result = i.Ctx.ReturnValue
		i.Ctx.ClearReturn()
	}
	return result, nil
}

// bindParams evaluates argument defaults and type conversions into callEnv,
// matching "applies defaults for missing optional parameters, type-converts
// per annotations".
func (i *Interpreter) bindParams(fv *value.FunctionVal, args []value.Value, callEnv *environment.Environment) error {
	for idx, p := range fv.Params {
		var v value.Value
		if idx < len(args) {
			v = args[idx]
		} else if p.Default != nil {
			dv := i.evalExpr(p.Default, callEnv)
			if i.Ctx.IsThrowing {
				exc := i.Ctx.Exception
				i.Ctx.ClearThrow()
				return fmt.Errorf("parameter %q default: %s", p.Name, exc.String())
			}
			v = dv
		} else {
			v = value.Null()
		}
		if p.Annotation != "" {
			converted, err := i.convertAnnotated(v, p.Annotation, callEnv)
			if err != nil {
				return fmt.Errorf("parameter %q: %w", p.Name, err)
			}
			v = converted
		}
		callEnv.Define(p.Name, v)
	}
	return nil
}

// convertAnnotated applies conversion for a single annotated binding
// (parameter, let, or field).
func (i *Interpreter) convertAnnotated(v value.Value, annotation string, env *environment.Environment) (value.Value, error) {
	if k, ok := value.KindFromName(annotation); ok {
		return types.ConvertPrimitive(v, k)
	}
	tv, ok := i.lookupTypeName(annotation, env)
	if !ok {
		return value.Null(), fmt.Errorf("unknown type annotation %q", annotation)
	}
	return types.ConvertDuckType(v, tv, &envResolver{interp: i, env: env})
}

func (i *Interpreter) lookupTypeName(name string, env *environment.Environment) (*value.TypeDefVal, bool) {
	v, ok := env.Get(name)
	if !ok {
		return nil, false
	}
	return v.AsTypeDef()
}

// envResolver adapts one (Interpreter, Environment) pair to
// types.Resolver for a single conversion call.
type envResolver struct {
	interp *Interpreter
	env    *environment.Environment
}

func (r *envResolver) EvalDefault(expr ast.Expr) (value.Value, error) {
	v := r.interp.evalExpr(expr, r.env)
	if r.interp.Ctx.IsThrowing {
		exc := r.interp.Ctx.Exception
		r.interp.Ctx.ClearThrow()
		return value.Null(), fmt.Errorf("field default: %s", exc.String())
	}
	return v, nil
}

func (r *envResolver) LookupType(name string) (*value.TypeDefVal, bool) {
	return r.interp.lookupTypeName(name, r.env)
}

// drainDefers runs deferred calls LIFO down to watermark, matching:
// "Exceptions raised during a deferred expression override any currently
// pending unwind."
func (i *Interpreter) drainDefers(watermark int) {
	defers := i.Ctx.PopDefersTo(watermark)
	for _, d := range defers {
		pendingThrowing, pendingException := i.Ctx.IsThrowing, i.Ctx.Exception
		pendingReturning, pendingReturnValue := i.Ctx.IsReturning, i.Ctx.ReturnValue
		pendingBreaking, pendingContinuing := i.Ctx.IsBreaking, i.Ctx.IsContinuing

		i.Ctx.IsThrowing, i.Ctx.IsReturning, i.Ctx.IsBreaking, i.Ctx.IsContinuing = false, false, false, false

		// A deferred expression is always a call expression; evaluating
		// it for effect discards its result, matching `defer expr;`.
		i.evalExpr(d.Expr, d.Env)

		if i.Ctx.IsThrowing {
			// A throw during the deferred call overrides any pending unwind.
			continue
		}
		i.Ctx.IsThrowing, i.Ctx.Exception = pendingThrowing, pendingException
		i.Ctx.IsReturning, i.Ctx.ReturnValue = pendingReturning, pendingReturnValue
		i.Ctx.IsBreaking, i.Ctx.IsContinuing = pendingBreaking, pendingContinuing
	}
}
