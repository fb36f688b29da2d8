package eval_test

import (
	"testing"

	"github.com/nbeerbower/hemlock/internal/eval"
	"github.com/nbeerbower/hemlock/internal/parser"
	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) *eval.Interpreter {
	t.Helper()
	p := parser.New(src)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "parse errors: %v", p.Errors())
	interp := eval.New()
	require.NoError(t, interp.Run(prog))
	return interp
}

func TestArithmeticAndLetBinding(t *testing.T) {
	interp := run(t, `let x = 2 + 3 * 4;`)
	v, ok := interp.Global.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(14), v.AsInt64())
}

func TestClosureCapturesEnclosingVariable(t *testing.T) {
	interp := run(t, `
		let counter = 0;
		fn makeAdder(n) {
			return fn(x) { return x + n; };
		}
		let addFive = makeAdder(5);
		counter = addFive(10);
	`)
	v, ok := interp.Global.Get("counter")
	require.True(t, ok)
	assert.Equal(t, int64(15), v.AsInt64())
}

func TestTryCatchRecoversThrownValue(t *testing.T) {
	interp := run(t, `
		let caught = 0;
		try {
			throw 99;
		} catch (e) {
			caught = e;
		}
	`)
	v, ok := interp.Global.Get("caught")
	require.True(t, ok)
	assert.Equal(t, int64(99), v.AsInt64())
}

func TestFinallyRunsOnThrowAndPreservesPendingThrow(t *testing.T) {
	interp := run(t, `
		let ranFinally = false;
		let caught = 0;
		try {
			try {
				throw 7;
			} finally {
				ranFinally = true;
			}
		} catch (e) {
			caught = e;
		}
	`)
	ran, ok := interp.Global.Get("ranFinally")
	require.True(t, ok)
	assert.True(t, ran.Truthy())
	caught, ok := interp.Global.Get("caught")
	require.True(t, ok)
	assert.Equal(t, int64(7), caught.AsInt64())
}

func TestDeferRunsLIFOBeforeReturn(t *testing.T) {
	interp := run(t, `
		let log = [];
		fn withDefers() {
			defer log.push(1);
			defer log.push(2);
			defer log.push(3);
			return 0;
		}
		withDefers();
	`)
	v, ok := interp.Global.Get("log")
	require.True(t, ok)
	payload, ok := v.Heap()
	require.True(t, ok)
	arr := payload.(*value.ArrayVal)
	require.Equal(t, 3, arr.Len())
	first, _ := arr.Get(0)
	second, _ := arr.Get(1)
	third, _ := arr.Get(2)
	assert.Equal(t, int64(3), first.AsInt64())
	assert.Equal(t, int64(2), second.AsInt64())
	assert.Equal(t, int64(1), third.AsInt64())
}

func TestWhileLoopAccumulates(t *testing.T) {
	interp := run(t, `
		let i = 0;
		let total = 0;
		while (i < 5) {
			total = total + i;
			i = i + 1;
		}
	`)
	v, ok := interp.Global.Get("total")
	require.True(t, ok)
	assert.Equal(t, int64(10), v.AsInt64())
}

func TestObjectDefineAndDuckTypeConversion(t *testing.T) {
	interp := run(t, `
		define Point { x: i32, y: i32 = 0 }
		let p: Point = { x: 3 };
	`)
	v, ok := interp.Global.Get("p")
	require.True(t, ok)
	assert.Equal(t, value.KindObject, v.Kind())
}

func TestOptionalFieldQuestionColonSugarFillsDefault(t *testing.T) {
	interp := run(t, `
		define Point { x: i32, y: i32, active?: true }
		let p: Point = { x: 3, y: 4 };
	`)
	v, ok := interp.Global.Get("p")
	require.True(t, ok)
	payload, _ := v.Heap()
	obj := payload.(*value.ObjectVal)
	active, ok := obj.Get("active")
	require.True(t, ok)
	assert.True(t, active.AsBool())
	assert.Equal(t, "Point", obj.TypeName())
}
