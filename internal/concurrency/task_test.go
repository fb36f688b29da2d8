package concurrency

import (
	"testing"
	"time"

	"github.com/nbeerbower/hemlock/internal/ast"
	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/nbeerbower/hemlock/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identity builds a function value equivalent to `function(x) { return x; }`
// without needing the parser: a single return statement whose expression
// is the first parameter, sufficient to drive spawn/join end to end.
func identityFn() value.Value {
	body := &ast.BlockStmt{
		Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.Identifier{Name: "x"}},
		},
	}
	fn := value.NewFunction("identity", []value.Param{{Name: "x"}}, "", body, nil, false)
	return value.Heap(fn)
}

func TestSpawnArgsRejectsNonFunction(t *testing.T) {
	global := environment.New()
	_, err := SpawnArgs(global, value.I32(1), nil)
	assert.Error(t, err)
}

func TestSpawnAndJoinRoundTrips(t *testing.T) {
	global := environment.New()
	task, err := SpawnArgs(global, identityFn(), []value.Value{value.I32(7)})
	require.NoError(t, err)

	result, exception, threw, err := Join(task)
	require.NoError(t, err)
	assert.False(t, threw)
	assert.Equal(t, value.KindNull, exception.Kind())
	assert.Equal(t, int64(7), result.AsInt64())
}

func TestJoinOnDetachedTaskErrors(t *testing.T) {
	global := environment.New()
	task, err := SpawnDetached(global, identityFn(), []value.Value{value.I32(1)})
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, _, _, err = Join(task)
	assert.Error(t, err)
}

func TestWaitAllAggregatesResults(t *testing.T) {
	global := environment.New()
	var tasks []*value.TaskVal
	for i := 0; i < 3; i++ {
		task, err := SpawnArgs(global, identityFn(), []value.Value{value.I32(int32(i))})
		require.NoError(t, err)
		tasks = append(tasks, task)
	}
	results, err := WaitAll(tasks)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, int64(i), r.AsInt64())
	}
}
