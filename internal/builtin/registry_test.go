package builtin

import (
	"testing"

	"github.com/nbeerbower/hemlock/internal/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAllBindsBuiltinsConstantsAndArgs(t *testing.T) {
	global := environment.New()
	RegisterAll(global, []string{"script.hlk", "a", "b"})

	_, ok := global.Get("spawn")
	assert.True(t, ok, "spawn builtin should be bound")
	_, ok = global.Get("new_channel")
	assert.True(t, ok, "new_channel builtin should be bound")

	typeVal, ok := global.Get("i32")
	require.True(t, ok, "i32 type constant should be bound")
	assert.Equal(t, "i32", typeVal.String())

	argsVal, ok := global.Get("args")
	require.True(t, ok, "args array should be bound")
	payload, ok := argsVal.Heap()
	require.True(t, ok)
	arr := payload.(interface{ Len() int })
	assert.Equal(t, 3, arr.Len())
}

func TestNamesReturnsRegisteredBuiltins(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "print")
	assert.Contains(t, names, "join")
	assert.Contains(t, names, "metrics_snapshot")
}
