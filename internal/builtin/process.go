package builtin

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "getenv", Call: biGetenv})
	Register(&Info{Name: "setenv", Call: biSetenv})
	Register(&Info{Name: "unsetenv", Call: biUnsetenv})
	Register(&Info{Name: "exec", Call: biExec})
	Register(&Info{Name: "exit", Call: biExit})
}

// getenv/setenv/unsetenv expose the standard library's environment
// variable functions verbatim.
func biGetenv(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), fmt.Errorf("getenv: missing name")
	}
	v, ok := os.LookupEnv(args[0].String())
	if !ok {
		return value.Null(), nil
	}
	return value.Heap(value.NewString(v)), nil
}

func biSetenv(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 2 {
		return value.Null(), fmt.Errorf("setenv: expected (name, value)")
	}
	if err := os.Setenv(args[0].String(), args[1].String()); err != nil {
		return value.Null(), err
	}
	return value.Null(), nil
}

func biUnsetenv(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), fmt.Errorf("unsetenv: missing name")
	}
	if err := os.Unsetenv(args[0].String()); err != nil {
		return value.Null(), err
	}
	return value.Null(), nil
}

func biExec(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), fmt.Errorf("exec: missing command")
	}
	name := args[0].String()
	argv := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		argv = append(argv, a.String())
	}
	out, err := exec.Command(name, argv...).CombinedOutput()
	if err != nil {
		return value.Null(), fmt.Errorf("exec %s: %w", name, err)
	}
	return value.Heap(value.NewString(string(out))), nil
}

func biExit(args []value.Value, ctx interface{}) (value.Value, error) {
	code := 0
	if len(args) > 0 {
		code = int(args[0].AsInt64())
	}
	os.Exit(code)
	return value.Null(), nil
}
