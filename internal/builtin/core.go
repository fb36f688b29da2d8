package builtin

import (
	"fmt"
	"os"

	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "print", Call: biPrint})
	Register(&Info{Name: "println", Call: biPrintln})
	Register(&Info{Name: "typeof", Call: biTypeof})
	Register(&Info{Name: "panic", Call: biPanic})
}

func biPrint(args []value.Value, ctx interface{}) (value.Value, error) {
	for _, a := range args {
		fmt.Print(a.String())
	}
	return value.Null(), nil
}

func biPrintln(args []value.Value, ctx interface{}) (value.Value, error) {
	for i, a := range args {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(a.String())
	}
	fmt.Println()
	return value.Null(), nil
}

// biTypeof returns the `type` Value naming arg 0's kind, or the
// duck-type name of an object converted via a `define` annotation.
func biTypeof(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), fmt.Errorf("typeof: missing argument")
	}
	arg := args[0]
	if arg.Kind() == value.KindObject {
		if payload, ok := arg.Heap(); ok {
			if obj, ok := payload.(*value.ObjectVal); ok {
				if name := obj.TypeName(); name != "" {
					return value.NewTypeDef(name, nil), nil
				}
			}
		}
	}
	return value.TypeVal(arg.Kind()), nil
}

// biPanic implements the Fatal error class: prints the diagnostic and
// terminates with nonzero status, unlike throw which is catchable.
func biPanic(args []value.Value, ctx interface{}) (value.Value, error) {
	msg := "panic"
	if len(args) > 0 {
		msg = args[0].String()
	}
	fmt.Fprintf(os.Stderr, "panic: %s\n", msg)
	os.Exit(2)
	return value.Null(), nil
}
