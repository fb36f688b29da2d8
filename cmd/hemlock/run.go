package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nbeerbower/hemlock/internal/builtin"
	"github.com/nbeerbower/hemlock/internal/config"
	"github.com/nbeerbower/hemlock/internal/eval"
	"github.com/nbeerbower/hemlock/internal/parser"
)

// runScript executes one source file.
func runScript(cfg *config.Config, path string, scriptArgs []string) error {
	if cfg.GOMAXPROCS > 0 {
		runtime.GOMAXPROCS(cfg.GOMAXPROCS)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	p := parser.New(string(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("%d parse error(s)", len(errs))
	}

	interp := eval.New()
	interp.MaxDepth = cfg.MaxCallDepth
	builtin.RegisterAll(interp.Global, append([]string{path}, scriptArgs...))

	if err := interp.Run(prog); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
