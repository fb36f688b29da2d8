package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/nbeerbower/hemlock/internal/builtin"
	"github.com/nbeerbower/hemlock/internal/config"
	"github.com/nbeerbower/hemlock/internal/eval"
	"github.com/nbeerbower/hemlock/internal/parser"
)

// runREPL reads one statement per line against a single persistent
// interpreter.
func runREPL(cfg *config.Config) error {
	interp := eval.New()
	interp.MaxDepth = cfg.MaxCallDepth
	builtin.RegisterAll(interp.Global, []string{"<repl>"})

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stderr, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(os.Stderr, "> ")
			continue
		}

		p := parser.New(line)
		prog := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
			fmt.Fprint(os.Stderr, "> ")
			continue
		}

		if err := interp.Run(prog); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Fprint(os.Stderr, "> ")
	}
	return scanner.Err()
}
