package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"letlang/engine"
	"letlang/engine/ast"
	"letlang/engine/interpreter"

	"github.com/samber/lo"
)

// runOnce evaluates the whole of in as one program and reports on out. It
// returns the process exit status.
func runOnce(ctx context.Context, ex engine.Executor, in io.Reader, out io.Writer) int {
	data, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(out, "ERROR\n%v\n", err)
		return 1
	}
	ret, err := ex.Run(ctx, string(data), interpreter.NewEnv())
	if err != nil {
		fmt.Fprintf(out, "ERROR\n%v\n", err)
		return 1
	}
	fmt.Fprintln(out, ast.String(ret))
	return 0
}

type lineReader interface {
	Readline() (string, error)
}

// repl evaluates one program per line against a single environment until
// lines runs out.
func repl(ctx context.Context, ex engine.Executor, lines lineReader, out, errOut io.Writer) {
	env := interpreter.NewEnv()
	for {
		line, err := lines.Readline()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":env":
			printEnv(env, out)
			continue
		}
		ret, err := ex.Run(ctx, line, env)
		if err != nil {
			fmt.Fprintf(errOut, "ERROR: %v\n", err)
			continue
		}
		fmt.Fprintln(out, ast.String(ret))
	}
}

func printEnv(env *interpreter.Env, out io.Writer) {
	bindings := env.Bindings()
	names := lo.Keys(bindings)
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "%s = %s\n", name, ast.String(bindings[name]))
	}
}
