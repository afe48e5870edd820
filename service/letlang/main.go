package main

import (
	"context"
	"fmt"
	"os"

	"letlang/host"

	"github.com/alexflint/go-arg"
	"github.com/chzyer/readline"
)

func main() {
	var flags struct {
		host.HostArgs
		Repl bool `arg:"--repl" help:"read programs line by line against one environment"`
	}
	arg.MustParse(&flags)
	h, err := host.CreateFromArgs(&flags.HostArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup: %v\n", err)
		os.Exit(2)
	}
	ctx := context.Background()
	if !flags.Repl {
		status := runOnce(ctx, h.Executor, os.Stdin, os.Stdout)
		h.Close()
		os.Exit(status)
	}

	rl, err := readline.New("> ")
	if err != nil {
		panic(err)
	}
	defer h.Close()
	defer rl.Close()
	repl(ctx, h.Executor, rl, rl.Stdout(), rl.Stderr())
}
