package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/reusee/bf/bfconfigs"
	"github.com/reusee/bf/bflang"
	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/debugs"
	"github.com/reusee/bf/logs"
	"github.com/reusee/bf/modes"
	"github.com/reusee/dscope"
)

var (
	programFile = cmds.Var[string]("-file")
	inspect     = cmds.Switch("-inspect")
)

func main() {
	cmds.MustExecute(os.Args[1:])

	if *programFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -file <program.bf> is required")
		os.Exit(1)
	}

	source, err := os.ReadFile(*programFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scope := dscope.New(
		new(bfconfigs.Module),
		new(debugs.Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		options *bflang.Options,
		tap debugs.Tap,
	) {
		ctx := context.Background()
		ctx, _ = newSpan(ctx, "")

		machine := bflang.NewMachineOptions(string(source), options)
		logger.DebugContext(ctx, "program loaded",
			"file", *programFile,
			"instructions", len(machine.Program()),
		)

		code := 0
		err := machine.Run(os.Stdin, os.Stdout)

		var readErr bflang.ReadError
		var writeErr bflang.WriteError
		switch {

		case err == nil:

		case errors.As(err, &readErr):
			fmt.Fprintf(os.Stderr, "Read error: %v.\n", readErr.Err)
			code = 1

		case errors.As(err, &writeErr):
			// the consumer going away is not our failure
			if !errors.Is(writeErr.Err, syscall.EPIPE) {
				fmt.Fprintf(os.Stderr, "Write error: %v.\n", writeErr.Err)
				code = 1
			}

		case errors.Is(err, bflang.ErrUnbalancedParens):
			fmt.Fprintln(os.Stderr, "Unbalanced parens found.")
			code = 1

		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
		}

		if err != nil {
			logger.DebugContext(ctx, "run failed",
				"error", logs.WrapSpan(ctx, err),
			)
		}

		if *inspect {
			window := min(64, options.TapeSize)
			program := make([]string, 0, len(machine.Program()))
			for _, instr := range machine.Program() {
				program = append(program, instr.String())
			}
			tap(ctx, "machine", map[string]any{
				"dp":      machine.Pointer(),
				"tape":    machine.Tape(0, window),
				"program": program,
			})
		}

		os.Exit(code)
	})
}
