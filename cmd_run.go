package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"loxvm/compiler"
	"loxvm/vm"
)

// runCmd executes a script file start to finish: compile once, run once,
// exit.
type runCmd struct {
	disassemble bool
	trace       bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a script file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Compile and execute a script file.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.disassemble, "disassemble", false, "dump the compiled chunk's disassembly to stderr before running it")
	f.BoolVar(&r.trace, "traceExecution", false, "print each instruction to stdout as it executes")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return exitUsage
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return exitIO
	}

	machine := vm.New()
	defer machine.Release()
	machine.Trace = r.trace

	ch, errs := compiler.Compile(string(data), machine.Strings())
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return exitCompile
	}

	if r.disassemble {
		fmt.Fprint(os.Stderr, ch.Disassemble(filename))
	}

	if err := machine.Run(ch); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntime
	}
	return subcommands.ExitSuccess
}
