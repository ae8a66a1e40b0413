package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"loxvm/compiler"
	"loxvm/table"
	"loxvm/value"
)

// emitBytecodeCmd compiles a file and prints its disassembly without
// running it — a debugging aid, never consulted by the compiler or VM
// themselves.
type emitBytecodeCmd struct {
	out string
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Compile a script and print its disassembly"
}
func (*emitBytecodeCmd) Usage() string {
	return `emit <file>:
  Compile a script file and write its disassembly to stdout (or -out).
`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "out", "", "file to write the disassembly to instead of stdout")
}

func (cmd *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var heap value.Heap
	strs := table.NewStrings(&heap)
	ch, errs := compiler.Compile(string(data), strs)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return exitCompile
	}

	disassembly := ch.Disassemble(filename)
	if cmd.out == "" {
		fmt.Print(disassembly)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(cmd.out, []byte(disassembly), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to write disassembly: %v\n", err)
		return exitIO
	}
	return subcommands.ExitSuccess
}
