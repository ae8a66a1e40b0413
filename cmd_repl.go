package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"loxvm/compiler"
	"loxvm/vm"
)

// replCmd is the plain line-buffered REPL: one line of source in, one
// result out, no multi-line statement support. See crEplCmd for the
// readline-backed version with continuation detection.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start a line-buffered REPL session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive, line-at-a-time REPL session.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("\nWelcome to loxvm!")

	machine := vm.New()
	defer machine.Release()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, ">>> ")
		if !scanner.Scan() {
			return subcommands.ExitSuccess
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "exit" {
			return subcommands.ExitSuccess
		}

		ch, errs := compiler.Compile(line, machine.Strings())
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
			continue
		}

		if err := machine.Run(ch); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
