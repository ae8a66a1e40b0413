package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"loxvm/compiler"
	"loxvm/scanner"
	"loxvm/token"
	"loxvm/vm"
)

// crEplCmd is the readline-backed REPL: history, line editing, and
// multi-line statement continuation (an unclosed block or a trailing
// operator keeps prompting instead of compiling a broken fragment).
type crEplCmd struct {
	disassemble bool
	trace       bool
}

func (*crEplCmd) Name() string     { return "crepl" }
func (*crEplCmd) Synopsis() string { return "Start a readline-backed REPL session" }
func (*crEplCmd) Usage() string {
	return `crepl:
  Start an interactive REPL session with line editing, history, and
  multi-line statement support.
`
}

func (cmd *crEplCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", false, "dump each compiled chunk's disassembly to stderr")
	f.BoolVar(&cmd.trace, "traceExecution", false, "print each instruction to stdout as it executes")
}

func (cmd *crEplCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("\nWelcome to loxvm!")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start readline: %v\n", err)
		return exitIO
	}
	defer rl.Close()

	machine := vm.New()
	defer machine.Release()
	machine.Trace = cmd.trace

	var buffer strings.Builder
	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			return subcommands.ExitSuccess
		}
		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		if !isInputReady(source) {
			continue
		}

		ch, errs := compiler.Compile(source, machine.Strings())
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
			buffer.Reset()
			continue
		}

		if cmd.disassemble {
			fmt.Fprint(os.Stderr, ch.Disassemble("crepl"))
		}

		if err := machine.Run(ch); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		buffer.Reset()
	}
}

// isInputReady decides whether source looks like a complete statement
// sequence yet, so the REPL can keep accepting lines for an unclosed
// block instead of handing a truncated fragment to the compiler.
func isInputReady(source string) bool {
	s := scanner.New(source)

	braceBalance := 0
	var last token.Token
	for {
		tok := s.Next()
		if tok.TokenType == token.EOF {
			break
		}
		if tok.TokenType == token.ERR {
			// Let the compiler itself surface scan errors.
			return true
		}
		switch tok.TokenType {
		case token.LCUR:
			braceBalance++
		case token.RCUR:
			braceBalance--
		}
		last = tok
	}

	if braceBalance > 0 {
		return false
	}
	if last.TokenType == "" {
		return true
	}

	switch last.TokenType {
	case token.ASSIGN, token.ADD, token.SUB, token.MULT, token.DIV,
		token.BANG, token.EQUAL_EQUAL, token.NOT_EQUAL,
		token.LESS, token.LESS_EQUAL, token.LARGER, token.LARGER_EQUAL,
		token.COMMA, token.LPA, token.LCUR,
		token.IF, token.ELSE, token.WHILE, token.FOR, token.FUNC,
		token.RETURN, token.VAR, token.AND, token.OR, token.PRINT:
		return false
	}
	return true
}
