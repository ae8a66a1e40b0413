package vm

import "fmt"

// RuntimeError is a failure detected while executing bytecode, as
// opposed to a CompileError caught ahead of time. It carries the source
// line active when the fault happened so the caller can render the
// "[line N] in script" trailer on stderr.
type RuntimeError struct {
	Message string
	Line    int
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}
