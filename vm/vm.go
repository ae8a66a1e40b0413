// Package vm implements the stack-based virtual machine: the runtime
// environment that fetches, decodes, and dispatches the bytecode a
// compiler.Compile call produces.
package vm

import (
	"fmt"
	"io"
	"os"

	"loxvm/chunk"
	"loxvm/table"
	"loxvm/value"
)

// VM is a stack-based virtual machine. Its globals table, string intern
// set, and object heap all persist across Run calls, so that a REPL
// session accumulates global variables and reuses interned strings
// exactly like running one long script would.
type VM struct {
	chunk *chunk.Chunk
	ip    int
	stack stack

	globals table.Table
	strings *table.Strings
	heap    value.Heap

	// Out is where OP_PRINT writes. It defaults to os.Stdout; tests
	// substitute a buffer.
	Out io.Writer

	// Trace, when set, prints each instruction to Out immediately
	// before it executes (clox's debug trace, wired to -traceExecution).
	Trace bool
}

// New creates a VM with a fresh, empty heap/globals/intern-set.
func New() *VM {
	vm := &VM{Out: os.Stdout}
	vm.strings = table.NewStrings(&vm.heap)
	return vm
}

// Strings exposes the VM's persistent string intern set so a compiler
// run sharing this VM's lifetime interns into the same set the VM's own
// string operations (OpAdd concatenation, global names) use.
func (vm *VM) Strings() *table.Strings {
	return vm.strings
}

// Release drops every object the VM's heap is holding. Call it once,
// at shutdown; there is no incremental collection during a run.
func (vm *VM) Release() {
	vm.heap.Release()
}

// Run executes ch to completion, starting from a clean stack each call.
// It returns a RuntimeError if execution faults, or nil on a normal
// OP_RETURN at the top level.
func (vm *VM) Run(ch *chunk.Chunk) error {
	vm.chunk = ch
	vm.ip = 0
	vm.stack.reset()

	for {
		if vm.Trace {
			line, _ := vm.chunk.DisassembleInstructionAt(vm.ip)
			fmt.Fprintln(vm.Out, line)
		}
		op := chunk.OpCode(vm.readByte())
		switch op {
		case chunk.OpConstant:
			vm.stack.push(vm.chunk.Constants[vm.readByte()])
		case chunk.OpNil:
			vm.stack.push(value.Nil)
		case chunk.OpTrue:
			vm.stack.push(value.Bool(true))
		case chunk.OpFalse:
			vm.stack.push(value.Bool(false))
		case chunk.OpPop:
			vm.stack.pop()

		case chunk.OpGetLocal:
			vm.stack.push(vm.stack.slots[vm.readByte()])
		case chunk.OpSetLocal:
			vm.stack.slots[vm.readByte()] = vm.stack.peek(0)

		case chunk.OpGetGlobal:
			name := vm.chunk.Constants[vm.readByte()].Obj
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", string(name.Chars))
			}
			vm.stack.push(v)
		case chunk.OpDefineGlobal:
			name := vm.chunk.Constants[vm.readByte()].Obj
			vm.globals.Set(name, vm.stack.peek(0))
			vm.stack.pop()
		case chunk.OpSetGlobal:
			name := vm.chunk.Constants[vm.readByte()].Obj
			if vm.globals.Set(name, vm.stack.peek(0)) {
				// Set reports true only for a brand new key: the
				// global was never defined, so undo the insert and
				// report it the same way a read of it would.
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", string(name.Chars))
			}

		case chunk.OpEqual:
			b := vm.stack.pop()
			a := vm.stack.pop()
			vm.stack.push(value.Bool(value.Equal(a, b)))
		case chunk.OpGreater:
			if err := vm.binaryNumber(func(a, b float64) value.Value { return value.Bool(a > b) }); err != nil {
				return err
			}
		case chunk.OpLess:
			if err := vm.binaryNumber(func(a, b float64) value.Value { return value.Bool(a < b) }); err != nil {
				return err
			}
		case chunk.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case chunk.OpSubtract:
			if err := vm.binaryNumber(func(a, b float64) value.Value { return value.Number(a - b) }); err != nil {
				return err
			}
		case chunk.OpMultiply:
			if err := vm.binaryNumber(func(a, b float64) value.Value { return value.Number(a * b) }); err != nil {
				return err
			}
		case chunk.OpDivide:
			if err := vm.binaryNumber(func(a, b float64) value.Value { return value.Number(a / b) }); err != nil {
				return err
			}

		case chunk.OpNot:
			vm.stack.push(value.Bool(vm.stack.pop().IsFalsy()))
		case chunk.OpNegate:
			if !vm.stack.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.stack.push(value.Number(-vm.stack.pop().Number))

		case chunk.OpPrint:
			fmt.Fprintln(vm.Out, vm.stack.pop().String())

		case chunk.OpJump:
			offset := vm.readShort()
			vm.ip += int(offset)
		case chunk.OpJumpIfFalse:
			offset := vm.readShort()
			if vm.stack.peek(0).IsFalsy() {
				vm.ip += int(offset)
			}
		case chunk.OpLoop:
			offset := vm.readShort()
			vm.ip -= int(offset)

		case chunk.OpReturn:
			return nil

		default:
			return vm.runtimeError("Unknown opcode %v.", op)
		}
	}
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readShort() uint16 {
	hi := vm.chunk.Code[vm.ip]
	lo := vm.chunk.Code[vm.ip+1]
	vm.ip += 2
	return uint16(hi)<<8 | uint16(lo)
}

// binaryNumber pops two operands, requires both to be numbers, and
// pushes op(a, b). Division by zero is not special-cased: it follows
// IEEE-754 and produces +Inf/-Inf/NaN like the host float64 does.
func (vm *VM) binaryNumber(op func(a, b float64) value.Value) error {
	if !vm.stack.peek(0).IsNumber() || !vm.stack.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.stack.pop()
	a := vm.stack.pop()
	vm.stack.push(op(a.Number, b.Number))
	return nil
}

// add implements OP_ADD's two overloads: numeric addition and string
// concatenation. Concatenation interns its result, so two scripts that
// build the same string via concatenation still end up pointer-equal.
func (vm *VM) add() error {
	b := vm.stack.peek(0)
	a := vm.stack.peek(1)
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.stack.pop()
		vm.stack.pop()
		vm.stack.push(value.Number(a.Number + b.Number))
	case a.IsString() && b.IsString():
		vm.stack.pop()
		vm.stack.pop()
		joined := make([]byte, 0, len(a.Obj.Chars)+len(b.Obj.Chars))
		joined = append(joined, a.Obj.Chars...)
		joined = append(joined, b.Obj.Chars...)
		vm.stack.push(value.FromObj(vm.strings.Intern(joined)))
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
	return nil
}

func (vm *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	line := vm.chunk.Lines[vm.ip-1]
	vm.stack.reset()
	return RuntimeError{Message: msg, Line: line}
}
