// Package compiler implements the single-pass Pratt parser that reads
// tokens from a scanner and emits bytecode directly into a chunk.Chunk
// — no intermediate AST is ever materialized. It also tracks lexical
// scopes and local-variable slots, and patches the forward/backward
// jumps control flow needs.
package compiler

import (
	encbinary "encoding/binary"
	"strconv"

	"loxvm/chunk"
	"loxvm/scanner"
	"loxvm/table"
	"loxvm/token"
	"loxvm/value"
)

// Compiler holds all state for one compile: the token stream being
// parsed, the chunk being written, the local-variable bookkeeping, and
// error accumulation. A Compiler is single-use — build a new one per
// call to Compile.
type Compiler struct {
	scanner *scanner.Scanner
	chunk   *chunk.Chunk
	strings *table.Strings

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errors    []error

	locals     []local
	scopeDepth int
}

// Compile compiles source into a chunk.Chunk. It returns the chunk and a
// nil error slice on success; on failure it returns a nil chunk and
// every CompileError collected after panic-mode recovery — a chunk
// with any error in it is never handed to the VM. strs is the VM's
// persistent string intern set — string literals and identifier names
// both route through it so that object equality for strings reduces to
// pointer equality at run time.
func Compile(source string, strs *table.Strings) (*chunk.Chunk, []error) {
	c := &Compiler{
		scanner: scanner.New(source),
		chunk:   &chunk.Chunk{},
		strings: strs,
	}

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	c.emitReturn()

	if c.hadError {
		return nil, c.errors
	}
	return c.chunk, nil
}

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.Next()
		if c.current.TokenType != token.ERR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(kind token.TokenType) bool {
	return c.current.TokenType == kind
}

func (c *Compiler) match(kind token.TokenType) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind token.TokenType, message string) {
	if c.current.TokenType == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) error(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	ce := CompileError{Line: tok.Line, Message: message}
	if tok.TokenType == token.EOF {
		ce.AtEnd = true
	} else if tok.TokenType != token.ERR {
		ce.Lexeme = tok.Lexeme
	}
	c.errors = append(c.errors, ce)
}

// synchronize resumes parsing at the next plausible statement boundary
// after a syntax error, so one mistake doesn't prevent the rest of the
// source from being checked.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.TokenType != token.EOF {
		if c.previous.TokenType == token.SEMICOLON {
			return
		}
		switch c.current.TokenType {
		case token.CLASS, token.FUNC, token.VAR, token.FOR, token.IF,
			token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// --- emission helpers ---

func (c *Compiler) emitByte(b byte) {
	c.chunk.Write(b, c.previous.Line)
}

func (c *Compiler) emitOp(op chunk.OpCode) {
	c.chunk.WriteOp(op, c.previous.Line)
}

func (c *Compiler) emitOpByte(op chunk.OpCode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *Compiler) emitReturn() {
	c.emitOp(chunk.OpReturn)
}

func (c *Compiler) makeConstant(v value.Value) byte {
	idx, err := c.chunk.AddConstant(v)
	if err != nil {
		c.error(err.Error())
		return 0
	}
	return byte(idx)
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emitOpByte(chunk.OpConstant, c.makeConstant(v))
}

// emitJump writes op followed by a two-byte placeholder and returns the
// offset of the placeholder, to be backfilled by patchJump once the
// jump target is known.
func (c *Compiler) emitJump(op chunk.OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk.Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := len(c.chunk.Code) - offset - 2
	if jump > 0xffff {
		c.error("Too much code to jump over.")
		return
	}
	var buf [2]byte
	encbinary.BigEndian.PutUint16(buf[:], uint16(jump))
	c.chunk.Code[offset] = buf[0]
	c.chunk.Code[offset+1] = buf[1]
}

// emitLoop emits OP_LOOP with the backward distance to start. The
// distance counts from just past OP_LOOP's own two-byte operand, so it
// is len(Code)-start plus 2, not simply len(Code)-start.
func (c *Compiler) emitLoop(start int) {
	c.emitOp(chunk.OpLoop)
	offset := len(c.chunk.Code) - start + 2
	if offset > 0xffff {
		c.error("Loop body too large.")
		return
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

func (c *Compiler) identifierConstant(name token.Token) byte {
	obj := c.strings.Intern([]byte(name.Lexeme))
	return c.makeConstant(value.FromObj(obj))
}

func (c *Compiler) parseNumber(lexeme string) float64 {
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return 0
	}
	return n
}
