package compiler

import (
	"loxvm/chunk"
	"loxvm/token"
)

// maxLocals bounds the local array at a fixed capacity, mirroring the
// VM's fixed-capacity operand stack.
const maxLocals = 256

// local is one entry in the compiler's scope-tracking array. depth is
// -1 while the variable's own initializer is still being compiled,
// which is what lets resolveLocal reject `var a = a;`.
type local struct {
	name  token.Token
	depth int
}

func (c *Compiler) beginScope() {
	c.scopeDepth++
}

// endScope pops every local declared in the scope being closed, in the
// teacher's and clox's shared idiom of one OP_POP per local rather than
// a single "pop N" instruction.
func (c *Compiler) endScope() {
	c.scopeDepth--
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.emitOp(chunk.OpPop)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

func identifiersEqual(a, b token.Token) bool {
	return a.Lexeme == b.Lexeme
}

// declareVariable registers a new local in the current scope. It is a
// no-op at global scope, where variables are looked up by name in the
// globals table instead of by slot.
func (c *Compiler) declareVariable() {
	if c.scopeDepth == 0 {
		return
	}
	name := c.previous
	for i := len(c.locals) - 1; i >= 0; i-- {
		l := c.locals[i]
		if l.depth != -1 && l.depth < c.scopeDepth {
			break
		}
		if identifiersEqual(name, l.name) {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name token.Token) {
	if len(c.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.locals = append(c.locals, local{name: name, depth: -1})
}

// markInitialized records that the most recently declared local's
// initializer has finished compiling, making it visible to
// resolveLocal.
func (c *Compiler) markInitialized() {
	if c.scopeDepth == 0 {
		return
	}
	c.locals[len(c.locals)-1].depth = c.scopeDepth
}

// resolveLocal returns the stack slot of the innermost local named name,
// or -1 if name isn't a local (so the caller should fall back to a
// global lookup).
func (c *Compiler) resolveLocal(name token.Token) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if identifiersEqual(name, c.locals[i].name) {
			if c.locals[i].depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}
