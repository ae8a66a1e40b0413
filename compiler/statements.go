package compiler

import (
	"loxvm/chunk"
	"loxvm/token"
)

func (c *Compiler) declaration() {
	if c.match(token.VAR) {
		c.varDeclaration()
	} else {
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(token.ASSIGN) {
		c.expression()
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

// parseVariable consumes the variable's name and, for a local, declares
// it immediately (so the name is visible for shadowing checks before
// its initializer is compiled). The byte it returns is only meaningful
// for a global: it is the constant-pool index of the interned name.
func (c *Compiler) parseVariable(errMsg string) byte {
	c.consume(token.IDENTIFIER, errMsg)

	c.declareVariable()
	if c.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

func (c *Compiler) defineVariable(global byte) {
	if c.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(chunk.OpDefineGlobal, global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.LCUR):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emitOp(chunk.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after expression.")
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) block() {
	for !c.check(token.RCUR) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RCUR, "Expect '}' after block.")
}

// ifStatement emits:
//
//	<condition>
//	JUMP_IF_FALSE thenJump
//	POP
//	<then branch>
//	JUMP elseJump
//	thenJump:
//	POP
//	<else branch, if any>
//	elseJump:
//
// thenJump must be patched to land here (right before the else branch,
// or right after the then branch if there is none), and elseJump must
// be patched last, after the else branch is compiled — patching
// thenJump a second time in its place would leave elseJump dangling
// off the end of the chunk.
func (c *Compiler) ifStatement() {
	c.consume(token.LPA, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPA, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()

	elseJump := c.emitJump(chunk.OpJump)

	c.patchJump(thenJump)
	c.emitOp(chunk.OpPop)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk.Code)
	c.consume(token.LPA, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPA, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPA, "Expect '(' after 'for'.")

	switch {
	case c.match(token.SEMICOLON):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk.Code)
	exitJump := -1
	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "Expect ';' after loop condition.")

		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emitOp(chunk.OpPop)
	}

	if !c.check(token.RPA) {
		bodyJump := c.emitJump(chunk.OpJump)

		incrementStart := len(c.chunk.Code)
		c.expression()
		c.emitOp(chunk.OpPop)
		c.consume(token.RPA, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.consume(token.RPA, "Expect ')' after for clauses.")
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(chunk.OpPop)
	}

	c.endScope()
}
