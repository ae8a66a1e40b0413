package compiler

import (
	"loxvm/chunk"
	"loxvm/token"
	"loxvm/value"
)

// expression parses (and emits) one expression at assignment precedence,
// the lowest level above PrecNone, so `x = ...` is accepted as an
// assignment expression.
func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

// parsePrecedence is the Pratt engine: it runs the prefix rule for
// whatever token starts the expression, then keeps folding in infix
// operators as long as their precedence meets the floor the caller
// asked for.
func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefixRule := rules[c.previous.TokenType].prefix
	if prefixRule == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	prefixRule(c, canAssign)

	for prec <= rules[c.current.TokenType].precedence {
		c.advance()
		infixRule := rules[c.previous.TokenType].infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(token.ASSIGN) {
		c.error("Invalid assignment target.")
	}
}

func number(c *Compiler, _ bool) {
	c.emitConstant(value.Number(c.parseNumber(c.previous.Lexeme)))
}

// str strips the surrounding quotes from the lexeme and interns the
// remaining bytes, so that any two equal string literals in the source
// become the same constant object.
func str(c *Compiler, _ bool) {
	lexeme := c.previous.Lexeme
	inner := lexeme[1 : len(lexeme)-1]
	obj := c.strings.Intern([]byte(inner))
	c.emitConstant(value.FromObj(obj))
}

func literal(c *Compiler, _ bool) {
	switch c.previous.TokenType {
	case token.FALSE:
		c.emitOp(chunk.OpFalse)
	case token.TRUE:
		c.emitOp(chunk.OpTrue)
	case token.NULL:
		c.emitOp(chunk.OpNil)
	}
}

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RPA, "Expect ')' after expression.")
}

func unary(c *Compiler, _ bool) {
	opType := c.previous.TokenType
	c.parsePrecedence(PrecUnary)
	switch opType {
	case token.SUB:
		c.emitOp(chunk.OpNegate)
	case token.BANG:
		c.emitOp(chunk.OpNot)
	}
}

func binary(c *Compiler, _ bool) {
	opType := c.previous.TokenType
	rule := rules[opType]
	c.parsePrecedence(rule.precedence + 1)

	switch opType {
	case token.ADD:
		c.emitOp(chunk.OpAdd)
	case token.SUB:
		c.emitOp(chunk.OpSubtract)
	case token.MULT:
		c.emitOp(chunk.OpMultiply)
	case token.DIV:
		c.emitOp(chunk.OpDivide)
	case token.EQUAL_EQUAL:
		c.emitOp(chunk.OpEqual)
	case token.NOT_EQUAL:
		c.emitOp(chunk.OpEqual)
		c.emitOp(chunk.OpNot)
	case token.LESS:
		c.emitOp(chunk.OpLess)
	case token.LESS_EQUAL:
		c.emitOp(chunk.OpGreater)
		c.emitOp(chunk.OpNot)
	case token.LARGER:
		c.emitOp(chunk.OpGreater)
	case token.LARGER_EQUAL:
		c.emitOp(chunk.OpLess)
		c.emitOp(chunk.OpNot)
	}
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp chunk.OpCode
	arg := c.resolveLocal(name)
	if arg != -1 {
		getOp, setOp = chunk.OpGetLocal, chunk.OpSetLocal
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = chunk.OpGetGlobal, chunk.OpSetGlobal
	}

	if canAssign && c.match(token.ASSIGN) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}

// and_ short-circuits: if the left operand is false it leaves it on the
// stack and skips the right operand entirely.
func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

// or_ short-circuits the other way: a truthy left operand skips the
// right operand.
func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)

	c.patchJump(elseJump)
	c.emitOp(chunk.OpPop)

	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}
