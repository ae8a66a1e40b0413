package compiler

import "loxvm/token"

type parseFn func(c *Compiler, canAssign bool)

// parseRule is one row of the Pratt table: how to parse this token kind
// when it starts an expression (prefix), how to fold it in when it
// appears between two expressions (infix), and how tightly the infix
// form binds.
type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is the Pratt table, expressed as a flat map rather than an
// array indexed by token kind — token.TokenType is a string type here,
// not a small int, so a map is the natural fit, unlike clox's array of
// function pointers indexed by an enum.
var rules map[token.TokenType]parseRule

// The entries live in ruleTable and are assigned to rules in init: the
// parse functions named in the table reach rules themselves, and Go
// rejects that cycle in a package-level initializer.
func init() { rules = ruleTable }

var ruleTable = map[token.TokenType]parseRule{
	token.LPA:          {prefix: grouping},
	token.SUB:          {prefix: unary, infix: binary, precedence: PrecTerm},
	token.ADD:          {infix: binary, precedence: PrecTerm},
	token.DIV:          {infix: binary, precedence: PrecFactor},
	token.MULT:         {infix: binary, precedence: PrecFactor},
	token.BANG:         {prefix: unary},
	token.NOT_EQUAL:    {infix: binary, precedence: PrecEquality},
	token.EQUAL_EQUAL:  {infix: binary, precedence: PrecEquality},
	token.LARGER:       {infix: binary, precedence: PrecComparison},
	token.LARGER_EQUAL: {infix: binary, precedence: PrecComparison},
	token.LESS:         {infix: binary, precedence: PrecComparison},
	token.LESS_EQUAL:   {infix: binary, precedence: PrecComparison},
	token.IDENTIFIER:   {prefix: variable},
	token.STRING:       {prefix: str},
	token.NUMBER:       {prefix: number},
	token.AND:          {infix: and_, precedence: PrecAnd},
	token.OR:           {infix: or_, precedence: PrecOr},
	token.FALSE:        {prefix: literal},
	token.TRUE:         {prefix: literal},
	token.NULL:         {prefix: literal},
}
