// Package scanner implements the byte-driven lexer that turns source text
// into a lazy sequence of tokens. Unlike a batch lexer that tokenizes the
// whole source up front, Scanner hands out one token per call to Next,
// which is what lets the single-pass compiler interleave scanning with
// parsing and emission.
package scanner

import (
	"loxvm/token"
)

const nul = byte(0)

// Scanner reads a NUL-terminated byte buffer and produces tokens on
// demand. It is restartable: a fresh Scanner can be created per source
// string, and none of its state survives across sources.
type Scanner struct {
	source []byte
	start  int
	pos    int
	line   int
}

// New returns a Scanner positioned at the start of source. A NUL byte is
// appended internally as a sentinel so advance and peek never need a
// bounds check on the hot path.
func New(source string) *Scanner {
	buf := make([]byte, len(source)+1)
	copy(buf, source)
	buf[len(source)] = nul
	return &Scanner{source: buf, line: 1}
}

func (s *Scanner) isAtEnd() bool {
	return s.source[s.pos] == nul
}

func (s *Scanner) advance() byte {
	c := s.source[s.pos]
	s.pos++
	return c
}

func (s *Scanner) peek() byte {
	return s.source[s.pos]
}

func (s *Scanner) peekNext() byte {
	if s.isAtEnd() {
		return nul
	}
	return s.source[s.pos+1]
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.pos] != expected {
		return false
	}
	s.pos++
	return true
}

func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.advance()
		case '\n':
			s.line++
			s.advance()
		case '/':
			if s.peekNext() == '/' {
				for s.peek() != '\n' && !s.isAtEnd() {
					s.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (s *Scanner) makeToken(kind token.TokenType) token.Token {
	return token.Create(kind, s.source, s.start, s.pos-s.start, s.line)
}

func (s *Scanner) errorToken(message string) token.Token {
	return token.CreateError(message, s.line)
}

// Next scans and returns the next token in the source, advancing past
// it. It returns an EOF token forever once the source is exhausted, so
// callers can keep pulling tokens without a separate "done" check.
func (s *Scanner) Next() token.Token {
	s.skipWhitespace()
	s.start = s.pos

	if s.isAtEnd() {
		return s.makeToken(token.EOF)
	}

	c := s.advance()
	if isAlpha(c) {
		return s.identifier()
	}
	if isDigit(c) {
		return s.number()
	}

	switch c {
	case '(':
		return s.makeToken(token.LPA)
	case ')':
		return s.makeToken(token.RPA)
	case '{':
		return s.makeToken(token.LCUR)
	case '}':
		return s.makeToken(token.RCUR)
	case ';':
		return s.makeToken(token.SEMICOLON)
	case ',':
		return s.makeToken(token.COMMA)
	case '.':
		return s.makeToken(token.DOT)
	case '-':
		return s.makeToken(token.SUB)
	case '+':
		return s.makeToken(token.ADD)
	case '/':
		return s.makeToken(token.DIV)
	case '*':
		return s.makeToken(token.MULT)
	case '!':
		if s.match('=') {
			return s.makeToken(token.NOT_EQUAL)
		}
		return s.makeToken(token.BANG)
	case '=':
		if s.match('=') {
			return s.makeToken(token.EQUAL_EQUAL)
		}
		return s.makeToken(token.ASSIGN)
	case '<':
		if s.match('=') {
			return s.makeToken(token.LESS_EQUAL)
		}
		return s.makeToken(token.LESS)
	case '>':
		if s.match('=') {
			return s.makeToken(token.LARGER_EQUAL)
		}
		return s.makeToken(token.LARGER)
	case '"':
		return s.string()
	}

	return s.errorToken("Unexpected character.")
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	lexeme := string(s.source[s.start:s.pos])
	if kind, ok := token.KeyWords[lexeme]; ok {
		return s.makeToken(kind)
	}
	return s.makeToken(token.IDENTIFIER)
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.makeToken(token.NUMBER)
}

func (s *Scanner) string() token.Token {
	startLine := s.line
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.line = startLine
		return s.errorToken("Unterminated string.")
	}
	s.advance() // closing quote
	return s.makeToken(token.STRING)
}
