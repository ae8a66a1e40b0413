package scanner

import (
	"testing"

	"loxvm/token"
)

func scanAll(src string) []token.Token {
	s := New(src)
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.TokenType == token.EOF {
			return toks
		}
	}
}

func TestOperators(t *testing.T) {
	toks := scanAll("==/=*+>-<!=<=>=!")
	want := []token.TokenType{
		token.EQUAL_EQUAL, token.DIV, token.ASSIGN, token.MULT, token.ADD,
		token.LARGER, token.SUB, token.LESS, token.NOT_EQUAL,
		token.LESS_EQUAL, token.LARGER_EQUAL, token.BANG, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].TokenType != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].TokenType, k)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll("var x = foo_bar;")
	want := []token.TokenType{token.VAR, token.IDENTIFIER, token.ASSIGN, token.IDENTIFIER, token.SEMICOLON, token.EOF}
	for i, k := range want {
		if toks[i].TokenType != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].TokenType, k)
		}
	}
	if toks[1].Lexeme != "x" || toks[3].Lexeme != "foo_bar" {
		t.Errorf("unexpected lexemes: %q %q", toks[1].Lexeme, toks[3].Lexeme)
	}
}

func TestNumbers(t *testing.T) {
	toks := scanAll("123 4.5 6.")
	if toks[0].Lexeme != "123" || toks[1].Lexeme != "4.5" {
		t.Fatalf("unexpected numbers: %v", toks)
	}
	// "6." stops at the dot: no digit follows it, so the dot is a
	// separate DOT token instead of part of the number.
	if toks[2].Lexeme != "6" || toks[2].TokenType != token.NUMBER {
		t.Errorf("token 2 = %+v, want NUMBER 6", toks[2])
	}
	if toks[3].TokenType != token.DOT {
		t.Errorf("token 3 = %+v, want DOT", toks[3])
	}
}

func TestString(t *testing.T) {
	toks := scanAll(`"hello world"`)
	if toks[0].TokenType != token.STRING || toks[0].Lexeme != `"hello world"` {
		t.Errorf("string token = %+v", toks[0])
	}
}

func TestUnterminatedString(t *testing.T) {
	toks := scanAll(`"hello`)
	if toks[0].TokenType != token.ERR {
		t.Errorf("expected ERR token, got %+v", toks[0])
	}
}

func TestLineComment(t *testing.T) {
	toks := scanAll("1 // comment\n2")
	if toks[0].Lexeme != "1" || toks[1].Lexeme != "2" {
		t.Errorf("comment not skipped: %v", toks)
	}
	if toks[1].Line != 2 {
		t.Errorf("line tracking broken: %+v", toks[1])
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	toks := scanAll("@")
	if toks[0].TokenType != token.ERR {
		t.Errorf("expected ERR token for '@', got %+v", toks[0])
	}
}

func TestEOFIsSticky(t *testing.T) {
	s := New("")
	first := s.Next()
	second := s.Next()
	if first.TokenType != token.EOF || second.TokenType != token.EOF {
		t.Errorf("expected repeated EOF, got %+v then %+v", first, second)
	}
}

func TestRestartable(t *testing.T) {
	a := New("1")
	b := New("2")
	if a.Next().Lexeme != "1" || b.Next().Lexeme != "2" {
		t.Errorf("independent scanners interfered with each other")
	}
}
