package token

import "testing"

func TestCreate(t *testing.T) {
	src := []byte("var count = 1;")
	tok := Create(VAR, src, 0, 3, 1)
	if tok.TokenType != VAR || tok.Lexeme != "var" || tok.Line != 1 {
		t.Errorf("Create() = %+v, want {VAR var 1}", tok)
	}
}

func TestCreateError(t *testing.T) {
	tok := CreateError("Unexpected character.", 4)
	if tok.TokenType != ERR || tok.Lexeme != "Unexpected character." || tok.Line != 4 {
		t.Errorf("CreateError() = %+v", tok)
	}
}

func TestKeyWordsCoverLanguageSurface(t *testing.T) {
	want := []string{
		"and", "class", "else", "false", "for", "fun", "if", "nil",
		"or", "print", "return", "super", "this", "true", "var", "while",
	}
	for _, kw := range want {
		if _, ok := KeyWords[kw]; !ok {
			t.Errorf("KeyWords missing %q", kw)
		}
	}
	if len(KeyWords) != len(want) {
		t.Errorf("KeyWords has %d entries, want %d", len(KeyWords), len(want))
	}
}

func TestString(t *testing.T) {
	tok := Token{TokenType: IDENTIFIER, Lexeme: "x", Line: 2}
	got := tok.String()
	want := `Token {Type: IDENTIFIER, Value: "x", Line: 2}`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
