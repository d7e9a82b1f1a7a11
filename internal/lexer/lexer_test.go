package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let x: int = 5;
	x = x + 10;`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"let", LET},
		{"x", IDENT},
		{":", COLON},
		{"int", IDENT},
		{"=", ASSIGN},
		{"5", INT},
		{";", SEMICOLON},
		{"x", IDENT},
		{"=", ASSIGN},
		{"x", IDENT},
		{"+", PLUS},
		{"10", INT},
		{";", SEMICOLON},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%v, got=%v (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `let fun if else elseif while for return true false import export struct enum void from`

	tests := []TokenType{
		LET, FUN, IF, ELSE, ELSEIF, WHILE, FOR, RETURN, TRUE, FALSE,
		IMPORT, EXPORT, STRUCT, ENUM, VOID, FROM,
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - expected=%v, got=%v (literal=%q)", i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestMultiCharOperators(t *testing.T) {
	input := `== != <= >= && || -> ::`
	tests := []TokenType{EQ, NOT_EQ, LT_EQ, GT_EQ, AND, OR, ARROW, DCOLON, EOF}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - expected=%v, got=%v (literal=%q)", i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	l := New(`42 3.14 0 0.5`)
	want := []struct {
		tt  TokenType
		lit string
	}{
		{INT, "42"}, {FLOAT, "3.14"}, {INT, "0"}, {FLOAT, "0.5"}, {EOF, ""},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.tt || tok.Literal != w.lit {
			t.Fatalf("tests[%d]: got (%v,%q), want (%v,%q)", i, tok.Type, tok.Literal, w.tt, w.lit)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\t\"c\\d"`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %v", tok.Type)
	}
	want := "a\nb\t\"c\\d"
	if tok.Literal != want {
		t.Fatalf("got %q, want %q", tok.Literal, want)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unterminated string error")
	}
}

func TestInvalidEscape(t *testing.T) {
	l := New(`"a\qb"`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an invalid escape error")
	}
}

func TestComments(t *testing.T) {
	input := `let x = 1; // trailing comment
	/* block
	   comment */
	let y = 2;`

	l := New(input)
	var kinds []TokenType
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	for _, k := range kinds {
		if k == COMMENT {
			t.Fatal("comments should be skipped by default")
		}
	}
}

func TestPreserveComments(t *testing.T) {
	l := New("// hi\nlet x = 1;", WithPreserveComments(true))
	tok := l.NextToken()
	if tok.Type != COMMENT {
		t.Fatalf("expected COMMENT, got %v", tok.Type)
	}
	if tok.Literal != "// hi" {
		t.Fatalf("got %q", tok.Literal)
	}
}

func TestPositionTracking(t *testing.T) {
	input := "let x = 1;\nlet y = 2;"
	l := New(input)

	tok := l.NextToken() // let
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("got line %d col %d", tok.Pos.Line, tok.Pos.Column)
	}

	for tok.Type != SEMICOLON {
		tok = l.NextToken()
	}
	tok = l.NextToken() // let on line 2
	if tok.Pos.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Pos.Line)
	}
}

func TestUnicodeIdentifiersAndColumns(t *testing.T) {
	l := New(`let Δ = 1;`)
	tok := l.NextToken() // let
	_ = tok
	tok = l.NextToken() // Δ
	if tok.Type != IDENT || tok.Literal != "Δ" {
		t.Fatalf("expected IDENT Δ, got %v %q", tok.Type, tok.Literal)
	}
	if tok.Pos.Column != 5 {
		t.Fatalf("expected column 5, got %d", tok.Pos.Column)
	}
}

func TestBOMStripped(t *testing.T) {
	input := "\xEF\xBB\xBFlet x = 1;"
	l := New(input)
	tok := l.NextToken()
	if tok.Type != LET {
		t.Fatalf("expected LET, got %v", tok.Type)
	}
	if tok.Pos.Offset != 0 {
		t.Fatalf("expected BOM-stripped offset 0, got %d", tok.Pos.Offset)
	}
}

func TestUnexpectedChar(t *testing.T) {
	l := New(`@`)
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unexpected-char error")
	}
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	toks := Tokenize(`let x = 1;`)
	if toks[len(toks)-1].Type != EOF {
		t.Fatal("Tokenize must end with EOF")
	}
}
