package parser

import (
	"testing"

	"github.com/martian56/raven/internal/ast"
)

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	if err := p.Err(); err != nil {
		t.Fatalf("parser error: %v", err)
	}
}

func TestVarDeclWithAnnotation(t *testing.T) {
	p := New("let x: int = 5;", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	if len(program.Statements) != 1 {
		t.Fatalf("program has wrong number of statements. got=%d", len(program.Statements))
	}

	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement is not *ast.VarDecl. got=%T", program.Statements[0])
	}
	if decl.Name != "x" {
		t.Errorf("decl.Name = %q, want %q", decl.Name, "x")
	}
	if decl.DeclaredType == nil || decl.DeclaredType.Name != "int" {
		t.Errorf("decl.DeclaredType = %v, want int", decl.DeclaredType)
	}
	lit, ok := decl.Value.(*ast.IntLiteral)
	if !ok || lit.Value != 5 {
		t.Errorf("decl.Value = %v, want IntLiteral(5)", decl.Value)
	}
}

func TestVarDeclWithoutAnnotation(t *testing.T) {
	p := New(`let name = "raven";`, "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl := program.Statements[0].(*ast.VarDecl)
	if decl.DeclaredType != nil {
		t.Errorf("decl.DeclaredType = %v, want nil", decl.DeclaredType)
	}
}

func TestAssignStatement(t *testing.T) {
	p := New("x = x + 1;", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt, ok := program.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("statement is not *ast.AssignStatement. got=%T", program.Statements[0])
	}
	if _, ok := stmt.Target.(*ast.Identifier); !ok {
		t.Errorf("stmt.Target is not *ast.Identifier. got=%T", stmt.Target)
	}
}

func TestAssignToIndexAndField(t *testing.T) {
	tests := []string{
		"arr[0] = 1;",
		"p.x = 1;",
		"arr[0].x = 1;",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			p := New(input, "")
			p.ParseProgram()
			checkParserErrors(t, p)
		})
	}
}

func TestInvalidAssignTarget(t *testing.T) {
	p := New("1 = 2;", "")
	p.ParseProgram()
	if p.Err() == nil {
		t.Fatalf("expected an error for assigning to a literal")
	}
}

func TestIfElseIfElse(t *testing.T) {
	input := `
	if (x > 0) {
		y = 1;
	} elseif (x < 0) {
		y = -1;
	} else {
		y = 0;
	}`

	p := New(input, "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt, ok := program.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is not *ast.IfStatement. got=%T", program.Statements[0])
	}
	if len(stmt.ElseIfs) != 1 {
		t.Fatalf("len(stmt.ElseIfs) = %d, want 1", len(stmt.ElseIfs))
	}
	if stmt.Else == nil {
		t.Fatalf("stmt.Else is nil, want a block")
	}
}

func TestWhileStatement(t *testing.T) {
	p := New("while (i < 10) { i = i + 1; }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt, ok := program.Statements[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement is not *ast.WhileStatement. got=%T", program.Statements[0])
	}
	if len(stmt.Body.Statements) != 1 {
		t.Errorf("len(stmt.Body.Statements) = %d, want 1", len(stmt.Body.Statements))
	}
}

func TestForStatement(t *testing.T) {
	p := New("for (let i = 0; i < 10; i = i + 1) { print(i); }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt, ok := program.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement is not *ast.ForStatement. got=%T", program.Statements[0])
	}
	if stmt.Init == nil || stmt.Step == nil {
		t.Fatalf("expected non-nil Init and Step, got Init=%v Step=%v", stmt.Init, stmt.Step)
	}
}

func TestForStatementEmptyClauses(t *testing.T) {
	p := New("for (; true; ) { break_loop(); }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt := program.Statements[0].(*ast.ForStatement)
	if stmt.Init != nil || stmt.Step != nil {
		t.Errorf("expected nil Init and Step for empty clauses")
	}
}

func TestFuncDecl(t *testing.T) {
	p := New("fun add(a: int, b: int) -> int { return a + b; }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl, ok := program.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("statement is not *ast.FuncDecl. got=%T", program.Statements[0])
	}
	if decl.Name != "add" {
		t.Errorf("decl.Name = %q, want %q", decl.Name, "add")
	}
	if len(decl.Params) != 2 {
		t.Fatalf("len(decl.Params) = %d, want 2", len(decl.Params))
	}
	if decl.ReturnType == nil || decl.ReturnType.Name != "int" {
		t.Errorf("decl.ReturnType = %v, want int", decl.ReturnType)
	}
}

func TestExportedFuncDecl(t *testing.T) {
	p := New("export fun helper() { return; }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl := program.Statements[0].(*ast.FuncDecl)
	if !decl.IsExported {
		t.Errorf("decl.IsExported = false, want true")
	}
}

func TestStructDecl(t *testing.T) {
	p := New("struct Point { x: int, y: int }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl, ok := program.Statements[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("statement is not *ast.StructDecl. got=%T", program.Statements[0])
	}
	if len(decl.Fields) != 2 {
		t.Fatalf("len(decl.Fields) = %d, want 2", len(decl.Fields))
	}
}

func TestEnumDecl(t *testing.T) {
	p := New("enum Color { Red, Green, Blue }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl, ok := program.Statements[0].(*ast.EnumDecl)
	if !ok {
		t.Fatalf("statement is not *ast.EnumDecl. got=%T", program.Statements[0])
	}
	if len(decl.Variants) != 3 {
		t.Fatalf("len(decl.Variants) = %d, want 3", len(decl.Variants))
	}
}

func TestImportForms(t *testing.T) {
	tests := []struct {
		input      string
		modulePath string
		names      int
	}{
		{`import mathutils;`, "mathutils", 0},
		{`import mu from "lib/mathutils.rv";`, "lib/mathutils.rv", 0},
		{`import { sqrt, pow } from "lib/mathutils.rv";`, "lib/mathutils.rv", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New(tt.input, "")
			program := p.ParseProgram()
			checkParserErrors(t, p)

			stmt, ok := program.Statements[0].(*ast.ImportStatement)
			if !ok {
				t.Fatalf("statement is not *ast.ImportStatement. got=%T", program.Statements[0])
			}
			if stmt.ModulePath != tt.modulePath {
				t.Errorf("stmt.ModulePath = %q, want %q", stmt.ModulePath, tt.modulePath)
			}
			if len(stmt.Names) != tt.names {
				t.Errorf("len(stmt.Names) = %d, want %d", len(stmt.Names), tt.names)
			}
		})
	}
}

func TestStructLiteralSuppressedAtStatementStart(t *testing.T) {
	// Per the statement-start disambiguation rule, `Point {` at the head
	// of a statement parses as an identifier followed by a block, not a
	// struct literal — so this must parse as two statements.
	p := New("Point { 1; }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	if len(program.Statements) != 2 {
		t.Fatalf("len(program.Statements) = %d, want 2", len(program.Statements))
	}
	if _, ok := program.Statements[0].(*ast.ExprStatement); !ok {
		t.Errorf("Statements[0] is not *ast.ExprStatement. got=%T", program.Statements[0])
	}
	if _, ok := program.Statements[1].(*ast.BlockStatement); !ok {
		t.Errorf("Statements[1] is not *ast.BlockStatement. got=%T", program.Statements[1])
	}
}

func TestStructLiteralAllowedInLetBinding(t *testing.T) {
	p := New("let p = Point { x: 1, y: 2 };", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl := program.Statements[0].(*ast.VarDecl)
	lit, ok := decl.Value.(*ast.StructLiteral)
	if !ok {
		t.Fatalf("decl.Value is not *ast.StructLiteral. got=%T", decl.Value)
	}
	if lit.TypeName != "Point" || len(lit.Fields) != 2 {
		t.Errorf("lit = %+v, want TypeName=Point with 2 fields", lit)
	}
}

func TestEnumPathExpression(t *testing.T) {
	p := New("let c = Color::Red;", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl := program.Statements[0].(*ast.VarDecl)
	path, ok := decl.Value.(*ast.EnumPathExpression)
	if !ok {
		t.Fatalf("decl.Value is not *ast.EnumPathExpression. got=%T", decl.Value)
	}
	if path.Enum != "Color" || path.Variant != "Red" {
		t.Errorf("path = %+v, want Color::Red", path)
	}
}

func TestMethodCallVsFieldAccess(t *testing.T) {
	p := New("let a = p.distance(); let b = p.x;", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	a := program.Statements[0].(*ast.VarDecl)
	if _, ok := a.Value.(*ast.MethodCallExpression); !ok {
		t.Errorf("a.Value is not *ast.MethodCallExpression. got=%T", a.Value)
	}

	b := program.Statements[1].(*ast.VarDecl)
	if _, ok := b.Value.(*ast.FieldAccessExpression); !ok {
		t.Errorf("b.Value is not *ast.FieldAccessExpression. got=%T", b.Value)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"1 + 2 + 3;", "((1 + 2) + 3)"},
		{"a < b == c > d;", "((a < b) == (c > d))"},
		{"true && false || true;", "((true && false) || true)"},
		{"-a * b;", "((-a) * b)"},
		{"!a == b;", "((!a) == b)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New(tt.input, "")
			program := p.ParseProgram()
			checkParserErrors(t, p)

			stmt := program.Statements[0].(*ast.ExprStatement)
			if stmt.Expression.String() != tt.expected {
				t.Errorf("got=%q, want=%q", stmt.Expression.String(), tt.expected)
			}
		})
	}
}

func TestArrayLiteralAndIndexing(t *testing.T) {
	p := New("let a = [1, 2, 3]; let b = a[0];", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	arr := program.Statements[0].(*ast.VarDecl).Value.(*ast.ArrayLiteral)
	if len(arr.Elements) != 3 {
		t.Fatalf("len(arr.Elements) = %d, want 3", len(arr.Elements))
	}

	idx := program.Statements[1].(*ast.VarDecl).Value.(*ast.IndexExpression)
	if _, ok := idx.Index.(*ast.IntLiteral); !ok {
		t.Errorf("idx.Index is not *ast.IntLiteral. got=%T", idx.Index)
	}
}

func TestArrayTypeAnnotation(t *testing.T) {
	p := New("let a: int[] = [1, 2];", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl := program.Statements[0].(*ast.VarDecl)
	if decl.DeclaredType.String() != "int[]" {
		t.Errorf("decl.DeclaredType.String() = %q, want %q", decl.DeclaredType.String(), "int[]")
	}
}

func TestReturnStatementBareAndWithValue(t *testing.T) {
	p := New("fun f() { return; } fun g() -> int { return 1; }", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	f := program.Statements[0].(*ast.FuncDecl)
	ret := f.Body.Statements[0].(*ast.ReturnStatement)
	if ret.Value != nil {
		t.Errorf("ret.Value = %v, want nil", ret.Value)
	}

	g := program.Statements[1].(*ast.FuncDecl)
	ret2 := g.Body.Statements[0].(*ast.ReturnStatement)
	if ret2.Value == nil {
		t.Errorf("ret2.Value = nil, want an expression")
	}
}

func TestParseErrorStopsAtFirstFailure(t *testing.T) {
	p := New("let x: = 5;", "")
	p.ParseProgram()
	if p.Err() == nil {
		t.Fatalf("expected a parse error for missing type name")
	}
}

func TestCallExpressionArgs(t *testing.T) {
	p := New("add(1, 2, 3);", "")
	program := p.ParseProgram()
	checkParserErrors(t, p)

	stmt := program.Statements[0].(*ast.ExprStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("stmt.Expression is not *ast.CallExpression. got=%T", stmt.Expression)
	}
	if len(call.Args) != 3 {
		t.Errorf("len(call.Args) = %d, want 3", len(call.Args))
	}
}
