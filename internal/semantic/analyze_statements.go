package semantic

import (
	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/types"
)

// analyzeStatement dispatches on the statement's concrete type. Struct
// and enum declarations are already fully processed by the hoist pass,
// so they are no-ops here.
func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(s)
	case *ast.AssignStatement:
		a.analyzeAssignStatement(s)
	case *ast.ExprStatement:
		a.analyzeExpression(s.Expression)
	case *ast.BlockStatement:
		a.analyzeBlockScoped(s)
	case *ast.IfStatement:
		a.analyzeIfStatement(s)
	case *ast.WhileStatement:
		a.analyzeWhileStatement(s)
	case *ast.ForStatement:
		a.analyzeForStatement(s)
	case *ast.ReturnStatement:
		a.analyzeReturnStatement(s)
	case *ast.FuncDecl:
		a.analyzeFuncDeclBody(s)
	case *ast.StructDecl, *ast.EnumDecl:
		// registered during hoisting
	case *ast.ImportStatement:
		a.analyzeImportStatement(s)
	default:
		a.addErrorAt(errcodes.Internal, stmt, "unhandled statement type %T", stmt)
	}
}

// analyzeBlockScoped opens a fresh lexical scope for a `{ ... }` block
// encountered as its own statement (e.g. bare blocks) and for if/while
// bodies; a for loop instead walks its body statements directly in the
// scope it opened for its init clause, so the two share one scope.
func (a *Analyzer) analyzeBlockScoped(b *ast.BlockStatement) {
	outer := a.symbols
	a.symbols = NewEnclosedSymbolTable(outer)
	for _, stmt := range b.Statements {
		a.analyzeStatement(stmt)
	}
	a.symbols = outer
}

func (a *Analyzer) analyzeVarDecl(decl *ast.VarDecl) {
	if a.symbols.IsDeclaredInCurrentScope(decl.Name) {
		a.addErrorAt(errcodes.NameError, decl, "'%s' is already declared in this scope", decl.Name)
	}

	valueType := a.analyzeExpression(decl.Value)

	if decl.DeclaredType != nil {
		declared := a.resolveAnnotation(decl.DeclaredType)
		if !types.Widens(valueType, declared) {
			a.addErrorAt(errcodes.TypeError, decl,
				"cannot assign %s to variable '%s' of type %s", valueType.String(), decl.Name, declared.String())
		}
		a.symbols.Define(decl.Name, declared)
		return
	}

	a.symbols.Define(decl.Name, valueType)
}

func (a *Analyzer) analyzeAssignStatement(stmt *ast.AssignStatement) {
	targetType := a.analyzeExpression(stmt.Target)
	valueType := a.analyzeExpression(stmt.Value)

	if !types.Widens(valueType, targetType) {
		a.addErrorAt(errcodes.TypeError, stmt,
			"cannot assign %s to target of type %s", valueType.String(), targetType.String())
	}
}

func (a *Analyzer) analyzeIfStatement(stmt *ast.IfStatement) {
	a.checkBoolCondition(stmt.Condition, stmt)
	a.analyzeBlockScoped(stmt.Then)
	for _, ei := range stmt.ElseIfs {
		a.checkBoolCondition(ei.Condition, stmt)
		a.analyzeBlockScoped(ei.Block)
	}
	if stmt.Else != nil {
		a.analyzeBlockScoped(stmt.Else)
	}
}

func (a *Analyzer) analyzeWhileStatement(stmt *ast.WhileStatement) {
	a.checkBoolCondition(stmt.Condition, stmt)
	a.loopDepth++
	a.analyzeBlockScoped(stmt.Body)
	a.loopDepth--
}

func (a *Analyzer) analyzeForStatement(stmt *ast.ForStatement) {
	outer := a.symbols
	a.symbols = NewEnclosedSymbolTable(outer)

	if stmt.Init != nil {
		a.analyzeStatement(stmt.Init)
	}
	a.checkBoolCondition(stmt.Condition, stmt)
	if stmt.Step != nil {
		a.analyzeStatement(stmt.Step)
	}

	a.loopDepth++
	for _, s := range stmt.Body.Statements {
		a.analyzeStatement(s)
	}
	a.loopDepth--

	a.symbols = outer
}

func (a *Analyzer) checkBoolCondition(cond ast.Expression, at ast.Node) {
	condType := a.analyzeExpression(cond)
	if !condType.Equals(types.Bool) && condType.Kind != types.KindUnknown {
		a.addErrorAt(errcodes.TypeError, at, "condition must be bool, got %s", condType.String())
	}
}

func (a *Analyzer) analyzeReturnStatement(stmt *ast.ReturnStatement) {
	if a.currentFunction == nil {
		a.addErrorAt(errcodes.TypeError, stmt, "'return' is only valid inside a function body")
		if stmt.Value != nil {
			a.analyzeExpression(stmt.Value)
		}
		return
	}

	expected := a.currentFunction.ReturnType

	if stmt.Value == nil {
		if !expected.Equals(types.Void) {
			a.addErrorAt(errcodes.TypeError, stmt, "missing return value, expected %s", expected.String())
		}
		return
	}

	actual := a.analyzeExpression(stmt.Value)
	if expected.Equals(types.Void) {
		a.addErrorAt(errcodes.TypeError, stmt, "function has no return type but 'return' supplies a value")
		return
	}
	if !types.Widens(actual, expected) {
		a.addErrorAt(errcodes.TypeError, stmt, "cannot return %s from function declared to return %s", actual.String(), expected.String())
	}
}

// analyzeFuncDeclBody checks a function body in a fresh scope seeded
// with only its parameters — functions do not close over the caller's
// locals (spec.md §4.4, "Function call semantics").
func (a *Analyzer) analyzeFuncDeclBody(decl *ast.FuncDecl) {
	info, ok := a.functions[decl.Name]
	if !ok {
		a.addErrorAt(errcodes.Internal, decl, "function '%s' missing from hoist pass", decl.Name)
		return
	}

	outer := a.symbols
	a.symbols = NewEnclosedSymbolTable(NewSymbolTable())
	prevFunc := a.currentFunction
	a.currentFunction = info

	for i, p := range decl.Params {
		a.symbols.Define(p.Name, info.Params[i])
	}

	for _, s := range decl.Body.Statements {
		a.analyzeStatement(s)
	}

	a.currentFunction = prevFunc
	a.symbols = outer
}

// analyzeImportStatement defines the imported names in the current
// scope with Unknown type. Real typing of imported symbols happens
// once the module resolver has analyzed the target file and exposed
// its exported declarations (internal/module); the checker here only
// validates the statement's own shape.
func (a *Analyzer) analyzeImportStatement(stmt *ast.ImportStatement) {
	if len(stmt.Names) > 0 {
		for _, n := range stmt.Names {
			a.symbols.Define(n, types.Unknown)
			a.importedTypes[n] = true
		}
		return
	}
	a.symbols.Define(stmt.Alias, types.Unknown)
}
