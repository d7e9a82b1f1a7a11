package semantic

import (
	"fmt"

	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
	"github.com/martian56/raven/internal/types"
)

// StructInfo records a struct declaration's shape for field lookup and
// struct-literal validation.
type StructInfo struct {
	Name       string
	FieldOrder []string
	Fields     map[string]types.Type
	Exported   bool
}

// EnumInfo records an enum declaration's variant set.
type EnumInfo struct {
	Name     string
	Variants map[string]bool
	Exported bool
}

// FuncInfo records a function signature for call-site arity and type
// checking.
type FuncInfo struct {
	Name       string
	Params     []types.Type
	ParamNames []string
	ReturnType types.Type
	Exported   bool
}

// Analyzer is Raven's static type checker. It performs two passes over
// a Program: a hoist pass that registers every top-level function,
// struct, and enum declaration (so forward references work regardless
// of declaration order), then a check pass that walks every statement
// and expression assigning and validating types.
type Analyzer struct {
	symbols *SymbolTable

	structs   map[string]*StructInfo
	enums     map[string]*EnumInfo
	functions map[string]*FuncInfo

	// importedTypes holds names brought in by `import { Name } from "...";`
	// that might be a struct or enum rather than a function/variable — the
	// real declaration lives in another file and is only known once the
	// module resolver runs, so struct-literal and enum-path checks treat
	// these names leniently instead of rejecting them outright.
	importedTypes map[string]bool

	currentFunction *FuncInfo
	loopDepth       int

	source string
	file   string
	errors []*errcodes.CompilerError
}

// NewAnalyzer creates an Analyzer over the given source text, used only
// to render error context (file may be empty for inline eval).
func NewAnalyzer(source, file string) *Analyzer {
	return &Analyzer{
		symbols:       NewSymbolTable(),
		structs:       make(map[string]*StructInfo),
		enums:         make(map[string]*EnumInfo),
		functions:     make(map[string]*FuncInfo),
		importedTypes: make(map[string]bool),
		source:        source,
		file:          file,
	}
}

// Errors returns every type error collected during Analyze, in
// declaration order. An empty slice means the program type-checks.
func (a *Analyzer) Errors() []*errcodes.CompilerError { return a.errors }

// addErrorAt records a type error at the given source position.
func (a *Analyzer) addErrorAt(kind errcodes.Kind, pos ast.Node, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	a.errors = append(a.errors, errcodes.New(kind, msg, pos.Pos(), a.source, a.file))
}

// lookupKind resolves a bare type name to a struct or enum type,
// satisfying ast.TypeAnnotation.Resolve's callback contract.
func (a *Analyzer) lookupKind(name string) (types.Type, bool) {
	if _, ok := a.structs[name]; ok {
		return types.StructOf(name), true
	}
	if _, ok := a.enums[name]; ok {
		return types.EnumOf(name), true
	}
	return types.Unknown, false
}

func (a *Analyzer) resolveAnnotation(ann *ast.TypeAnnotation) types.Type {
	return ann.Resolve(a.lookupKind)
}

// Analyze type-checks an entire program, returning the collected
// errors (empty if the program is well-typed). Analysis continues past
// the first error so a single run surfaces as many problems as
// possible, unlike the lexer/parser's fail-fast stages (spec.md §7).
func (a *Analyzer) Analyze(program *ast.Program) []*errcodes.CompilerError {
	a.hoistDecls(program.Statements)
	for _, stmt := range program.Statements {
		a.analyzeStatement(stmt)
	}
	return a.errors
}

// hoistDecls registers every top-level struct, enum, and function
// declaration before any bodies are checked, so mutually-recursive
// functions and forward type references resolve correctly.
func (a *Analyzer) hoistDecls(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch d := stmt.(type) {
		case *ast.StructDecl:
			a.hoistStructDecl(d)
		case *ast.EnumDecl:
			a.hoistEnumDecl(d)
		}
	}
	for _, stmt := range stmts {
		if d, ok := stmt.(*ast.FuncDecl); ok {
			a.hoistFuncDecl(d)
		}
	}
}

func (a *Analyzer) hoistStructDecl(d *ast.StructDecl) {
	if _, exists := a.structs[d.Name]; exists {
		a.addErrorAt(errcodes.NameError, d, "struct '%s' already declared", d.Name)
		return
	}
	info := &StructInfo{Name: d.Name, Fields: make(map[string]types.Type), Exported: d.IsExported}
	for _, f := range d.Fields {
		if _, dup := info.Fields[f.Name]; dup {
			a.addErrorAt(errcodes.NameError, d, "duplicate field '%s' in struct '%s'", f.Name, d.Name)
			continue
		}
		info.FieldOrder = append(info.FieldOrder, f.Name)
		info.Fields[f.Name] = a.resolveAnnotation(f.Type)
	}
	a.structs[d.Name] = info
}

func (a *Analyzer) hoistEnumDecl(d *ast.EnumDecl) {
	if _, exists := a.enums[d.Name]; exists {
		a.addErrorAt(errcodes.NameError, d, "enum '%s' already declared", d.Name)
		return
	}
	info := &EnumInfo{Name: d.Name, Variants: make(map[string]bool), Exported: d.IsExported}
	for _, v := range d.Variants {
		if info.Variants[v] {
			a.addErrorAt(errcodes.NameError, d, "duplicate variant '%s' in enum '%s'", v, d.Name)
			continue
		}
		info.Variants[v] = true
	}
	a.enums[d.Name] = info
}

func (a *Analyzer) hoistFuncDecl(d *ast.FuncDecl) {
	if _, exists := a.functions[d.Name]; exists {
		a.addErrorAt(errcodes.NameError, d, "function '%s' already declared", d.Name)
		return
	}
	info := &FuncInfo{Name: d.Name, Exported: d.IsExported, ReturnType: types.Void}
	for _, p := range d.Params {
		info.Params = append(info.Params, a.resolveAnnotation(p.Type))
		info.ParamNames = append(info.ParamNames, p.Name)
	}
	if d.ReturnType != nil {
		info.ReturnType = a.resolveAnnotation(d.ReturnType)
	}
	a.functions[d.Name] = info
}
