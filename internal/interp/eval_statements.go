package interp

import (
	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
)

// execStatement executes one statement in env, returning a StepResult
// the caller must check before continuing — see StepResult for why.
func (i *Interpreter) execStatement(stmt ast.Statement, env *Environment) (StepResult, error) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return i.execVarDecl(s, env)
	case *ast.AssignStatement:
		return i.execAssignStatement(s, env)
	case *ast.ExprStatement:
		_, err := i.evalExpression(s.Expression, env)
		return normalStep, err
	case *ast.BlockStatement:
		return i.execBlock(s, NewEnclosedEnvironment(env))
	case *ast.IfStatement:
		return i.execIfStatement(s, env)
	case *ast.WhileStatement:
		return i.execWhileStatement(s, env)
	case *ast.ForStatement:
		return i.execForStatement(s, env)
	case *ast.ReturnStatement:
		return i.execReturnStatement(s, env)
	case *ast.ImportStatement:
		return normalStep, i.execImportStatement(s, env)
	case *ast.FuncDecl, *ast.StructDecl, *ast.EnumDecl:
		return normalStep, nil // hoisted; nested decls are not part of spec scope
	default:
		return normalStep, i.runtimeErr(errcodes.Internal, stmt, "unhandled statement type %T", stmt)
	}
}

// execBlock runs every statement in b against env in order, stopping
// and propagating the first StepReturning or error it meets.
func (i *Interpreter) execBlock(b *ast.BlockStatement, env *Environment) (StepResult, error) {
	for _, stmt := range b.Statements {
		result, err := i.execStatement(stmt, env)
		if err != nil {
			return result, err
		}
		if result.Kind == StepReturning {
			return result, nil
		}
	}
	return normalStep, nil
}

func (i *Interpreter) execVarDecl(decl *ast.VarDecl, env *Environment) (StepResult, error) {
	v, err := i.evalExpression(decl.Value, env)
	if err != nil {
		return normalStep, err
	}
	env.Define(decl.Name, v)
	return normalStep, nil
}

func (i *Interpreter) execAssignStatement(stmt *ast.AssignStatement, env *Environment) (StepResult, error) {
	v, err := i.evalExpression(stmt.Value, env)
	if err != nil {
		return normalStep, err
	}
	return normalStep, i.assignTo(stmt.Target, v, env)
}

// assignTo mutates the location named by target to hold v. Index and
// field targets mutate through the shared ArrayValue/StructValue
// pointer, implementing the reference semantics from spec.md §3.
func (i *Interpreter) assignTo(target ast.Expression, v Value, env *Environment) error {
	switch t := target.(type) {
	case *ast.Identifier:
		if !env.Set(t.Value, v) {
			return i.runtimeErr(errcodes.NameError, t, "undefined name '%s'", t.Value)
		}
		return nil

	case *ast.IndexExpression:
		receiver, err := i.evalExpression(t.Receiver, env)
		if err != nil {
			return err
		}
		idxVal, err := i.evalExpression(t.Index, env)
		if err != nil {
			return err
		}
		arr, ok := receiver.(*ArrayValue)
		if !ok {
			return i.runtimeErr(errcodes.TypeError, t, "cannot index a %s", receiver.Type())
		}
		idx := idxVal.(*IntValue).Value
		if idx < 0 || idx >= int64(len(arr.Elements)) {
			return i.runtimeErr(errcodes.IndexError, t, "array index %d out of bounds (length %d)", idx, len(arr.Elements))
		}
		arr.Elements[idx] = v
		return nil

	case *ast.FieldAccessExpression:
		receiver, err := i.evalExpression(t.Receiver, env)
		if err != nil {
			return err
		}
		st, ok := receiver.(*StructValue)
		if !ok {
			return i.runtimeErr(errcodes.TypeError, t, "cannot access field on a %s", receiver.Type())
		}
		if _, ok := st.Fields[t.Name]; !ok {
			return i.runtimeErr(errcodes.FieldError, t, "struct '%s' has no field '%s'", st.TypeName, t.Name)
		}
		st.Fields[t.Name] = v
		return nil

	default:
		return i.runtimeErr(errcodes.Internal, target, "invalid assignment target %T", target)
	}
}

func (i *Interpreter) execIfStatement(stmt *ast.IfStatement, env *Environment) (StepResult, error) {
	cond, err := i.evalExpression(stmt.Condition, env)
	if err != nil {
		return normalStep, err
	}
	if cond.(*BoolValue).Value {
		return i.execBlock(stmt.Then, NewEnclosedEnvironment(env))
	}

	for _, ei := range stmt.ElseIfs {
		eiCond, err := i.evalExpression(ei.Condition, env)
		if err != nil {
			return normalStep, err
		}
		if eiCond.(*BoolValue).Value {
			return i.execBlock(ei.Block, NewEnclosedEnvironment(env))
		}
	}

	if stmt.Else != nil {
		return i.execBlock(stmt.Else, NewEnclosedEnvironment(env))
	}
	return normalStep, nil
}

func (i *Interpreter) execWhileStatement(stmt *ast.WhileStatement, env *Environment) (StepResult, error) {
	for {
		cond, err := i.evalExpression(stmt.Condition, env)
		if err != nil {
			return normalStep, err
		}
		if !cond.(*BoolValue).Value {
			return normalStep, nil
		}
		result, err := i.execBlock(stmt.Body, NewEnclosedEnvironment(env))
		if err != nil {
			return result, err
		}
		if result.Kind == StepReturning {
			return result, nil
		}
	}
}

func (i *Interpreter) execForStatement(stmt *ast.ForStatement, env *Environment) (StepResult, error) {
	loopEnv := NewEnclosedEnvironment(env)

	if stmt.Init != nil {
		if _, err := i.execStatement(stmt.Init, loopEnv); err != nil {
			return normalStep, err
		}
	}

	for {
		cond, err := i.evalExpression(stmt.Condition, loopEnv)
		if err != nil {
			return normalStep, err
		}
		if !cond.(*BoolValue).Value {
			return normalStep, nil
		}

		result, err := i.execBlock(stmt.Body, NewEnclosedEnvironment(loopEnv))
		if err != nil {
			return result, err
		}
		if result.Kind == StepReturning {
			return result, nil
		}

		if stmt.Step != nil {
			if _, err := i.execStatement(stmt.Step, loopEnv); err != nil {
				return normalStep, err
			}
		}
	}
}

func (i *Interpreter) execReturnStatement(stmt *ast.ReturnStatement, env *Environment) (StepResult, error) {
	if stmt.Value == nil {
		return returning(Void), nil
	}
	v, err := i.evalExpression(stmt.Value, env)
	if err != nil {
		return normalStep, err
	}
	return returning(v), nil
}

// execImportStatement resolves the import through the configured
// Importer and binds the requested names into env.
func (i *Interpreter) execImportStatement(stmt *ast.ImportStatement, env *Environment) error {
	if i.importer == nil {
		return i.runtimeErr(errcodes.ImportError, stmt, "no module resolver configured")
	}

	exports, err := i.importer.Resolve(i.file, stmt.ModulePath)
	if err != nil {
		return i.runtimeErr(errcodes.ImportError, stmt, "importing '%s': %v", stmt.ModulePath, err)
	}

	if len(stmt.Names) > 0 {
		for _, name := range stmt.Names {
			v, ok := exports[name]
			if !ok {
				return i.runtimeErr(errcodes.ImportError, stmt, "module '%s' has no exported name '%s'", stmt.ModulePath, name)
			}
			if i.bindTypeExport(name, v) {
				continue
			}
			env.Define(name, v)
		}
		return nil
	}

	// Whole-module import binds the alias to a struct-like namespace
	// value so `mu.sqrt(2)`-style access works through the same
	// FieldAccess/MethodCall machinery as any struct. Exported
	// structs/enums have no field-access syntax of their own (struct
	// literals are always written by bare name), so they're registered
	// directly rather than added to the namespace's fields.
	ns := &StructValue{TypeName: stmt.Alias, Fields: make(map[string]Value)}
	for name, v := range exports {
		if i.bindTypeExport(name, v) {
			continue
		}
		ns.FieldOrder = append(ns.FieldOrder, name)
		ns.Fields[name] = v
	}
	env.Define(stmt.Alias, ns)
	return nil
}

// bindTypeExport registers an imported struct/enum declaration into this
// Interpreter's own type tables under its declared name, so a later
// struct literal or enum path referencing that bare name resolves
// against the declaration from the module that exported it. Reports
// whether v was a type export at all (as opposed to a function/variable,
// which the caller binds into env instead).
func (i *Interpreter) bindTypeExport(name string, v Value) bool {
	switch tv := v.(type) {
	case *StructTypeValue:
		i.structs[name] = tv.Decl
		return true
	case *EnumTypeValue:
		i.enums[name] = tv.Decl
		return true
	default:
		return false
	}
}
