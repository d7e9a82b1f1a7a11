package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/errcodes"
)

var (
	parseEvalExpr string
	parseDumpAST  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Raven program and display its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, filename, err := readInput(parseEvalExpr, args)
		if err != nil {
			return err
		}

		program, errs := parseOnly(source, filename)
		if len(errs) > 0 {
			fmt.Fprint(os.Stderr, errcodes.FormatAll(errs, isTerminal(os.Stderr)))
			os.Exit(1)
		}

		if parseDumpAST {
			dumpASTNode(program, 0)
			return nil
		}
		fmt.Println(program.String())
		return nil
	},
}

func dumpASTNode(node any, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Program:
		fmt.Printf("%sProgram (%d statements)\n", pad, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpASTNode(stmt, indent+1)
		}
	case *ast.BlockStatement:
		fmt.Printf("%sBlockStatement (%d statements)\n", pad, len(n.Statements))
		for _, stmt := range n.Statements {
			dumpASTNode(stmt, indent+1)
		}
	case *ast.ExprStatement:
		fmt.Printf("%sExprStatement\n", pad)
		dumpASTNode(n.Expression, indent+1)
	case *ast.VarDecl:
		fmt.Printf("%sVarDecl: %s (exported=%v)\n", pad, n.Name, n.IsExported)
		dumpASTNode(n.Value, indent+1)
	case *ast.AssignStatement:
		fmt.Printf("%sAssignStatement\n", pad)
		dumpASTNode(n.Target, indent+1)
		dumpASTNode(n.Value, indent+1)
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement\n", pad)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Then, indent+1)
		for _, clause := range n.ElseIfs {
			dumpASTNode(clause.Condition, indent+1)
			dumpASTNode(clause.Block, indent+1)
		}
		if n.Else != nil {
			dumpASTNode(n.Else, indent+1)
		}
	case *ast.WhileStatement:
		fmt.Printf("%sWhileStatement\n", pad)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Body, indent+1)
	case *ast.ForStatement:
		fmt.Printf("%sForStatement\n", pad)
		dumpASTNode(n.Body, indent+1)
	case *ast.ReturnStatement:
		fmt.Printf("%sReturnStatement\n", pad)
		if n.Value != nil {
			dumpASTNode(n.Value, indent+1)
		}
	case *ast.FuncDecl:
		fmt.Printf("%sFuncDecl: %s (exported=%v, %d params)\n", pad, n.Name, n.IsExported, len(n.Params))
		dumpASTNode(n.Body, indent+1)
	case *ast.StructDecl:
		fmt.Printf("%sStructDecl: %s (%d fields)\n", pad, n.Name, len(n.Fields))
	case *ast.EnumDecl:
		fmt.Printf("%sEnumDecl: %s (%d variants)\n", pad, n.Name, len(n.Variants))
	case *ast.ImportStatement:
		fmt.Printf("%sImportStatement: %q\n", pad, n.ModulePath)
	case *ast.BinaryExpression:
		fmt.Printf("%sBinaryExpression (%s)\n", pad, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.UnaryExpression:
		fmt.Printf("%sUnaryExpression (%s)\n", pad, n.Operator)
		dumpASTNode(n.Operand, indent+1)
	case *ast.CallExpression:
		fmt.Printf("%sCallExpression\n", pad)
		dumpASTNode(n.Callee, indent+1)
		for _, a := range n.Args {
			dumpASTNode(a, indent+2)
		}
	case *ast.IndexExpression:
		fmt.Printf("%sIndexExpression\n", pad)
		dumpASTNode(n.Receiver, indent+1)
		dumpASTNode(n.Index, indent+1)
	case *ast.FieldAccessExpression:
		fmt.Printf("%sFieldAccessExpression: .%s\n", pad, n.Name)
		dumpASTNode(n.Receiver, indent+1)
	case *ast.MethodCallExpression:
		fmt.Printf("%sMethodCallExpression: .%s()\n", pad, n.Name)
		dumpASTNode(n.Receiver, indent+1)
	case *ast.EnumPathExpression:
		fmt.Printf("%sEnumPathExpression: %s::%s\n", pad, n.Enum, n.Variant)
	case *ast.StructLiteral:
		fmt.Printf("%sStructLiteral: %s\n", pad, n.TypeName)
	case *ast.ArrayLiteral:
		fmt.Printf("%sArrayLiteral (%d elements)\n", pad, len(n.Elements))
	case *ast.Identifier:
		fmt.Printf("%sIdentifier: %s\n", pad, n.Value)
	case *ast.IntLiteral:
		fmt.Printf("%sIntLiteral: %d\n", pad, n.Value)
	case *ast.FloatLiteral:
		fmt.Printf("%sFloatLiteral: %g\n", pad, n.Value)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral: %q\n", pad, n.Value)
	case *ast.BoolLiteral:
		fmt.Printf("%sBoolLiteral: %v\n", pad, n.Value)
	default:
		fmt.Printf("%s%T: %v\n", pad, node, node)
	}
}

func init() {
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
	rootCmd.AddCommand(parseCmd)
}
