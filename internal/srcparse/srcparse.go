// Package srcparse locates method declarations inside Go source text.
package srcparse

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// FindMethodLine parses the given source text and returns the 1-based line of
// the named function or method declaration. The second return value is false
// when the file parses cleanly but declares no such method.
func FindMethodLine(src []byte, methodName string) (uint, bool, error) {
	return findLine(src, "", methodName)
}

// FindMethodLineForType behaves like FindMethodLine but only matches methods
// whose receiver base type equals className.
func FindMethodLineForType(src []byte, className, methodName string) (uint, bool, error) {
	return findLine(src, className, methodName)
}

func findLine(src []byte, className, methodName string) (uint, bool, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, parser.SkipObjectResolution)
	if err != nil {
		return 0, false, fmt.Errorf("cannot parse source: %w", err)
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Name == nil || fn.Name.Name != methodName {
			continue
		}
		if className != "" && receiverTypeName(fn) != className {
			continue
		}
		return uint(fset.Position(fn.Pos()).Line), true, nil
	}
	return 0, false, nil
}

// receiverTypeName returns the base identifier of a method receiver, peeling
// pointer and generic wrappers. Plain functions return an empty string.
func receiverTypeName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}
