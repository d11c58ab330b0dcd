package parser

import (
	"fmt"

	"github.com/asl-lang/aslc/pkg/ast"
)

// exprToLVal reclassifies an already-parsed expression as an lvalue.  The
// lvalue and read-side expression grammars share the same surface syntax
// (a name followed by field/index/slice postfixes), so the parser parses
// the assignment target as an ordinary expression and converts it here
// rather than duplicating the postfix-parsing logic.
func exprToLVal(e ast.Expr) (ast.LVal, error) {
	switch n := e.(type) {
	case *ast.Var:
		return &ast.LVar{Name: n.Name}, nil
	case *ast.Field:
		rec, err := exprToLVal(n.Record)
		if err != nil {
			return nil, err
		}

		return &ast.LField{Record: rec, Name: n.Name}, nil
	case *ast.Index:
		arr, err := exprToLVal(n.Array)
		if err != nil {
			return nil, err
		}

		return &ast.LIndex{Array: arr, Key: n.Key}, nil
	case *ast.Slice:
		target, err := exprToLVal(n.Target)
		if err != nil {
			return nil, err
		}

		return &ast.LSlice{Kind: n.Kind, Target: target, Index: n.Index, Width: n.Width}, nil
	case *ast.TupleExpr:
		var elems []ast.LVal

		for _, el := range n.Elems {
			lv, err := exprToLVal(el)
			if err != nil {
				return nil, err
			}

			elems = append(elems, lv)
		}

		return &ast.LTuple{Elems: elems}, nil
	default:
		return nil, fmt.Errorf("expression is not a valid assignment target")
	}
}
