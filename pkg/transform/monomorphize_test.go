package transform

import (
	"testing"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
)

// widenFixture builds a width-polymorphic function called from two distinct
// width-tuples, the shape §8 property 4 requires monomorphization to
// specialize independently.
func widenFixture() (*ast.FuncDef, *ast.FuncDef) {
	generic := &ast.FuncDef{
		Name:       ident.New("Widen"),
		WidthArgs:  []ident.Ident{ident.New("N")},
		Params:     []ast.Param{{Name: ident.New("x"), Type: &ast.IntegerType{}}},
		ReturnType: &ast.IntegerType{},
		Body: []ast.Stmt{
			&ast.VarDecl{
				Shape: ast.ShapePlain,
				Names: []ident.Ident{ident.New("w")},
				Init:  &ast.Var{Name: ident.New("N")},
			},
			&ast.Return{Value: &ast.Var{Name: ident.New("w")}},
		},
	}

	caller := &ast.FuncDef{
		Name: ident.New("Caller"),
		Body: []ast.Stmt{
			&ast.VarDecl{
				Names: []ident.Ident{ident.New("a")},
				Init: &ast.TypedCall{
					Callee: ident.New("Widen"),
					Params: []ast.Expr{litInt(4)},
					Args:   []ast.Expr{litInt(0)},
				},
			},
			&ast.VarDecl{
				Names: []ident.Ident{ident.New("b")},
				Init: &ast.TypedCall{
					Callee: ident.New("Widen"),
					Params: []ast.Expr{litInt(8)},
					Args:   []ast.Expr{litInt(0)},
				},
			},
		},
	}

	return generic, caller
}

func TestMonomorphizeClonesAreIndependentPerWidthTuple(t *testing.T) {
	generic, caller := widenFixture()
	decls := []ast.Decl{generic, caller}

	out := Monomorphize(NewContext(decls), decls)

	var widths []int64

	for _, d := range out {
		f, ok := d.(*ast.FuncDef)
		if !ok || f.Name.SameRoot(ident.New("Caller")) {
			continue
		}

		vd := f.Body[0].(*ast.VarDecl)

		lit, ok := vd.Init.(*ast.LitInt)
		if !ok {
			t.Fatalf("expected clone %s's first statement to initialize from a literal, got %T", f.Name, vd.Init)
		}

		widths = append(widths, lit.Value.Int64())
	}

	if len(widths) != 2 {
		t.Fatalf("expected exactly 2 monomorphic clones, got %d (%v)", len(widths), widths)
	}

	seen := map[int64]bool{}
	for _, w := range widths {
		seen[w] = true
	}

	if !seen[4] || !seen[8] {
		t.Fatalf("expected clones substituted with 4 and 8, got %v", widths)
	}
}

func TestMonomorphizeDropsTheGenericOriginal(t *testing.T) {
	generic, caller := widenFixture()
	decls := []ast.Decl{generic, caller}

	out := Monomorphize(NewContext(decls), decls)

	for _, d := range out {
		if f, ok := d.(*ast.FuncDef); ok && f.Name.Equal(ident.New("Widen")) {
			t.Fatalf("expected the width-polymorphic original to be dropped after monomorphization")
		}
	}
}

func TestMonomorphizeNoopWithoutWidthArgs(t *testing.T) {
	f := &ast.FuncDef{Name: ident.New("Plain"), Body: []ast.Stmt{&ast.Return{Value: litInt(1)}}}
	decls := []ast.Decl{f}

	out := Monomorphize(NewContext(decls), decls)

	if len(out) != 1 || out[0] != ast.Decl(f) {
		t.Fatalf("expected Monomorphize to return decls unchanged when nothing is width-polymorphic")
	}
}
