package transform

import (
	"testing"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/ident"
	"github.com/asl-lang/aslc/pkg/parser"
	"github.com/asl-lang/aslc/pkg/typecheck"
)

func checkedDecls(t *testing.T, src string) []ast.Decl {
	t.Helper()

	decls, perrs := parser.Parse("test.asl", src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}

	if errs := typecheck.Check(decls, 0); len(errs) != 0 {
		t.Fatalf("unexpected typecheck errors: %v", errs)
	}

	return decls
}

func TestDefaultPipelineRunsOverSimpleFunction(t *testing.T) {
	decls := checkedDecls(t, `
func Add(x: integer, y: integer) => integer
begin
    return x + y;
end
`)

	out := Default().Run(decls)
	if len(out) == 0 {
		t.Fatalf("expected at least one declaration to survive the pipeline")
	}
}

func TestLowerCasesRewritesCaseIntoIf(t *testing.T) {
	decls := checkedDecls(t, `
func Classify(x: integer) => integer
begin
    case x of
        when 0 => return 100;
        when 1 => return 200;
        otherwise => return 0;
    end
end
`)

	decls = LowerCases(NewContext(decls), decls)

	var f *ast.FuncDef

	for _, d := range decls {
		if fd, ok := d.(*ast.FuncDef); ok && fd.Name.Name == "Classify" {
			f = fd
		}
	}

	if f == nil {
		t.Fatalf("expected to find Classify in the lowered declarations")
	}

	if len(f.Body) != 1 {
		t.Fatalf("expected exactly one statement after case-lowering, got %d", len(f.Body))
	}

	if _, ok := f.Body[0].(*ast.If); !ok {
		t.Fatalf("expected the case statement to lower to an If, got %T", f.Body[0])
	}
}

func TestLowerBitTuplesSplitsPackedDeclaration(t *testing.T) {
	w := &ast.VarDecl{
		Shape: ast.ShapeBitTuple,
		Names: []ident.Ident{ident.New("hi"), ident.New("lo")},
		Type: &ast.TupleType{Elems: []ast.Type{
			&ast.BitsType{Width: litInt(4)},
			&ast.BitsType{Width: litInt(4)},
		}},
		Init: &ast.Var{Name: ident.New("packed")},
	}

	f := &ast.FuncDef{Name: ident.New("Split"), Body: []ast.Stmt{w}}

	ctx := NewContext([]ast.Decl{f})
	decls := LowerBitTuples(ctx, []ast.Decl{f})

	got := decls[0].(*ast.FuncDef)
	if len(got.Body) != 3 {
		t.Fatalf("expected 3 statements (temp + hi + lo), got %d", len(got.Body))
	}
}

func TestNormalizeSlicesCanonicalizesHighLowForm(t *testing.T) {
	s := &ast.Slice{Kind: ast.SliceHighLow, Target: &ast.Var{Name: ident.New("x")}, Index: litInt(2), Width: litInt(5)}
	f := &ast.FuncDef{Name: ident.New("F"), Body: []ast.Stmt{&ast.Return{Value: s}}}

	decls := NormalizeSlices(NewContext(nil), []ast.Decl{f})

	ret := decls[0].(*ast.FuncDef).Body[0].(*ast.Return)
	slice := ret.Value.(*ast.Slice)

	if slice.Kind != ast.SliceLowWidth {
		t.Fatalf("expected canonical SliceLowWidth, got %v", slice.Kind)
	}
}
