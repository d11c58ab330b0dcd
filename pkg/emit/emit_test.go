package emit_test

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asl-lang/aslc/pkg/ast"
	_ "github.com/asl-lang/aslc/pkg/backend/fallback"
	"github.com/asl-lang/aslc/pkg/emit"
	"github.com/asl-lang/aslc/pkg/ident"
)

func lit(n int64) *ast.LitInt {
	l := &ast.LitInt{Value: big.NewInt(n)}
	l.SetType(&ast.IntegerType{})
	return l
}

func intType() *ast.IntegerType { return &ast.IntegerType{} }

func varRef(name string) *ast.Var {
	v := &ast.Var{Name: ident.New(name), Resolved: ident.New(name)}
	v.SetType(intType())
	return v
}

func TestCNameRenamesReservedWords(t *testing.T) {
	if got := emit.CName(ident.New("for")); got != "__asl_for" {
		t.Fatalf("CName(for) = %q, want __asl_for", got)
	}

	if got := emit.CName(ident.New("counter")); got != "counter" {
		t.Fatalf("CName(counter) = %q, want counter", got)
	}

	if got := emit.CName(ident.WithTag("f", 3)); got != "f_3" {
		t.Fatalf("CName(f#3) = %q, want f_3", got)
	}
}

func TestEmitEndToEnd(t *testing.T) {
	// record Point { x: integer, y: integer }
	point := &ast.RecordDecl{
		Name: ident.New("Point"),
		Fields: []ast.RecordField{
			{Name: ident.New("x"), Type: intType()},
			{Name: ident.New("y"), Type: intType()},
		},
	}

	// exception Overflow { amount: integer }
	overflow := &ast.ExceptionDecl{
		Name:   ident.New("Overflow"),
		Fields: []ast.RecordField{{Name: ident.New("amount"), Type: intType()}},
	}

	// var counter: integer = 0
	counter := &ast.VarDeclGlobal{Name: ident.New("counter"), Type: intType(), Init: lit(0)}

	// const Limit: integer = 10
	limit := &ast.ConstDecl{Name: ident.New("Limit"), Type: intType(), Value: lit(10)}

	// func Bump() => integer
	//   if counter >= Limit then
	//     throw Overflow{amount=counter};
	//   end
	//   counter = counter + 1;
	//   return counter;
	bumpBody := []ast.Stmt{
		&ast.If{
			Arms: []ast.IfArm{{
				Cond: &ast.BinaryOp{Op: ">=", Left: varRef("counter"), Right: varRef("Limit")},
				Body: []ast.Stmt{
					&ast.Throw{Exception: &ast.RecordLit{
						Type:   &ast.NamedType{Name: ident.New("Overflow")},
						Fields: []ident.Ident{ident.New("amount")},
						Values: []ast.Expr{varRef("counter")},
					}},
				},
			}},
		},
		&ast.Assign{
			LHS: &ast.LVar{Name: ident.New("counter"), Resolved: ident.New("counter")},
			RHS: &ast.BinaryOp{Op: "+", Left: varRef("counter"), Right: lit(1)},
		},
		&ast.Return{Value: varRef("counter")},
	}

	bump := &ast.FuncDef{
		Name:       ident.New("Bump"),
		ReturnType: intType(),
		Throws:     ast.MayThrow,
		Body:       bumpBody,
	}

	decls := []ast.Decl{point, overflow, counter, limit, bump}

	dir := t.TempDir()

	opts := emit.Options{
		Backend:    "fallback",
		OutputDir:  dir,
		Basename:   "prog",
		NumCFiles:  1,
		FFIExports: []string{"Bump"},
	}

	res, err := emit.Emit(decls, opts)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	types := readFile(t, res.TypesHeader)
	if !strings.Contains(types, "struct Point {") {
		t.Errorf("types header missing Point struct:\n%s", types)
	}

	excHeader := readFile(t, res.ExceptionsHeader)
	if !strings.Contains(excHeader, "tag_Overflow") || !strings.Contains(excHeader, "struct ASL_exception_state") {
		t.Errorf("exceptions header missing expected declarations:\n%s", excHeader)
	}

	excSource := readFile(t, res.ExceptionsSource)
	if !strings.Contains(excSource, "ASL_no_exception") {
		t.Errorf("exceptions source missing initializer:\n%s", excSource)
	}

	varsHeader := readFile(t, res.VarsHeader)
	if !strings.Contains(varsHeader, "counter") || !strings.Contains(varsHeader, "Limit") {
		t.Errorf("vars header missing globals/consts:\n%s", varsHeader)
	}

	if len(res.FunSources) != 1 {
		t.Fatalf("expected a single funs file for NumCFiles=1, got %d", len(res.FunSources))
	}

	funs := readFile(t, res.FunSources[0])
	if !strings.Contains(funs, "Bump(") {
		t.Errorf("funs source missing Bump definition:\n%s", funs)
	}

	if !strings.Contains(funs, "goto __asl_fn_catch") {
		t.Errorf("funs source missing throw-site goto:\n%s", funs)
	}

	if !strings.Contains(funs, "Bump_ffi(") {
		t.Errorf("funs source missing FFI wrapper for exported Bump:\n%s", funs)
	}
}

func TestEmitUnknownBackendIsAnError(t *testing.T) {
	_, err := emit.Emit(nil, emit.Options{Backend: "nonexistent", OutputDir: t.TempDir(), Basename: "x"})
	if err == nil {
		t.Fatal("expected an error for an unregistered backend kind")
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}

	return string(data)
}
