package parser

import (
	"testing"

	"github.com/asl-lang/aslc/pkg/ast"
)

func parseOK(t *testing.T, src string) []ast.Decl {
	t.Helper()

	decls, errs := Parse("test.asl", src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	return decls
}

func TestParseRecordDecl(t *testing.T) {
	decls := parseOK(t, `
record Point {
    x: integer,
    y: integer
}
`)

	if len(decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(decls))
	}

	rd, ok := decls[0].(*ast.RecordDecl)
	if !ok {
		t.Fatalf("expected *ast.RecordDecl, got %T", decls[0])
	}

	if rd.Name.Name != "Point" || len(rd.Fields) != 2 {
		t.Fatalf("unexpected record shape: %+v", rd)
	}
}

func TestParseParameterisedRecordDecl(t *testing.T) {
	decls := parseOK(t, `
record Reg(N) {
    value: bits(N)
}
`)

	rd := decls[0].(*ast.RecordDecl)

	if len(rd.Parameters) != 1 || rd.Parameters[0].Name != "N" {
		t.Fatalf("unexpected parameters: %+v", rd.Parameters)
	}
}

func TestParseEnumDecl(t *testing.T) {
	decls := parseOK(t, `enumeration Color { Red, Green, Blue }`)

	ed := decls[0].(*ast.EnumDecl)
	if len(ed.Members) != 3 || ed.Members[2].Name != "Blue" {
		t.Fatalf("unexpected members: %+v", ed.Members)
	}
}

func TestParseExceptionDecl(t *testing.T) {
	decls := parseOK(t, `
exception Overflow {
    code: integer
}
`)

	ex := decls[0].(*ast.ExceptionDecl)
	if ex.Name.Name != "Overflow" || len(ex.Fields) != 1 {
		t.Fatalf("unexpected exception shape: %+v", ex)
	}
}

func TestParseTypeAbbrevAndForward(t *testing.T) {
	decls := parseOK(t, `
type Word = bits(32);
type Forward;
`)

	abbrev := decls[0].(*ast.TypeAbbrevDecl)
	if abbrev.Name.Name != "Word" {
		t.Fatalf("unexpected abbrev: %+v", abbrev)
	}

	fwd := decls[1].(*ast.ForwardTypeDecl)
	if fwd.Name.Name != "Forward" {
		t.Fatalf("unexpected forward decl: %+v", fwd)
	}
}

func TestParseConstAndConfigDecl(t *testing.T) {
	decls := parseOK(t, `
constant MaxRegs: integer = 32;
config PageSize: integer = 4096;
`)

	cd := decls[0].(*ast.ConstDecl)
	if cd.Name.Name != "MaxRegs" {
		t.Fatalf("unexpected const decl: %+v", cd)
	}

	cc := decls[1].(*ast.ConfigConstDecl)
	if cc.Name.Name != "PageSize" {
		t.Fatalf("unexpected config decl: %+v", cc)
	}
}

func TestParseGlobalVarDecl(t *testing.T) {
	decls := parseOK(t, `var Counter: integer = 0;`)

	vd := decls[0].(*ast.VarDeclGlobal)
	if vd.Name.Name != "Counter" {
		t.Fatalf("unexpected var decl: %+v", vd)
	}
}

func TestParseFuncDefWithControlFlow(t *testing.T) {
	decls := parseOK(t, `
func Clamp(x: integer, lo: integer, hi: integer) => integer
begin
    if x < lo then
        return lo;
    elsif x > hi then
        return hi;
    else
        return x;
    end
end
`)

	fn := decls[0].(*ast.FuncDef)
	if fn.Name.Name != "Clamp" || len(fn.Params) != 3 {
		t.Fatalf("unexpected func shape: %+v", fn)
	}

	if len(fn.Body) != 1 {
		t.Fatalf("expected single if-statement body, got %d stmts", len(fn.Body))
	}

	ifs, ok := fn.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", fn.Body[0])
	}

	if len(ifs.Arms) != 2 || len(ifs.Else) != 1 {
		t.Fatalf("unexpected if-shape: %+v", ifs)
	}
}

func TestParseFuncWithDefaultArgAndThrows(t *testing.T) {
	decls := parseOK(t, `
func Divide(x: integer, y: integer = 1)? => integer
begin
    if y == 0 then
        throw DivByZero();
    end
    return x DIV y;
end
`)

	fn := decls[0].(*ast.FuncDef)
	if fn.Throws != ast.MayThrow {
		t.Fatalf("expected MayThrow, got %v", fn.Throws)
	}

	if fn.Params[1].Default == nil {
		t.Fatalf("expected default argument on second param")
	}
}

func TestParseGetterSetterPair(t *testing.T) {
	decls := parseOK(t, `
getter Elem[i: integer] => integer
begin
    return Mem[i];
end

setter Elem[i: integer] = v: integer
begin
    Mem[i] = v;
end
`)

	getter := decls[0].(*ast.FuncDef)
	if getter.Kind != ast.FuncGetter || len(getter.Params) != 1 {
		t.Fatalf("unexpected getter shape: %+v", getter)
	}
}

func TestParseCaseStatement(t *testing.T) {
	decls := parseOK(t, `
func Describe(x: integer) => integer
begin
    case x of
        when 0 => return 0;
        when 1 .. 9 => return 1;
        otherwise => return 2;
    end
end
`)

	fn := decls[0].(*ast.FuncDef)
	cs := fn.Body[0].(*ast.Case)

	if len(cs.Alts) != 2 || cs.Default == nil {
		t.Fatalf("unexpected case shape: %+v", cs)
	}

	if _, ok := cs.Alts[1].Pattern.(*ast.PatRange); !ok {
		t.Fatalf("expected range pattern, got %T", cs.Alts[1].Pattern)
	}
}

func TestParseForWhileRepeat(t *testing.T) {
	decls := parseOK(t, `
func Loops() => integer
begin
    var total: integer = 0;
    for i = 0 to 9 do
        total = total + i;
    end
    while total > 100 do
        total = total - 1;
    end
    repeat
        total = total - 1;
    until total == 0;
    return total;
end
`)

	fn := decls[0].(*ast.FuncDef)
	if len(fn.Body) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(fn.Body))
	}

	if _, ok := fn.Body[1].(*ast.For); !ok {
		t.Fatalf("expected *ast.For, got %T", fn.Body[1])
	}

	if _, ok := fn.Body[2].(*ast.While); !ok {
		t.Fatalf("expected *ast.While, got %T", fn.Body[2])
	}

	if _, ok := fn.Body[3].(*ast.Repeat); !ok {
		t.Fatalf("expected *ast.Repeat, got %T", fn.Body[3])
	}
}

func TestParseTryCatch(t *testing.T) {
	decls := parseOK(t, `
func Safe() => integer
begin
    try
        return Risky();
    catch e: Overflow =>
        return 0;
    otherwise =>
        return -1;
    end
end
`)

	fn := decls[0].(*ast.FuncDef)
	tr := fn.Body[0].(*ast.Try)

	if len(tr.Arms) != 1 || tr.Arms[0].Binder.Name != "e" || tr.Default == nil {
		t.Fatalf("unexpected try shape: %+v", tr)
	}
}

func TestParseAssignAndTupleVarDecl(t *testing.T) {
	decls := parseOK(t, `
func Swap() => integer
begin
    var (a, b): (integer, integer) = (1, 2);
    a = b;
    return a;
end
`)

	fn := decls[0].(*ast.FuncDef)

	vd := fn.Body[0].(*ast.VarDecl)
	if vd.Shape != ast.ShapeTuple || len(vd.Names) != 2 {
		t.Fatalf("unexpected tuple var decl: %+v", vd)
	}

	asg := fn.Body[1].(*ast.Assign)
	if _, ok := asg.LHS.(*ast.LVar); !ok {
		t.Fatalf("expected *ast.LVar lhs, got %T", asg.LHS)
	}
}

func TestParseSliceAndBitOps(t *testing.T) {
	decls := parseOK(t, `
func Bits(x: bits(32)) => bits(8)
begin
    return x[7:0];
end
`)

	fn := decls[0].(*ast.FuncDef)
	ret := fn.Body[0].(*ast.Return)

	sl, ok := ret.Value.(*ast.Slice)
	if !ok {
		t.Fatalf("expected *ast.Slice, got %T", ret.Value)
	}

	if sl.Kind != ast.SliceHighLow {
		t.Fatalf("expected SliceHighLow, got %v", sl.Kind)
	}
}

func TestParseErrorRecoverySkipsBadDecl(t *testing.T) {
	_, errs := Parse("test.asl", `
func ;;;

constant Good: integer = 1;
`)

	if len(errs) == 0 {
		t.Fatalf("expected at least one recorded error")
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	decls := parseOK(t, `
constant X: integer = 1 + 2 * 3;
`)

	cd := decls[0].(*ast.ConstDecl)
	bop := cd.Value.(*ast.BinaryOp)

	if bop.Op != "+" {
		t.Fatalf("expected top-level '+', got %q", bop.Op)
	}

	rhs, ok := bop.Right.(*ast.BinaryOp)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected nested '*' on the right, got %+v", bop.Right)
	}
}

func TestParseNamedArgsCall(t *testing.T) {
	decls := parseOK(t, `
constant X: integer = MakePoint(x = 1, y = 2);
`)

	cd := decls[0].(*ast.ConstDecl)
	call := cd.Value.(*ast.UntypedCall)

	if len(call.Args) != 2 || call.Args[0].Name.Name != "x" {
		t.Fatalf("unexpected call args: %+v", call.Args)
	}
}
