package typecheck

import (
	"math/big"
	"testing"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/parser"
)

func mustCheck(t *testing.T, src string) []*Error {
	t.Helper()

	decls, perrs := parser.Parse("test.asl", src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}

	return Check(decls, 0)
}

func TestConstDeclInfersIntegerType(t *testing.T) {
	errs := mustCheck(t, `const Limit = 42;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestFuncReturnTypeMismatchReported(t *testing.T) {
	errs := mustCheck(t, `
func Bad() => boolean
begin
    return 1;
end
`)
	if len(errs) == 0 {
		t.Fatalf("expected a DoesNotMatch error, got none")
	}

	if errs[0].Kind != DoesNotMatch {
		t.Fatalf("expected DoesNotMatch, got %s", errs[0].Kind)
	}
}

func TestFuncReturnTypeMatchAccepted(t *testing.T) {
	errs := mustCheck(t, `
func Identity(x: integer) => integer
begin
    return x;
end
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestUnknownIdentifierReported(t *testing.T) {
	errs := mustCheck(t, `
func UsesGhost() => integer
begin
    return Ghost;
end
`)
	if len(errs) == 0 {
		t.Fatalf("expected an UnknownObject error, got none")
	}

	if errs[0].Kind != UnknownObject {
		t.Fatalf("expected UnknownObject, got %s", errs[0].Kind)
	}
}

func TestOverloadResolutionPicksArityMatch(t *testing.T) {
	errs := mustCheck(t, `
func F(x: integer) => integer
begin
    return x;
end

func F(x: integer, y: integer) => integer
begin
    return x;
end

func Caller() => integer
begin
    return F(1, 2);
end
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestAmbiguousCallReported(t *testing.T) {
	errs := mustCheck(t, `
func G(x: integer) => integer
begin
    return x;
end

func G(x: integer) => boolean
begin
    return TRUE;
end

func Caller() => integer
begin
    return G(1);
end
`)
	found := false

	for _, e := range errs {
		if e.Kind == Ambiguous {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected an Ambiguous error among: %v", errs)
	}
}

func TestForLoopSubrangeRefinement(t *testing.T) {
	errs := mustCheck(t, `
func Sum() => integer
begin
    var total: integer = 0;

    for i = 0 to 9 do
        total = total + i;
    end

    return total;
end
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	errs := mustCheck(t, `
func Choose() => integer
begin
    if 1 then
        return 1;
    end

    return 0;
end
`)
	if len(errs) == 0 {
		t.Fatalf("expected a DoesNotMatch error for a non-boolean condition")
	}
}

func TestRecordFieldAccess(t *testing.T) {
	errs := mustCheck(t, `
record Point {
    x: integer,
    y: integer
}

func GetX(p: Point) => integer
begin
    return p.x;
end
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestRecordUnknownFieldReported(t *testing.T) {
	errs := mustCheck(t, `
record Point {
    x: integer,
    y: integer
}

func GetZ(p: Point) => integer
begin
    return p.z;
end
`)
	found := false

	for _, e := range errs {
		if e.Kind == UnknownObject {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected an UnknownObject error for field z, got: %v", errs)
	}
}

func TestEnumEqualityOperatorRegistered(t *testing.T) {
	decls, perrs := parser.Parse("test.asl", `
enum Color { Red, Green, Blue }
`)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}

	g := NewGlobalEnv()
	RegisterDecls(g, decls)

	if _, ok := g.Operators[OperatorKey{Op: "==", Arity: 2}]; !ok {
		t.Fatalf("expected an == operator candidate registered for enum Color")
	}

	if _, ok := g.Operators[OperatorKey{Op: "!=", Arity: 2}]; !ok {
		t.Fatalf("expected a != operator candidate registered for enum Color")
	}
}

func TestMaxErrorsBudgetStopsEarly(t *testing.T) {
	decls, perrs := parser.Parse("test.asl", `
func A() => integer
begin
    return Ghost1;
end

func B() => integer
begin
    return Ghost2;
end

func C() => integer
begin
    return Ghost3;
end
`)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}

	errs := Check(decls, 1)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error under a budget of 1, got %d", len(errs))
	}
}

func TestSubtypeOfIntegerConstraintRanges(t *testing.T) {
	env := NewEnv(NewGlobalEnv())

	wide := &ast.IntegerType{}
	narrow := &ast.IntegerType{Constraints: []ast.ConstraintRange{{Lo: litInt(0), Hi: litInt(10)}}}

	if !SubtypeOf(env, narrow, wide) {
		t.Fatalf("expected integer{[0,10]} to be a subtype of unconstrained integer")
	}

	if SubtypeOf(env, wide, narrow) {
		t.Fatalf("did not expect unconstrained integer to be a subtype of integer{[0,10]}")
	}
}

func litInt(v int64) ast.Expr {
	return &ast.LitInt{Value: big.NewInt(v)}
}
