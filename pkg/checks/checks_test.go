package checks

import (
	"testing"

	"github.com/asl-lang/aslc/pkg/parser"
)

func mustParse(t *testing.T, src string) []*Error {
	t.Helper()

	decls, perrs := parser.Parse("test.asl", src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}

	return Check(decls)
}

func TestSiblingEffectfulCallsRejected(t *testing.T) {
	errs := mustParse(t, `
var Counter: integer = 0;

func WX() => integer
begin
    Counter = Counter + 1;
    return Counter;
end

func UseBoth() => integer
begin
    return WX() + WX();
end
`)

	if len(errs) == 0 {
		t.Fatalf("expected an evaluation-order diagnostic, got none")
	}
}

func TestSingleEffectfulCallAccepted(t *testing.T) {
	errs := mustParse(t, `
var Counter: integer = 0;

func WX() => integer
begin
    Counter = Counter + 1;
    return Counter;
end

func UseOne() => integer
begin
    return WX() + 1;
end
`)

	if len(errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", errs)
	}
}

func TestTransitivelyEffectfulCaller(t *testing.T) {
	errs := mustParse(t, `
var Counter: integer = 0;

func Bump() => integer
begin
    Counter = Counter + 1;
    return Counter;
end

func Wrapper() => integer
begin
    return Bump();
end

func UseBoth() => integer
begin
    return Wrapper() + Wrapper();
end
`)

	if len(errs) == 0 {
		t.Fatalf("expected an evaluation-order diagnostic through the transitive call, got none")
	}
}

func TestPureSiblingCallsAccepted(t *testing.T) {
	errs := mustParse(t, `
func Square(x: integer) => integer
begin
    return x * x;
end

func Sum() => integer
begin
    return Square(2) + Square(3);
end
`)

	if len(errs) != 0 {
		t.Fatalf("expected no diagnostics for pure siblings, got %v", errs)
	}
}

func TestRAMPrimitivesTreatedAsEffectful(t *testing.T) {
	errs := mustParse(t, `
func Load(addr: integer) => integer
begin
    return RAMRead(addr, 4) + RAMRead(addr, 4);
end
`)

	if len(errs) == 0 {
		t.Fatalf("expected an evaluation-order diagnostic for sibling RAM reads, got none")
	}
}
