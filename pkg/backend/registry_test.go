package backend_test

import (
	"testing"

	"github.com/asl-lang/aslc/pkg/backend"
	_ "github.com/asl-lang/aslc/pkg/backend/bignum"
	_ "github.com/asl-lang/aslc/pkg/backend/bitint"
	_ "github.com/asl-lang/aslc/pkg/backend/fallback"
)

func TestAllVariantsRegister(t *testing.T) {
	for _, kind := range []backend.Kind{backend.Fallback, backend.BitInt, backend.BigNum} {
		rt, err := backend.New(kind)
		if err != nil {
			t.Fatalf("backend %q: %v", kind, err)
		}

		if rt.Kind() != kind {
			t.Fatalf("backend %q: Kind() returned %q", kind, rt.Kind())
		}

		if rt.FileHeader() == "" {
			t.Fatalf("backend %q: empty file header", kind)
		}
	}
}

func TestUnknownBackendIsAnError(t *testing.T) {
	if _, err := backend.New("bogus"); err == nil {
		t.Fatalf("expected an error for an unregistered backend kind")
	}
}

func TestSintOpAgreesAcrossNarrowWidths(t *testing.T) {
	for _, kind := range []backend.Kind{backend.Fallback, backend.BitInt, backend.BigNum} {
		rt, _ := backend.New(kind)
		if got := rt.SintOp("add", 32, "a", "b"); got == "" {
			t.Fatalf("backend %q: SintOp returned empty string", kind)
		}
	}
}
