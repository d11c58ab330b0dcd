// Package bignum implements backend.Runtime by emitting calls into GMP
// (the GNU Multiple Precision arithmetic library), the external
// arbitrary-precision C library spec.md §4.8's "large-integer" variant
// calls for. Values of sintN/bits width above 64 bits are represented as
// mpz_t; narrower ones still use plain C integers, mirroring fallback's
// limb-count threshold so emitted code only pays GMP's allocation cost
// where the width actually requires it.
package bignum

import (
	"fmt"
	"strings"

	"github.com/asl-lang/aslc/pkg/backend"
)

type Runtime struct{}

var _ backend.Runtime = Runtime{}

func (Runtime) Kind() backend.Kind { return backend.BigNum }

func (Runtime) FileHeader() string {
	return strings.Join([]string{
		`#include <gmp.h>`,
		`#include <stdint.h>`,
		`#include <stdbool.h>`,
		``,
		`/* sintN/bits values wider than 64 bits are heap-allocated mpz_t; the`,
		` * emitter does not insert any clear call for them at scope exit. */`,
		``,
	}, "\n")
}

func (Runtime) wide(w backend.Width) bool { return w > 64 }

func (r Runtime) TypeName(t backend.ValueType) string {
	switch t.Category {
	case "int":
		return "mpz_t"
	case "sintN", "bits":
		if r.wide(t.Width) {
			return "mpz_t"
		}

		if t.Category == "bits" {
			return "uint64_t"
		}

		return "int64_t"
	case "ram":
		return "ASL_ram_t"
	default:
		return "void"
	}
}

func (Runtime) LiteralInt(v string) string { return fmt.Sprintf("ASL_mpz_lit(%q)", v) }

func (r Runtime) LiteralSintN(width backend.Width, v string) string {
	if r.wide(width) {
		return fmt.Sprintf("ASL_mpz_lit(%q)", v)
	}

	return fmt.Sprintf("INT64_C(%s)", v)
}

func (r Runtime) LiteralBits(width backend.Width, v string) string {
	if r.wide(width) {
		return fmt.Sprintf("ASL_mpz_lit(%q)", v)
	}

	return fmt.Sprintf("UINT64_C(%s)", v)
}

func (Runtime) IntOp(op string, args ...string) string {
	return fmt.Sprintf("ASL_mpz_%s(%s)", op, strings.Join(args, ", "))
}

func (r Runtime) SintOp(op string, width backend.Width, args ...string) string {
	if r.wide(width) {
		return fmt.Sprintf("ASL_mpz_%s(%s)", op, strings.Join(args, ", "))
	}

	return fmt.Sprintf("ASL_sint64_%s(%s)", op, strings.Join(args, ", "))
}

func (r Runtime) BitsOp(op string, width backend.Width, args ...string) string {
	if r.wide(width) {
		return fmt.Sprintf("ASL_mpz_u%s(%s)", op, strings.Join(args, ", "))
	}

	return fmt.Sprintf("ASL_bits64_%s(%s)", op, strings.Join(args, ", "))
}

func (r Runtime) Convert(from, to backend.ValueType, expr string) string {
	return fmt.Sprintf("ASL_mpz_cvt_%s_%s(%s)", r.tag(from), r.tag(to), expr)
}

func (r Runtime) tag(t backend.ValueType) string {
	switch t.Category {
	case "int":
		return "int"
	case "sintN":
		if r.wide(t.Width) {
			return "sintbig"
		}

		return "sint64"
	case "bits":
		if r.wide(t.Width) {
			return "bitsbig"
		}

		return "bits64"
	default:
		return t.Category
	}
}

func (Runtime) SliceGet(expr, lo string, width backend.Width) string {
	return fmt.Sprintf("ASL_mpz_slice_get(%s, %s, %d)", expr, lo, width)
}

func (Runtime) SliceSet(expr, lo string, width backend.Width, value string) string {
	return fmt.Sprintf("ASL_mpz_slice_set(%s, %s, %d, %s);", expr, lo, width, value)
}

func (Runtime) RAMInit(name string, addrWidth, dataWidth backend.Width) string {
	return fmt.Sprintf("ASL_ram_init(&%s, %d, %d);", name, addrWidth, dataWidth)
}

func (Runtime) RAMRead(name, addr string, addrWidth, dataWidth backend.Width) string {
	return fmt.Sprintf("ASL_ram_read(&%s, %s, %d, %d)", name, addr, addrWidth, dataWidth)
}

func (Runtime) RAMWrite(name, addr, data string, addrWidth, dataWidth backend.Width) string {
	return fmt.Sprintf("ASL_ram_write(&%s, %s, %s, %d, %d);", name, addr, data, addrWidth, dataWidth)
}

func (Runtime) PrintChar(expr string) string   { return fmt.Sprintf("ASL_print_char(%s);", expr) }
func (Runtime) PrintString(expr string) string { return fmt.Sprintf("ASL_print_string(%s);", expr) }

func (Runtime) PrintDecimal(expr string, width backend.Width) string {
	return fmt.Sprintf("ASL_mpz_print_decimal(%s, %d);", expr, width)
}

func (Runtime) PrintHex(expr string, width backend.Width) string {
	return fmt.Sprintf("ASL_mpz_print_hex(%s, %d);", expr, width)
}

func (r Runtime) FFIToC(expr string, width backend.Width) string {
	if r.wide(width) {
		return fmt.Sprintf("ASL_mpz_get_si(%s)", expr)
	}

	return fmt.Sprintf("((int64_t)(%s))", expr)
}

func (r Runtime) FFIFromC(expr string, width backend.Width) string {
	if r.wide(width) {
		return fmt.Sprintf("ASL_mpz_set_si_new(%s)", expr)
	}

	return fmt.Sprintf("ASL_sint64_of_c(%s)", expr)
}

func init() {
	backend.Register(backend.BigNum, func() backend.Runtime { return Runtime{} })
}
