// Package fallback implements backend.Runtime using only C arithmetic that
// never exceeds 64 bits, splitting wider sintN/bits operations across
// uint64 limbs. This is the default backend (spec.md §4.8's "portable
// fallback" variant) and the one asl2c selects when --backend is omitted.
package fallback

import (
	"fmt"
	"strings"

	"github.com/asl-lang/aslc/pkg/backend"
)

// Runtime is the portable-fallback backend.Runtime. It has no per-instance
// state: every method is a pure function of its arguments, matching the
// teacher's stateless Module[F] satisfiers in pkg/ir/*.
type Runtime struct{}

var _ backend.Runtime = Runtime{}

func (Runtime) Kind() backend.Kind { return backend.Fallback }

func (Runtime) FileHeader() string {
	return strings.Join([]string{
		`#include <stdint.h>`,
		`#include <stdbool.h>`,
		`#include <string.h>`,
		``,
		`/* Values wider than 64 bits are represented as little-endian arrays`,
		` * of uint64_t limbs; ASL_limbs(N) rounds a bit width up to a limb`,
		` * count. */`,
		`#define ASL_limbs(n) (((n) + 63u) / 64u)`,
		``,
	}, "\n")
}

func (Runtime) limbs(w backend.Width) uint {
	if w == 0 {
		return 1
	}

	return (w + 63) / 64
}

func (r Runtime) TypeName(t backend.ValueType) string {
	switch t.Category {
	case "int":
		return "int64_t"
	case "sintN", "bits":
		if r.limbs(t.Width) == 1 {
			if t.Category == "bits" {
				return "uint64_t"
			}

			return "int64_t"
		}

		return fmt.Sprintf("uint64_t[%d]", r.limbs(t.Width))
	case "ram":
		return "ASL_ram_t"
	default:
		return "void"
	}
}

func (Runtime) LiteralInt(v string) string { return fmt.Sprintf("INT64_C(%s)", v) }

func (r Runtime) LiteralSintN(width backend.Width, v string) string {
	if r.limbs(width) == 1 {
		return fmt.Sprintf("INT64_C(%s)", v)
	}

	return fmt.Sprintf("ASL_bignum_lit(%s)", v)
}

func (r Runtime) LiteralBits(width backend.Width, v string) string {
	if r.limbs(width) == 1 {
		return fmt.Sprintf("UINT64_C(%s)", v)
	}

	return fmt.Sprintf("ASL_bignum_lit(%s)", v)
}

func (Runtime) IntOp(op string, args ...string) string {
	return fmt.Sprintf("ASL_int_%s(%s)", op, strings.Join(args, ", "))
}

func (r Runtime) SintOp(op string, width backend.Width, args ...string) string {
	if r.limbs(width) == 1 {
		return fmt.Sprintf("ASL_sint64_%s(%s)", op, strings.Join(args, ", "))
	}

	return fmt.Sprintf("ASL_sintN_%s(%d, %s)", op, r.limbs(width), strings.Join(args, ", "))
}

func (r Runtime) BitsOp(op string, width backend.Width, args ...string) string {
	if r.limbs(width) == 1 {
		return fmt.Sprintf("ASL_bits64_%s(%s)", op, strings.Join(args, ", "))
	}

	return fmt.Sprintf("ASL_bitsN_%s(%d, %s)", op, r.limbs(width), strings.Join(args, ", "))
}

func (r Runtime) Convert(from, to backend.ValueType, expr string) string {
	return fmt.Sprintf("ASL_cvt_%s_%s(%s)", r.tag(from), r.tag(to), expr)
}

func (r Runtime) tag(t backend.ValueType) string {
	switch t.Category {
	case "int":
		return "int"
	case "sintN":
		return fmt.Sprintf("sintN%d", r.limbs(t.Width))
	case "bits":
		return fmt.Sprintf("bitsN%d", r.limbs(t.Width))
	default:
		return t.Category
	}
}

func (Runtime) SliceGet(expr, lo string, width backend.Width) string {
	return fmt.Sprintf("ASL_slice_get(%s, %s, %d)", expr, lo, width)
}

func (Runtime) SliceSet(expr, lo string, width backend.Width, value string) string {
	return fmt.Sprintf("ASL_slice_set(&%s, %s, %d, %s);", expr, lo, width, value)
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
	return fmt.Sprintf("ASL_print_decimal(%s, %d);", expr, width)
}

func (Runtime) PrintHex(expr string, width backend.Width) string {
	return fmt.Sprintf("ASL_print_hex(%s, %d);", expr, width)
}

func (r Runtime) FFIToC(expr string, width backend.Width) string {
	if r.limbs(width) == 1 {
		return fmt.Sprintf("((int64_t)(%s))", expr)
	}

	return fmt.Sprintf("ASL_ffi_to_c(%s, %d)", expr, width)
}

func (r Runtime) FFIFromC(expr string, width backend.Width) string {
	if r.limbs(width) == 1 {
		return fmt.Sprintf("ASL_sint64_of_c(%s)", expr)
	}

	return fmt.Sprintf("ASL_ffi_from_c(%s, %d)", expr, width)
}

func init() {
	backend.Register(backend.Fallback, func() backend.Runtime { return Runtime{} })
}
