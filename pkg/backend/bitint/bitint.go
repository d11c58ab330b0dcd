// Package bitint implements backend.Runtime by deferring arbitrary-width
// arithmetic to the C compiler's native C23 _BitInt(N) type, rather than
// splitting it across limbs by hand (spec.md §4.8's "C23 _BitInt" variant).
// Grounded on fallback.Runtime: same method set, same call-site shape;
// only FileHeader and the printers differ, per spec.md §4.8's closing
// sentence that switching variants changes only those two things.
package bitint

import (
	"fmt"
	"strings"

	"github.com/asl-lang/aslc/pkg/backend"
)

type Runtime struct{}

var _ backend.Runtime = Runtime{}

func (Runtime) Kind() backend.Kind { return backend.BitInt }

func (Runtime) FileHeader() string {
	return strings.Join([]string{
		`#if __STDC_VERSION__ < 202311L`,
		`#error "asl2c --backend=c23 requires a C23 compiler (_BitInt support)"`,
		`#endif`,
		`#include <stdint.h>`,
		`#include <stdbool.h>`,
		``,
	}, "\n")
}

func (Runtime) TypeName(t backend.ValueType) string {
	switch t.Category {
	case "int":
		return "int64_t"
	case "sintN":
		return fmt.Sprintf("_BitInt(%d)", t.Width)
	case "bits":
		return fmt.Sprintf("unsigned _BitInt(%d)", t.Width)
	case "ram":
		return "ASL_ram_t"
	default:
		return "void"
	}
}

func (Runtime) LiteralInt(v string) string { return fmt.Sprintf("INT64_C(%s)", v) }

func (Runtime) LiteralSintN(width backend.Width, v string) string {
	return fmt.Sprintf("((_BitInt(%d))%sWB)", width, v)
}

func (Runtime) LiteralBits(width backend.Width, v string) string {
	return fmt.Sprintf("((unsigned _BitInt(%d))%sUWB)", width, v)
}

func (Runtime) IntOp(op string, args ...string) string {
	return fmt.Sprintf("ASL_int_%s(%s)", op, strings.Join(args, ", "))
}

// SintOp and BitsOp emit the operator directly: _BitInt participates in C's
// ordinary arithmetic operators, so no per-width helper call is needed for
// the common cases; a handful of named primitives (align, is_pow2, ...)
// still go through a macro shared with the fallback backend's naming.
func (Runtime) SintOp(op string, width backend.Width, args ...string) string {
	if sym, ok := infixOps[op]; ok && len(args) == 2 {
		return fmt.Sprintf("(%s %s %s)", args[0], sym, args[1])
	}

	return fmt.Sprintf("ASL_sintN_%s(%s)", op, strings.Join(args, ", "))
}

func (Runtime) BitsOp(op string, width backend.Width, args ...string) string {
	if sym, ok := infixOps[op]; ok && len(args) == 2 {
		return fmt.Sprintf("(%s %s %s)", args[0], sym, args[1])
	}

	return fmt.Sprintf("ASL_bitsN_%s(%s)", op, strings.Join(args, ", "))
}

var infixOps = map[string]string{
	"add": "+", "sub": "-", "mul": "*", "shl": "<<", "shr": ">>",
	"eq": "==", "ne": "!=", "lt": "<", "le": "<=", "gt": ">", "ge": ">=",
	"and": "&", "or": "|", "xor": "^",
}

func (Runtime) Convert(from, to backend.ValueType, expr string) string {
	return fmt.Sprintf("((%s)(%s))", tcType(to), expr)
}

func tcType(t backend.ValueType) string { return Runtime{}.TypeName(t) }

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

func (Runtime) FFIToC(expr string, width backend.Width) string {
	return fmt.Sprintf("((int64_t)(%s))", expr)
}

func (Runtime) FFIFromC(expr string, width backend.Width) string {
	return fmt.Sprintf("((_BitInt(%d))(%s))", width, expr)
}

func init() {
	backend.Register(backend.BitInt, func() backend.Runtime { return Runtime{} })
}
