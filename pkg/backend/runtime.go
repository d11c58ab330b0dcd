// Package backend defines the capability set every C-family emitter target
// must provide (spec.md §4.8), and three interchangeable implementations of
// it. Grounded on the teacher's schema.Module[F]/FieldAgnosticModule[F,M]
// pair (pkg/schema/module.go): a single narrow interface plus several
// concrete satisfiers selected by the caller, rather than a type switch
// buried inside the emitter.
package backend

// Width is a bit width in the emitted C representation: the declared width
// of a sintN, a bits(N), or a RAM address/data line.
type Width = uint

// Kind names a runtime-selectable backend variant, taken directly from
// asl2c's --backend flag (spec.md §6).
type Kind string

const (
	Fallback Kind = "fallback"
	BitInt   Kind = "c23"
	BigNum   Kind = "ac"
)

// Runtime is the capability set a C-family emitter method body compiles
// against. Exactly one Runtime is selected per translation unit; switching
// which one changes only FileHeader and the body each method below emits,
// never the call sites in pkg/emit (spec.md §4.8's closing sentence).
type Runtime interface {
	// Kind identifies which of the three variants this is, for diagnostics
	// and for the --backend flag's default-mismatch checks.
	Kind() Kind

	// FileHeader returns the preprocessor prelude (includes, typedefs,
	// macros) every emitted .c/.h file for this backend must carry first.
	FileHeader() string

	// TypeName prints the C type backing an ASL int, sintN, bits(N), or
	// ram(addr,data) value.
	TypeName(t ValueType) string
	// LiteralInt prints a literal unbounded-integer value.
	LiteralInt(v string) string
	// LiteralSintN prints a literal sintN value of the given width.
	LiteralSintN(width Width, v string) string
	// LiteralBits prints a literal bits(N) value of the given width.
	LiteralBits(width Width, v string) string

	// IntOp emits a call expression computing a named unbounded-integer
	// primitive (add, sub, neg, mul, shl, shr, zdiv, zrem, fdiv, frem,
	// exact_div, eq, ne, lt, le, gt, ge, align, is_pow2, mod_pow2, pow2)
	// over the given already-printed operand expressions.
	IntOp(op string, args ...string) string
	// SintOp is IntOp for a fixed-width signed integer of the given width;
	// op additionally includes resize/overflow-checked variants.
	SintOp(op string, width Width, args ...string) string
	// BitsOp is IntOp for a bitvector of the given width (and/or/xor/not/
	// shl/shr/concat/eq/ne in addition to the arithmetic set).
	BitsOp(op string, width Width, args ...string) string

	// Convert emits a conversion between two of {int, sintN, bits}, taking
	// explicit source and destination widths (0 for the unbounded int
	// case). Used for cvt_int_sintN, cvt_sintN_int, and resize_sintN.
	Convert(from, to ValueType, expr string) string

	// SliceGet emits an expression extracting width bits starting at lo
	// from a bits(N)-typed expression.
	SliceGet(expr, lo string, width Width) string
	// SliceSet emits a statement assigning width bits of value into expr
	// starting at lo.
	SliceSet(expr, lo string, width Width, value string) string

	// RAMInit, RAMRead and RAMWrite emit the init/read/write primitives for
	// a RAM of the given address and data widths.
	RAMInit(name string, addrWidth, dataWidth Width) string
	RAMRead(name, addr string, addrWidth, dataWidth Width) string
	RAMWrite(name, addr, data string, addrWidth, dataWidth Width) string

	// PrintChar and PrintString emit calls producing the ASL char/string
	// print primitives' C equivalents.
	PrintChar(expr string) string
	PrintString(expr string) string
	// PrintDecimal and PrintHex print a sized integer tagged with its
	// width, for the ASL decimal_str/hex_str builtins.
	PrintDecimal(expr string, width Width) string
	PrintHex(expr string, width Width) string

	// FFIToC and FFIFromC convert between this backend's runtime
	// representation and a platform C integer of the given bit width, for
	// functions named in the FFI export list.
	FFIToC(expr string, width Width) string
	FFIFromC(expr string, width Width) string
}

// ValueType names one of the four value categories a Runtime's type and
// literal printers, and Convert, operate over.
type ValueType struct {
	// Category is "int", "sintN", "bits", or "ram".
	Category string
	// Width is meaningful for sintN and bits; zero for int and for ram
	// (whose address/data widths are passed explicitly to the RAM methods).
	Width Width
}

func Int() ValueType                { return ValueType{Category: "int"} }
func SintN(w Width) ValueType       { return ValueType{Category: "sintN", Width: w} }
func Bits(w Width) ValueType        { return ValueType{Category: "bits", Width: w} }
func RAM() ValueType                { return ValueType{Category: "ram"} }
