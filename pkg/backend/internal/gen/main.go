// Command gen regenerates the C runtime-support headers each
// pkg/backend variant's Runtime implementation emits calls against,
// from a single template. Mirrors the teacher's field-element generator
// (field/internal/generator/main.go) call-for-call: same
// bavard.NewBatchGenerator/bavard.Entry shape, applied to C header
// prototypes instead of Go field-element source.
package main

import (
	"fmt"
	"os"

	"github.com/consensys/bavard"
)

const copyrightHolder = "The ASL compiler project"

var commonOps = []string{"add", "sub", "mul", "eq", "ne"}

type runtimeSpec struct {
	Name       string
	Guard      string
	Prelude    string
	ScalarType string
	Prefix     string
	IntOps     []string
	WideType   string
	WidePrefix string
	WideOps    []string
}

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "aslc")

	specs := []runtimeSpec{
		{
			Name: "fallback", Guard: "ASL_RUNTIME_FALLBACK_H",
			Prelude:    "#include <stdint.h>",
			ScalarType: "int64_t", Prefix: "sint64", IntOps: commonOps,
			WideType: "uint64_t", WidePrefix: "bits64", WideOps: commonOps,
		},
		{
			Name: "bitint", Guard: "ASL_RUNTIME_BITINT_H",
			Prelude:    "#include <stdint.h>",
			ScalarType: "int64_t", Prefix: "sintN", IntOps: []string{"align", "is_pow2", "mod_pow2", "pow2"},
			WideType: "uint64_t", WidePrefix: "bitsN", WideOps: []string{"align", "is_pow2", "mod_pow2", "pow2"},
		},
		{
			Name: "bignum", Guard: "ASL_RUNTIME_BIGNUM_H",
			Prelude:    "#include <gmp.h>",
			ScalarType: "int64_t", Prefix: "sint64", IntOps: commonOps,
			WideType: "mpz_ptr", WidePrefix: "mpz", WideOps: commonOps,
		},
	}

	for _, spec := range specs {
		err := bgen.Generate(spec, spec.Name, "templates",
			bavard.Entry{
				File:      fmt.Sprintf("../%s/runtime_support.h", spec.Name),
				Templates: []string{"runtime.h.tmpl"},
			},
		)
		assertNoError(err, "generating runtime support header for %q", spec.Name)
	}
}

func assertNoError(err error, format string, args ...any) {
	if err != nil {
		fmt.Printf(format+": %v\n", append(args, err)...)
		os.Exit(1)
	}
}
