// Command asl2c compiles ASL specifications to C against a chosen backend
// runtime (spec.md §6). The blank imports register each backend variant's
// Kind with pkg/backend's registry (pkg/backend/registry.go) via its own
// init(); asl2c selects among them at runtime with --backend.
package main

import (
	"os"

	_ "github.com/asl-lang/aslc/pkg/backend/bignum"
	_ "github.com/asl-lang/aslc/pkg/backend/bitint"
	_ "github.com/asl-lang/aslc/pkg/backend/fallback"
	"github.com/asl-lang/aslc/pkg/cmd"
)

func main() {
	os.Exit(cmd.ExecuteAsl2c())
}
