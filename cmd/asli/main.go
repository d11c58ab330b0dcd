// Command asli typechecks ASL specifications and prepares them for
// evaluation by an external collaborator (spec.md §1, §6).
package main

import (
	"os"

	"github.com/asl-lang/aslc/pkg/cmd"
)

func main() {
	os.Exit(cmd.ExecuteAsli())
}
