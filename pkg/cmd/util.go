// Package cmd implements the two CLI entry points spec.md §6 names, asli and
// asl2c, as separate cobra command trees sharing one flag-accessor helper
// set. Grounded on the teacher's pkg/cmd/util.go GetFlag/GetString/...
// pattern: a declared flag is trusted to parse (cobra validated it against
// its declared type at registration), so a parse failure here is treated as
// an internal error, not a user-facing one.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/internal/session"
)

// preludeName is the standard library file every ASL program implicitly
// includes, located via ASL_PATH (spec.md §6's "Environment variables").
const preludeName = "prelude.asl"

// loadProgram reads the prelude plus every named source file, parses each
// independently, concatenates their declarations into one program, and
// typechecks the result. Returns nil when any stage fails (the failure is
// recorded in sess, and the caller exits with status 1, spec.md §6); exits
// the process with status 1 itself only when a named source file cannot be
// found or read.
func loadProgram(sess *session.Session, searchPath []string, filenames []string) []ast.Decl {
	var all []ast.Decl

	preludePath, err := session.ResolveSource(preludeName, searchPath)
	if err != nil {
		sess.Log.WithError(err).Warn("no prelude found on ASL_PATH, continuing without it")
	} else if decls, ok := readAndParse(sess, preludePath); ok {
		all = append(all, decls...)
	}

	for _, name := range filenames {
		path, err := session.ResolveSource(name, searchPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "asl: %v\n", err)
			os.Exit(1)
		}

		decls, ok := readAndParse(sess, path)
		if !ok {
			return nil
		}

		all = append(all, decls...)
	}

	if sess.Failed() {
		return nil
	}

	decls, ok := sess.CheckProgram(all)
	if !ok {
		return nil
	}

	return decls
}

func readAndParse(sess *session.Session, path string) ([]ast.Decl, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asl: reading %s: %v\n", path, err)
		os.Exit(1)
	}

	return sess.ParseFile(path, string(data))
}

// GetFlag gets an expected boolean flag, exiting on the internal error of a
// flag that was never declared.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return r
}

// GetInt gets an expected integer flag.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected repeated-string flag.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return r
}
