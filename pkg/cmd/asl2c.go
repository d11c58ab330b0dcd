package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/asl-lang/aslc/internal/session"
	"github.com/asl-lang/aslc/pkg/emit"
)

// Asl2cCmd is the asl2c entry point (spec.md §6): it runs the same in-scope
// frontend as asli, lowers the result through the full transform pipeline
// (spec.md §4.7), and emits the C-family translation unit described in
// spec.md §4.9.
var Asl2cCmd = &cobra.Command{
	Use:   "asl2c [flags] source_file(s)",
	Short: "Compile an ASL specification to C.",
	Long: `asl2c typechecks one or more ASL source files (together with the
standard prelude found on ASL_PATH), lowers the result through the transform
pipeline, and emits a C translation unit against the chosen backend runtime.`,
	Run: runAsl2c,
}

func runAsl2c(cmd *cobra.Command, args []string) {
	level := log.InfoLevel
	if GetFlag(cmd, "verbose") {
		level = log.DebugLevel
	}

	sess := session.New(level, os.Stderr, GetInt(cmd, "max-errors"))

	if raw := GetString(cmd, "configuration"); raw != "" {
		data, err := os.ReadFile(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "asl2c: reading --configuration: %v\n", err)
			os.Exit(1)
		}

		cfg, err := session.ParseConfig(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "asl2c: %v\n", err)
			os.Exit(1)
		}

		sess.Config = cfg
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "asl2c: no source files given")
		os.Exit(1)
	}

	ptrName := GetString(cmd, "thread-local-pointer")
	group := GetString(cmd, "thread-local")

	if group != "" && ptrName == "" {
		fmt.Fprintln(os.Stderr, "asl2c: --thread-local requires --thread-local-pointer")
		os.Exit(1)
	}

	if group != "" {
		sess.Log.WithField("group", group).Debug("thread-local wrapping requested for configuration group")
	}

	searchPath := session.SplitASLPath(os.Getenv("ASL_PATH"))

	decls := loadProgram(sess, searchPath, args)
	if sess.Failed() {
		os.Exit(1)
	}

	decls = sess.Lower(decls, ptrName)

	opts := emit.Options{
		Backend:            GetString(cmd, "backend"),
		OutputDir:          GetString(cmd, "output-dir"),
		Basename:           GetString(cmd, "basename"),
		NumCFiles:          GetInt(cmd, "num-c-files"),
		FFIExports:         GetStringArray(cmd, "new-ffi"),
		LineInfo:           GetFlag(cmd, "line-info"),
		ThreadLocalPointer: ptrName,
	}

	result, err := emit.Emit(decls, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asl2c: %v\n", err)
		os.Exit(1)
	}

	sess.Log.WithField("types", result.TypesHeader).
		WithField("funs", len(result.FunSources)).
		Debug("wrote translation unit")

	fmt.Printf("asl2c: %s (wrote %s.{h,c} in %s)\n", sess.Summary(), opts.Basename, opts.OutputDir)
	os.Exit(0)
}

func init() {
	Asl2cCmd.Flags().String("backend", "fallback", "runtime backend: fallback, c23, or ac")
	Asl2cCmd.Flags().String("output-dir", ".", "directory to write the translation unit into")
	Asl2cCmd.Flags().String("basename", "out", "file-name prefix for the translation unit")
	Asl2cCmd.Flags().Int("num-c-files", 1, "number of funs_N.c files to split function bodies across")
	Asl2cCmd.Flags().StringArray("new-ffi", nil, "name of a function to export with a plain C-callable signature, repeatable")
	Asl2cCmd.Flags().Bool("line-info", false, "emit #line directives pointing back at ASL source positions")
	Asl2cCmd.Flags().String("thread-local-pointer", "", "wrap every global behind this named pointer")
	Asl2cCmd.Flags().String("thread-local", "", "configuration group the thread-local pointer belongs to, requires --thread-local-pointer")
	Asl2cCmd.Flags().String("configuration", "", "JSON file overriding config consts")
	Asl2cCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	Asl2cCmd.Flags().Int("max-errors", 100, "typechecker error budget")
}

// ExecuteAsl2c runs the asl2c command tree; callers should exit with the
// returned status (spec.md §6: 0 success, 1 failure).
func ExecuteAsl2c() int {
	if err := Asl2cCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
