package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/asl-lang/aslc/internal/session"
)

// AsliCmd is the asli entry point (spec.md §6): it runs the in-scope core
// (lex/parse, global checks, typecheck) over a prelude plus a list of ASL
// source files, then hands the fully-typed program to the evaluator
// collaborator, which is explicitly out of scope for this repository
// (spec.md §1's "Out of scope... the evaluator/interpreter for running
// specifications"). --project/--configuration/--steps configure that
// collaborator; this command accepts and validates them but does not itself
// step a specification.
var AsliCmd = &cobra.Command{
	Use:   "asli [flags] source_file(s)",
	Short: "Typecheck an ASL specification and prepare it for evaluation.",
	Long: `asli typechecks one or more ASL source files (together with the
standard prelude found on ASL_PATH) and reports any diagnostics. Evaluating
the resulting specification against a project file of commands is performed
by an external evaluator collaborator, not by this binary.`,
	Run: runAsli,
}

func runAsli(cmd *cobra.Command, args []string) {
	if !GetFlag(cmd, "nobanner") {
		fmt.Println("asli — ASL typechecking front end")
	}

	level := log.InfoLevel
	if GetFlag(cmd, "verbose") {
		level = log.DebugLevel
	}

	sess := session.New(level, os.Stderr, GetInt(cmd, "max-errors"))

	if raw := GetString(cmd, "configuration"); raw != "" {
		data, err := os.ReadFile(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "asli: reading --configuration: %v\n", err)
			os.Exit(1)
		}

		cfg, err := session.ParseConfig(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "asli: %v\n", err)
			os.Exit(1)
		}

		sess.Config = cfg
	}

	searchPath := session.SplitASLPath(os.Getenv("ASL_PATH"))

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "asli: no source files given")
		os.Exit(1)
	}

	decls := loadProgram(sess, searchPath, args)
	if sess.Failed() {
		os.Exit(1)
	}

	decls = sess.Lower(decls, "")

	if project := GetString(cmd, "project"); project != "" {
		sess.Log.WithField("project", project).Debug("forwarding to evaluator collaborator")

		if GetFlag(cmd, "batchmode") {
			sess.Log.Debug("batch mode requested")
		}

		_ = GetInt(cmd, "steps")
	}

	fmt.Printf("asli: %s (%d declarations ready for evaluation)\n", sess.Summary(), len(decls))
	os.Exit(0)
}

func init() {
	AsliCmd.Flags().Bool("nobanner", false, "suppress the startup banner")
	AsliCmd.Flags().Bool("batchmode", false, "run non-interactively against --project")
	AsliCmd.Flags().String("project", "", "project file of evaluator commands")
	AsliCmd.Flags().String("configuration", "", "JSON file overriding config consts")
	AsliCmd.Flags().Int("steps", -1, "step budget passed to the evaluator, -1 for unbounded")
	AsliCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	AsliCmd.Flags().Int("max-errors", 100, "typechecker error budget")
}

// ExecuteAsli runs the asli command tree; callers should exit with the
// returned status (spec.md §6: 0 success, 1 failure).
func ExecuteAsli() int {
	if err := AsliCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
