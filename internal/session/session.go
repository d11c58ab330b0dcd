// Package session ties the core compiler passes together the way the two
// CLI entries (asli, asl2c) need them wired: source lookup via ASL_PATH,
// structured logging, a configurable error budget, and configuration-driven
// rewriting of ConfigConstDecl before typechecking. Grounded on the
// teacher's session-scoped state being threaded explicitly through
// cmd_util.SchemaStack rather than held in package globals
// (pkg/cmd/util/schema.go), generalized here to one Session value per
// compiler invocation.
package session

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/checks"
	"github.com/asl-lang/aslc/pkg/parser"
	"github.com/asl-lang/aslc/pkg/transform"
	"github.com/asl-lang/aslc/pkg/typecheck"
)

// Session carries everything one compiler invocation needs beyond the
// source text itself: a structured logger (one per session, not a global
// singleton, per SPEC_FULL.md's logging section), the parsed
// `--configuration <json>` document, and the error budget handed to the
// typechecker (this package's own Diagnostics list is not capped by it).
type Session struct {
	Log       *log.Logger
	Config    Config
	MaxErrors int

	// Diagnostics accumulates every error surfaced by any pipeline stage,
	// in the order each stage ran. A non-empty Diagnostics after any stage
	// means the session failed; callers map that to exit code 1
	// (spec.md §6).
	Diagnostics []error
}

// New builds a Session with a fresh logger at the given level, writing to
// w (os.Stderr in the CLI entry points, a buffer in tests).
func New(level log.Level, w io.Writer, maxErrors int) *Session {
	logger := log.New()
	logger.SetLevel(level)
	logger.SetOutput(w)

	return &Session{Log: logger, MaxErrors: maxErrors}
}

// report appends a stage's errors to the session's diagnostics, logging
// each one at error level with the stage name as a structured field, the
// way go-corset's pkg/util/perfstats.go and pkg/schema/enumerator.go tag
// their own log lines.
func (s *Session) report(stage string, errs []error) {
	entry := s.Log.WithField("pass", stage)

	for _, err := range errs {
		entry.Error(err)
		s.Diagnostics = append(s.Diagnostics, err)
	}
}

// Failed reports whether any stage run so far has produced a diagnostic.
func (s *Session) Failed() bool { return len(s.Diagnostics) > 0 }

// ParseFile runs only the lexer/parser over one source file's contents,
// reporting any syntax errors. Call this once per input file (prelude plus
// every file named on the command line) and concatenate the results before
// calling CheckProgram, since declarations in one file can reference
// declarations in another (spec.md §4.5/§4.6 operate over the whole
// program, not file-by-file).
func (s *Session) ParseFile(filename, contents string) ([]ast.Decl, bool) {
	s.Log.WithField("file", filename).Debug("parsing")

	decls, perrs := parser.Parse(filename, contents)
	if len(perrs) != 0 {
		s.report("parse", toErrors(perrs))
		return nil, false
	}

	return decls, true
}

// CheckProgram runs configuration resolution, the pre-typecheck global
// checks (spec.md §4.5), and the bidirectional typechecker (spec.md §4.6)
// over a whole program's concatenated declarations, in that order, stopping
// at the first stage that reports any diagnostic. The returned declarations
// are fully typed and resolved on success.
func (s *Session) CheckProgram(decls []ast.Decl) ([]ast.Decl, bool) {
	decls, err := s.ApplyConfiguration(decls)
	if err != nil {
		s.report("configure", []error{err})
		return nil, false
	}

	s.Log.Debug("checking evaluation order")

	if cerrs := checks.Check(decls); len(cerrs) != 0 {
		s.report("checks", toErrors(cerrs))
		return nil, false
	}

	s.Log.Debug("typechecking")

	if terrs := typecheck.Check(decls, s.MaxErrors); len(terrs) != 0 {
		s.report("typecheck", toErrors(terrs))
		return nil, false
	}

	return decls, true
}

// Lower runs the transform pipeline (spec.md §4.7) over a typechecked
// program, appending the optional thread-local-pointer wrapping pass when
// ptrName is non-empty (asl2c's --thread-local-pointer flag).
func (s *Session) Lower(decls []ast.Decl, ptrName string) []ast.Decl {
	s.Log.Debug("lowering")

	pipeline := transform.Default()
	if ptrName != "" {
		pipeline = pipeline.WithWrapping(ptrName)
	}

	return pipeline.Run(decls)
}

func toErrors[E error](in []E) []error {
	out := make([]error, len(in))
	for i, e := range in {
		out[i] = e
	}

	return out
}

// Summary renders a one-line human-readable result, the way asli/asl2c's
// final stdout line reports success or the diagnostic count.
func (s *Session) Summary() string {
	if !s.Failed() {
		return "ok"
	}

	return fmt.Sprintf("%d error(s)", len(s.Diagnostics))
}
