package session_test

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/asl-lang/aslc/internal/session"
)

func TestParseFileReportsSyntaxErrors(t *testing.T) {
	var buf bytes.Buffer
	sess := session.New(log.ErrorLevel, &buf, 0)

	_, ok := sess.ParseFile("bad.asl", `const = ;`)
	if ok {
		t.Fatalf("expected a parse failure")
	}

	if !sess.Failed() {
		t.Fatalf("expected Session.Failed() after a parse error")
	}
}

func TestCheckProgramRunsEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	sess := session.New(log.ErrorLevel, &buf, 0)

	decls, ok := sess.ParseFile("good.asl", `
constant Limit: integer = 10;

func Bump(x: integer) => integer
begin
    return x + 1;
end
`)
	if !ok {
		t.Fatalf("unexpected parse failure")
	}

	decls, ok = sess.CheckProgram(decls)
	if !ok {
		t.Fatalf("unexpected check/typecheck failure: %v", sess.Diagnostics)
	}

	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}

	if sess.Summary() != "ok" {
		t.Fatalf("expected Summary() == \"ok\", got %q", sess.Summary())
	}
}

func TestCheckProgramReportsTypecheckErrors(t *testing.T) {
	var buf bytes.Buffer
	sess := session.New(log.ErrorLevel, &buf, 0)

	decls, ok := sess.ParseFile("bad.asl", `
func Bad() => boolean
begin
    return 1;
end
`)
	if !ok {
		t.Fatalf("unexpected parse failure")
	}

	if _, ok := sess.CheckProgram(decls); ok {
		t.Fatalf("expected a typecheck failure")
	}

	if sess.Summary() == "ok" {
		t.Fatalf("expected a non-ok summary after a typecheck failure")
	}
}

func TestLowerRunsWithAndWithoutWrapping(t *testing.T) {
	var buf bytes.Buffer
	sess := session.New(log.ErrorLevel, &buf, 0)

	decls, ok := sess.ParseFile("prog.asl", `
var Counter: integer = 0;

func Bump() => integer
begin
    Counter = Counter + 1;
    return Counter;
end
`)
	if !ok {
		t.Fatalf("unexpected parse failure")
	}

	decls, ok = sess.CheckProgram(decls)
	if !ok {
		t.Fatalf("unexpected check failure: %v", sess.Diagnostics)
	}

	plain := sess.Lower(decls, "")
	if len(plain) == 0 {
		t.Fatalf("expected lowered declarations")
	}

	wrapped := sess.Lower(decls, "state")
	if len(wrapped) == 0 {
		t.Fatalf("expected lowered declarations with wrapping")
	}
}
