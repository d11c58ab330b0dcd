package session_test

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/asl-lang/aslc/internal/session"
	"github.com/asl-lang/aslc/pkg/ast"
	"github.com/asl-lang/aslc/pkg/parser"
)

func parseConfigFixture(t *testing.T) []ast.Decl {
	t.Helper()

	decls, errs := parser.Parse("cfg.asl", `config PageSize: integer = 4096;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	return decls
}

func TestApplyConfigurationUsesDefaultWhenUnsupplied(t *testing.T) {
	var buf bytes.Buffer
	sess := session.New(log.ErrorLevel, &buf, 0)

	decls, err := sess.ApplyConfiguration(parseConfigFixture(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cd := decls[0].(*ast.ConstDecl)
	if cd.Name.Name != "PageSize" {
		t.Fatalf("unexpected decl: %+v", cd)
	}

	lit, ok := cd.Value.(*ast.LitInt)
	if !ok || lit.Value.Int64() != 4096 {
		t.Fatalf("expected default value 4096, got %+v", cd.Value)
	}
}

func TestApplyConfigurationUsesSuppliedValue(t *testing.T) {
	var buf bytes.Buffer
	sess := session.New(log.ErrorLevel, &buf, 0)

	cfg, err := session.ParseConfig([]byte(`{"PageSize": 8192}`))
	if err != nil {
		t.Fatalf("unexpected error parsing configuration: %v", err)
	}
	sess.Config = cfg

	decls, err := sess.ApplyConfiguration(parseConfigFixture(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cd := decls[0].(*ast.ConstDecl)
	lit, ok := cd.Value.(*ast.LitInt)
	if !ok || lit.Value.Int64() != 8192 {
		t.Fatalf("expected supplied value 8192, got %+v", cd.Value)
	}
}

func TestApplyConfigurationErrorsWithoutDefaultOrSuppliedValue(t *testing.T) {
	decls, errs := parser.Parse("cfg.asl", `config NoDefault: integer;`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	var buf bytes.Buffer
	sess := session.New(log.ErrorLevel, &buf, 0)

	if _, err := sess.ApplyConfiguration(decls); err == nil {
		t.Fatalf("expected an error for an unresolvable config const")
	}
}

func TestParseConfigEmptyDocumentIsEmptyConfig(t *testing.T) {
	cfg, err := session.ParseConfig(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg) != 0 {
		t.Fatalf("expected an empty Config, got %+v", cfg)
	}
}
