package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asl-lang/aslc/internal/session"
)

func TestSplitASLPathDropsEmptySegments(t *testing.T) {
	got := session.SplitASLPath("/a/b::/c/d:")
	want := []string{"/a/b", "/c/d"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSplitASLPathEmptyEnvIsNil(t *testing.T) {
	if got := session.SplitASLPath(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestResolveSourceFindsFileOnSearchPath(t *testing.T) {
	dir := t.TempDir()
	preludePath := filepath.Join(dir, "prelude.asl")

	if err := os.WriteFile(preludePath, []byte(""), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := session.ResolveSource("prelude.asl", []string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != preludePath {
		t.Fatalf("got %q, want %q", got, preludePath)
	}
}

func TestResolveSourceMissingIsError(t *testing.T) {
	if _, err := session.ResolveSource("nonexistent.asl", []string{t.TempDir()}); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
