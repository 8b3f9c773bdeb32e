package python

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveOverrideNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-python")
	if _, err := Resolve(missing); err == nil {
		t.Error("expected error for missing override")
	}
}

func TestResolveEnvOverrideNotFound(t *testing.T) {
	t.Setenv("RELGATE_PYTHON", filepath.Join(t.TempDir(), "no-such-python"))
	if _, err := Resolve(""); err == nil {
		t.Error("expected error for missing env interpreter")
	}
}

func TestRunUnresolvedInterpreter(t *testing.T) {
	var i Interpreter
	if _, err := i.run(context.Background(), "", 0, "-c", "pass"); err == nil {
		t.Error("expected error for unresolved interpreter")
	}
}

func TestTee(t *testing.T) {
	var a, b strings.Builder
	w := tee(&a, &b)
	b.WriteString("pre ")
	if _, err := w.Write([]byte("out")); err != nil {
		t.Fatal(err)
	}
	if a.String() != "out" {
		t.Errorf("a = %q", a.String())
	}
	if b.String() != "pre out" {
		t.Errorf("b = %q", b.String())
	}
}

func TestTail(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"abcdefgh", 4, "...efgh"},
	}
	for _, tt := range tests {
		if got := tail(tt.in, tt.n); got != tt.want {
			t.Errorf("tail(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
