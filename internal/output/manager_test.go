package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"relgate/internal/checks"
)

type failingSink struct {
	writeErr error
	closeErr error
}

func (s *failingSink) Write(any) error { return s.writeErr }
func (s *failingSink) Close() error    { return s.closeErr }

func TestManagerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewManager()
	if err := m.AddSink(NewConsoleSink(&a, "text", nil)); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSink(NewConsoleSink(&b, "text", nil)); err != nil {
		t.Fatal(err)
	}

	if err := m.Write(checks.PassResult("tphate", "a")); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	if a.String() != b.String() || !strings.Contains(a.String(), "[PASS] a") {
		t.Errorf("sinks diverged: %q vs %q", a.String(), b.String())
	}
}

func TestManagerCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	m := NewManager()
	m.AddSink(&failingSink{writeErr: boom, closeErr: boom})

	var healthy bytes.Buffer
	m.AddSink(NewConsoleSink(&healthy, "text", nil))

	if err := m.Write(checks.PassResult("tphate", "a")); !errors.Is(err, boom) {
		t.Errorf("Write err = %v, want wrapped boom", err)
	}
	// The healthy sink still got the result.
	if !strings.Contains(healthy.String(), "[PASS] a") {
		t.Errorf("healthy sink skipped: %q", healthy.String())
	}
	if err := m.Close(); !errors.Is(err, boom) {
		t.Errorf("Close err = %v, want wrapped boom", err)
	}
}

func TestManagerRejectsNilSink(t *testing.T) {
	m := NewManager()
	if err := m.AddSink(nil); err == nil {
		t.Error("AddSink(nil) did not error")
	}
}

func TestEmitSink(t *testing.T) {
	t.Run("bad format", func(t *testing.T) {
		if _, err := NewEmitSink(&bytes.Buffer{}, "yaml"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("nil writer", func(t *testing.T) {
		if _, err := NewEmitSink(nil, "json"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("json aggregate", func(t *testing.T) {
		var buf bytes.Buffer
		sink, err := NewEmitSink(&buf, "json")
		if err != nil {
			t.Fatal(err)
		}
		sink.Write(checks.PassResult("tphate", "a"))
		sink.Write(checks.FailResult("tphate", "b", "nope"))
		if err := sink.Close(); err != nil {
			t.Fatal(err)
		}
		var results []checks.Result
		if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("got %d results", len(results))
		}
	})

	t.Run("ndjson stream", func(t *testing.T) {
		var buf bytes.Buffer
		sink, err := NewEmitSink(&buf, "ndjson")
		if err != nil {
			t.Fatal(err)
		}
		sink.Write(Event{Type: "run.started"})
		sink.Write(checks.PassResult("tphate", "a"))
		if err := sink.Close(); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 2 {
			t.Errorf("got %d lines, want 2:\n%s", len(lines), buf.String())
		}
	})
}
