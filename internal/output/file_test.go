package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"relgate/internal/checks"
)

func TestNewFileSinkFormatInference(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		format     string
		wantFormat string
		wantErr    bool
	}{
		{name: "json extension", path: "r.json", wantFormat: "json"},
		{name: "ndjson extension", path: "r.ndjson", wantFormat: "ndjson"},
		{name: "jsonl extension", path: "r.jsonl", wantFormat: "ndjson"},
		{name: "explicit format", path: "r.dat", format: "json", wantFormat: "json"},
		{name: "unknown extension", path: "r.xml", wantErr: true},
		{name: "bad explicit format", path: "r.json", format: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.path)
			sink, err := NewFileSink(path, tt.format)
			if tt.wantErr {
				if err == nil {
					sink.Close()
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			defer sink.Close()
			if sink.format != tt.wantFormat {
				t.Errorf("format = %q, want %q", sink.format, tt.wantFormat)
			}
		})
	}
}

func TestNewFileSinkEmptyPath(t *testing.T) {
	if _, err := NewFileSink("", "json"); err == nil {
		t.Fatal("expected error")
	}
}

func TestFileSinkCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "results.json")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file not created: %v", err)
	}
}

func TestFileSinkJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatal(err)
	}
	sink.Write(checks.PassResult("tphate", "a"))
	sink.Write(Event{Type: "run.finished"})
	sink.Write(checks.SkippedResult("tphate", "b", "offline mode"))
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var results []checks.Result
	if err := json.Unmarshal(raw, &results); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, raw)
	}
	if len(results) != 2 || results[1].Status != checks.StatusSkipped {
		t.Errorf("results = %+v", results)
	}
}

func TestFileSinkNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.ndjson")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatal(err)
	}
	sink.Write(Event{Type: "run.started", Project: "tphate"})
	sink.Write(checks.PassResult("tphate", "a"))
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), raw)
	}
	for _, line := range lines {
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Errorf("bad NDJSON line %q: %v", line, err)
		}
	}
}
