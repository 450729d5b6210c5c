package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

func TestWriteThenRead(t *testing.T) {
	path, err := NewPath(t.TempDir())
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}

	want := feedback.Result{InteractiveFeedback: "No\n\n<b>details</b> & more"}
	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != want {
		t.Errorf("Read() = %+v, want %+v", got, want)
	}
}

func TestReadFailures(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing", path: filepath.Join(dir, "nope.json")},
		{name: "empty", path: write("empty.json", "")},
		{name: "not json", path: write("garbage.json", "{interactive")},
		{name: "missing field", path: write("nofield.json", `{"other": "x"}`)},
		{name: "wrong type", path: write("number.json", `{"interactive_feedback": 3}`)},
		{name: "array", path: write("array.json", `["ok"]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(tt.path)
			if !errors.Is(err, feedback.ErrArtifactMissingOrMalformed) {
				t.Fatalf("expected ErrArtifactMissingOrMalformed, got %v", err)
			}
			if !got.IsEmpty() {
				t.Errorf("expected empty result, got %+v", got)
			}
		})
	}
}

func TestNewPathReservesEmptyFile(t *testing.T) {
	path, err := NewPath(t.TempDir())
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("size = %d, want 0", info.Size())
	}
	if _, err := Read(path); err == nil {
		t.Error("unwritten artifact should not parse")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	path, err := NewPath(t.TempDir())
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	if err := Remove(path); err != nil {
		t.Fatalf("first Remove: %v", err)
	}
	if err := Remove(path); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be gone, stat err = %v", err)
	}
	if err := Remove(""); err != nil {
		t.Errorf("Remove(\"\") = %v", err)
	}
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteEmpty(path); err != nil {
		t.Fatalf("WriteEmpty: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("expected empty, got %+v", got)
	}
}
