// Package artifact implements the result file handed back by process-isolated backends.
// The child writes it once before exiting; the orchestrator reads it once and deletes it.
package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

const pattern = "interactive-feedback-*.json"

// NewPath reserves a unique artifact path in dir (os.TempDir when empty).
// The file exists but is empty until the child writes it.
func NewPath(dir string) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create artifact file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("close artifact file: %w", err)
	}
	return name, nil
}

// Write stores result at path. The file is written to a sibling temp file and renamed
// into place so a reader never sees a half-written object.
func Write(path string, result feedback.Result) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".artifact-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

// WriteEmpty stores the canonical empty reply. Used on cancellation and error paths.
func WriteEmpty(path string) error {
	return Write(path, feedback.Empty())
}

// Read parses the artifact at path. A missing, empty or malformed file yields an error
// of kind KindResultArtifactMissingOrMalformed and an empty Result.
func Read(path string) (feedback.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return feedback.Empty(), feedback.Wrap(feedback.KindResultArtifactMissingOrMalformed, "read "+path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return feedback.Empty(), feedback.NewError(feedback.KindResultArtifactMissingOrMalformed, path+" is empty")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return feedback.Empty(), feedback.Wrap(feedback.KindResultArtifactMissingOrMalformed, "parse "+path, err)
	}
	field, ok := raw["interactive_feedback"]
	if !ok {
		return feedback.Empty(), feedback.NewError(feedback.KindResultArtifactMissingOrMalformed, path+" has no interactive_feedback field")
	}
	var text string
	if err := json.Unmarshal(field, &text); err != nil {
		return feedback.Empty(), feedback.Wrap(feedback.KindResultArtifactMissingOrMalformed, "interactive_feedback is not a string", err)
	}
	return feedback.Result{InteractiveFeedback: text}, nil
}

// Remove deletes the artifact. A file that is already gone is not an error.
func Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
