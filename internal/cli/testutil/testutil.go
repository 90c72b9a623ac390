// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/forgecc/internal/cli/output"
)

// SetupTestProject creates a temporary project directory with a
// forgecc.yaml declaring a two-triple Linux toolchain and a
// suppression directory, and returns its path.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	cfg := `toolchain:
  triples:
    - x86_64-unknown-linux-gnu
    - i686-unknown-linux-gnu
  host: x86_64-unknown-linux-gnu
  os: unknown-linux-gnu
  compiler: gcc
  build_dir: build
  suppressions_dir: src/etc
`
	if err := os.WriteFile(filepath.Join(tmpDir, "forgecc.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to create forgecc.yaml: %v", err)
	}

	suppDir := filepath.Join(tmpDir, "src", "etc")
	if err := os.MkdirAll(suppDir, 0755); err != nil {
		t.Fatalf("failed to create suppressions directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(suppDir, "x86.supp"), []byte("{}\n"), 0644); err != nil {
		t.Fatalf("failed to create x86.supp: %v", err)
	}

	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a test renderer with the specified mode.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, errOut, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the captured stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}
