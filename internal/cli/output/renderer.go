// Package output provides mode-aware rendering for CLI results.
//
// Output adapts to the environment: a terminal gets styled tables,
// pipes and scripts get markdown, and --output selects json or yaml
// explicitly.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects the rendering format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Renderer writes formatted results to an output stream.
type Renderer struct {
	out  io.Writer
	errW io.Writer
	mode Mode
}

// NewRenderer creates a renderer. An empty or auto mode is resolved
// against the output stream: TTY → text, otherwise markdown.
func NewRenderer(out, errW io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, errW: errW, mode: mode}
}

// Mode returns the resolved rendering mode.
func (r *Renderer) Mode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModeMarkdown
}

// Structured reports whether the mode is machine-readable (json or
// yaml), in which case callers should emit one document instead of
// tables and prose.
func (r *Renderer) Structured() bool {
	m := r.Mode()
	return m == ModeJSON || m == ModeYAML
}

// Table renders header and rows in the resolved mode.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	hdr := make(table.Row, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	t.AppendHeader(hdr)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, c := range row {
			tr[i] = c
		}
		t.AppendRow(tr)
	}

	if r.Mode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// Emit writes v as a single json or yaml document, per the mode.
func (r *Renderer) Emit(v any) error {
	switch r.Mode() {
	case ModeYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(v)
	default:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// Printf writes formatted text to the output stream.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Errorf writes formatted text to the error stream.
func (r *Renderer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errW, format, args...)
}
