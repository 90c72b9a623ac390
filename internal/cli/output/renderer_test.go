package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderer_AutoResolvesToMarkdownForBuffers(t *testing.T) {
	r := NewRenderer(new(bytes.Buffer), new(bytes.Buffer), ModeAuto)
	if got := r.Mode(); got != ModeMarkdown {
		t.Errorf("Mode() = %v, want markdown for non-TTY output", got)
	}
}

func TestRenderer_Table(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, new(bytes.Buffer), ModeText)
	r.Table([]string{"TRIPLE", "ARCH"}, [][]string{
		{"x86_64-unknown-linux-gnu", "x86_64"},
		{"i686-unknown-linux-gnu", "i386"},
	})

	out := buf.String()
	for _, want := range []string{"TRIPLE", "x86_64-unknown-linux-gnu", "i386"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_TableMarkdown(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, new(bytes.Buffer), ModeMarkdown)
	r.Table([]string{"A"}, [][]string{{"b"}})

	if !strings.Contains(buf.String(), "|") {
		t.Errorf("expected markdown table, got:\n%s", buf.String())
	}
}

func TestRenderer_EmitJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, new(bytes.Buffer), ModeJSON)
	if !r.Structured() {
		t.Error("json mode should be structured")
	}

	if err := r.Emit(map[string]string{"compiler": "gcc"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["compiler"] != "gcc" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestRenderer_EmitYAML(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, new(bytes.Buffer), ModeYAML)
	if err := r.Emit(map[string]string{"compiler": "clang"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(buf.String(), "compiler: clang") {
		t.Errorf("unexpected yaml:\n%s", buf.String())
	}
}
