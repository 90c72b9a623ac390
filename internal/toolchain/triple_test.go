package toolchain

import "testing"

func TestTripleHostArch(t *testing.T) {
	tests := []struct {
		triple string
		want   string
	}{
		{"i686-unknown-linux", "i386"},
		{"i686-unknown-linux-gnu", "i386"},
		{"x86_64-apple-darwin", "x86_64"},
		{"x86_64-unknown-freebsd", "x86_64"},
		{"i686-pc-mingw32", "i386"},
		{"aarch64-unknown-linux-gnu", "aarch64"},
		// No dash segment: the whole string is the arch.
		{"x86_64", "x86_64"},
		{"i686", "i386"},
	}
	for _, tt := range tests {
		if got := Triple(tt.triple).HostArch(); got != tt.want {
			t.Errorf("HostArch(%q) = %q, want %q", tt.triple, got, tt.want)
		}
	}
}

func TestParseTriple_Empty(t *testing.T) {
	if _, err := ParseTriple(""); err == nil {
		t.Error("expected error for empty triple")
	}
}

func TestParseTriple_Valid(t *testing.T) {
	tr, err := ParseTriple("x86_64-unknown-linux-gnu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.String() != "x86_64-unknown-linux-gnu" {
		t.Errorf("unexpected triple: %q", tr.String())
	}
}
