// Package toolchain resolves concrete compile, link, assemble, and run
// command templates for a multi-stage bootstrapped compiler build.
// Resolution happens once, at configuration time, and produces an
// immutable per-triple command table; nothing in this package executes
// commands or touches the build graph.
package toolchain

import (
	"fmt"
	"strings"
)

// Triple is a target identifier of the form arch-vendor-os[-abi],
// e.g. "x86_64-unknown-linux-gnu" or "i686-apple-darwin".
type Triple string

// ParseTriple validates a raw triple string. Only the empty string is
// rejected; a triple without a dash is accepted and yields itself as
// its architecture segment, matching the behavior of the original
// build scripts.
func ParseTriple(s string) (Triple, error) {
	if s == "" {
		return "", fmt.Errorf("target triple is empty")
	}
	return Triple(s), nil
}

// HostArch returns the architecture segment of the triple: the first
// dash-delimited token, with the single alias i686 → i386 applied.
func (t Triple) HostArch() string {
	arch := string(t)
	if i := strings.IndexByte(arch, '-'); i >= 0 {
		arch = arch[:i]
	}
	if arch == "i686" {
		return "i386"
	}
	return arch
}

// String returns the raw triple.
func (t Triple) String() string { return string(t) }
