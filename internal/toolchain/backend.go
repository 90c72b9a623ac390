package toolchain

import (
	"fmt"
	"strings"
)

// Family identifies a supported compiler backend.
type Family int

const (
	GCC Family = iota
	Clang
)

// String returns the configuration name of the family.
func (f Family) String() string {
	switch f {
	case GCC:
		return "gcc"
	case Clang:
		return "clang"
	}
	return "unknown"
}

// SupportedFamilies lists the configurable compiler families.
func SupportedFamilies() []string {
	return []string{GCC.String(), Clang.String()}
}

// UnknownFamilyError is returned when the configured compiler family is
// absent or not one of the supported backends. It is the single fatal
// error of the resolver: without a backend no command template can
// exist, so configuration aborts rather than emitting a partial table.
type UnknownFamilyError struct {
	Family    string
	Available []string
}

func (e *UnknownFamilyError) Error() string {
	if e.Family == "" {
		return fmt.Sprintf("no compiler family configured (supported: %s)", strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("unknown compiler family %q (supported: %s)", e.Family, strings.Join(e.Available, ", "))
}

// ParseFamily maps a configured compiler family name to a Family.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(name) {
	case "gcc", "g++", "gcc-family":
		return GCC, nil
	case "clang", "clang++", "clang-family":
		return Clang, nil
	}
	return 0, &UnknownFamilyError{Family: name, Available: SupportedFamilies()}
}

// Backend holds the concrete binary names and family-specific flags for
// one compiler family.
type Backend struct {
	Family Family

	// CC, CXX, and CPP are the C compiler, C++ compiler, and
	// preprocessor binary names, before any cross prefix.
	CC  string
	CXX string
	CPP string

	// Flags are family-specific warning/ABI flags added to every
	// compile.
	Flags []string

	// DepScan is the dependency-scan command template, run by the
	// orchestrator to discover header dependencies.
	DepScan []string
}

// BackendFor returns the backend definition for a family.
func BackendFor(f Family) Backend {
	switch f {
	case Clang:
		return Backend{
			Family:  Clang,
			CC:      "clang",
			CXX:     "clang++",
			CPP:     "clang-cpp",
			Flags:   []string{"-Qunused-arguments"},
			DepScan: []string{"clang-cpp", "-MM"},
		}
	default:
		return Backend{
			Family:  GCC,
			CC:      "gcc",
			CXX:     "g++",
			CPP:     "cpp",
			Flags:   []string{"-fno-strict-aliasing"},
			DepScan: []string{"cpp", "-MM"},
		}
	}
}
