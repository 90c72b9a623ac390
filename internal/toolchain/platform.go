package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OSFamily is the closed set of operating system families a build can
// target. Classification is exhaustive: an identifier either maps to
// exactly one family or is an error, never a partially-filled profile.
type OSFamily int

const (
	Linux OSFamily = iota
	FreeBSD
	Darwin
	Windows
)

// String returns the lowercase family name, used for OS-specific
// suppression file lookup and display.
func (f OSFamily) String() string {
	switch f {
	case Linux:
		return "linux"
	case FreeBSD:
		return "freebsd"
	case Darwin:
		return "darwin"
	case Windows:
		return "windows"
	}
	return "unknown"
}

// UnknownOSError is returned when an OS identifier matches no supported
// family.
type UnknownOSError struct {
	Identifier string
}

func (e *UnknownOSError) Error() string {
	return fmt.Sprintf("unknown OS identifier %q (supported: linux, freebsd, darwin, windows/mingw)", e.Identifier)
}

// ClassifyOS maps a host OS identifier (typically the output of uname
// or a configure-style canonical name) to an OSFamily. Substring tests
// run in a fixed order and the first match is the only match; an
// identifier matching nothing is a reported error rather than a
// defaulted profile.
func ClassifyOS(identifier string) (OSFamily, error) {
	id := strings.ToLower(identifier)
	switch {
	case strings.Contains(id, "freebsd"):
		return FreeBSD, nil
	case strings.Contains(id, "linux"):
		return Linux, nil
	case strings.Contains(id, "darwin"), strings.Contains(id, "apple"):
		return Darwin, nil
	case strings.Contains(id, "mingw"), strings.Contains(id, "msys"), strings.Contains(id, "win"):
		return Windows, nil
	}
	return 0, &UnknownOSError{Identifier: identifier}
}

// Options holds the boolean and tool-path build options that shape a
// platform profile.
type Options struct {
	// PerfTool is the path to a sampling profiler. When set it takes
	// precedence over Valgrind for the performance-measurement command.
	PerfTool string

	// Valgrind is the path to the memory checker, used both for the
	// performance command fallback and for run wrapping.
	Valgrind string

	// SuppressionsDir is where valgrind suppression files live.
	SuppressionsDir string

	// MinGWCross forces a 32-bit MinGW-targeted profile regardless of
	// the native host OS.
	MinGWCross bool

	// NoOpt disables optimization (-O0 instead of -O2).
	NoOpt bool

	// MSYS marks the MSYS subsystem on Windows hosts, which changes how
	// the dynamic-library search path reaches a launched process.
	MSYS bool
}

// Profile is the complete, immutable bundle of linking, library, and
// debug conventions for one OS family. ProfileFor returns a fully
// populated value; callers never mutate one.
type Profile struct {
	Family OSFamily

	// LibNamePattern and LibGlobPattern are fmt patterns taking a
	// library base name, e.g. "lib%s.so" / "lib%s-*.so".
	LibNamePattern string
	LibGlobPattern string

	// Unixy and Windowsy are mutually exclusive.
	Unixy    bool
	Windowsy bool

	CompileFlags []string
	LinkFlags    []string

	// DefFlagPrefix is the linker flag that consumes a symbol-export
	// list file path, concatenated directly with the path. Empty on
	// Windows, where the .def file is passed bare.
	DefFlagPrefix string

	// PreLibFlags and PostLibFlags bracket whole-archive link inputs.
	PreLibFlags  []string
	PostLibFlags []string

	// LibPathVar is the dynamic-library search-path environment
	// variable name for this family.
	LibPathVar string

	// DebugInfoCmd post-processes debug info after linking. A no-op
	// everywhere except Darwin, where it runs dsymutil.
	DebugInfoCmd []string

	// PerfCmd is the performance-measurement command prefix.
	PerfCmd []string

	// ArchCompileFlags and ArchLinkFlags are per-architecture additions
	// keyed by host arch (i386, x86_64). They append to the base flags,
	// never replace them.
	ArchCompileFlags map[string][]string
	ArchLinkFlags    map[string][]string
}

// LibName renders the shared-library filename for a base name.
func (p Profile) LibName(base string) string {
	return fmt.Sprintf(p.LibNamePattern, base)
}

// LibGlob renders the shared-library glob for a base name.
func (p Profile) LibGlob(base string) string {
	return fmt.Sprintf(p.LibGlobPattern, base)
}

// DefFlag returns the linker arguments exporting the symbols listed in
// defFile, or nil when no file is supplied.
func (p Profile) DefFlag(defFile string) []string {
	if defFile == "" {
		return nil
	}
	return []string{p.DefFlagPrefix + defFile}
}

// InstallNameFlag returns the embedded runtime search directive for a
// library, non-empty only on Darwin.
func (p Profile) InstallNameFlag(libName string) []string {
	if p.Family != Darwin {
		return nil
	}
	return []string{"-Wl,-install_name,@rpath/" + libName}
}

// SuppressionFiles returns the valgrind suppression files to pass for
// this profile: the fixed architecture file plus the per-OS file when
// it exists on disk. A missing OS file is a soft condition, not an
// error.
func (p Profile) SuppressionFiles(dir string) []string {
	if dir == "" {
		return nil
	}
	files := []string{filepath.Join(dir, "x86.supp")}
	osFile := filepath.Join(dir, p.Family.String()+".supp")
	if _, err := os.Stat(osFile); err == nil {
		files = append(files, osFile)
	}
	return files
}

// ProfileFor returns the complete platform profile for an OS family
// under the given options. It is a pure function of its inputs except
// for the on-disk suppression file probe done later by callers; the
// MinGW cross override is applied last and always wins.
func ProfileFor(family OSFamily, opts Options) Profile {
	opt := "-O2"
	if opts.NoOpt {
		opt = "-O0"
	}

	var p Profile
	switch family {
	case Linux:
		p = Profile{
			Family:         Linux,
			LibNamePattern: "lib%s.so",
			LibGlobPattern: "lib%s-*.so",
			Unixy:          true,
			CompileFlags:   []string{"-Wall", "-Werror", "-g", opt, "-fPIC"},
			LinkFlags:      []string{"-shared", "-fPIC", "-lpthread", "-lrt", "-ldl"},
			DefFlagPrefix:  "-Wl,--export-dynamic,--dynamic-list=",
			PreLibFlags:    []string{"-Wl,-whole-archive"},
			PostLibFlags:   []string{"-Wl,-no-whole-archive"},
			LibPathVar:     "LD_LIBRARY_PATH",
			DebugInfoCmd:   []string{"true"},
			ArchCompileFlags: map[string][]string{
				"i386":   {"-m32", "-march=i686"},
				"x86_64": {"-m64"},
			},
			ArchLinkFlags: map[string][]string{
				"i386":   {"-m32"},
				"x86_64": {"-m64"},
			},
		}
	case FreeBSD:
		p = Profile{
			Family:         FreeBSD,
			LibNamePattern: "lib%s.so",
			LibGlobPattern: "lib%s-*.so",
			Unixy:          true,
			CompileFlags:   []string{"-Wall", "-Werror", "-g", opt, "-fPIC", "-I/usr/local/include"},
			LinkFlags:      []string{"-shared", "-fPIC", "-lpthread", "-L/usr/local/lib"},
			DefFlagPrefix:  "-Wl,--export-dynamic,--dynamic-list=",
			PreLibFlags:    []string{"-Wl,-whole-archive"},
			PostLibFlags:   []string{"-Wl,-no-whole-archive"},
			LibPathVar:     "LD_LIBRARY_PATH",
			DebugInfoCmd:   []string{"true"},
			ArchCompileFlags: map[string][]string{
				"i386":   {"-m32", "-march=i686"},
				"x86_64": {"-m64"},
			},
			ArchLinkFlags: map[string][]string{
				"i386":   {"-m32"},
				"x86_64": {"-m64"},
			},
		}
	case Darwin:
		p = Profile{
			Family:         Darwin,
			LibNamePattern: "lib%s.dylib",
			LibGlobPattern: "lib%s-*.dylib",
			Unixy:          true,
			CompileFlags:   []string{"-Wall", "-Werror", "-g", opt, "-fPIC"},
			LinkFlags:      []string{"-dynamiclib", "-lpthread", "-framework", "CoreServices"},
			DefFlagPrefix:  "-Wl,-exported_symbols_list,",
			PreLibFlags:    []string{"-Wl,-all_load"},
			PostLibFlags:   nil,
			LibPathVar:     "DYLD_LIBRARY_PATH",
			DebugInfoCmd:   []string{"dsymutil"},
			ArchCompileFlags: map[string][]string{
				"i386":   {"-arch", "i386"},
				"x86_64": {"-arch", "x86_64"},
			},
			ArchLinkFlags: map[string][]string{
				"i386":   {"-arch", "i386"},
				"x86_64": {"-arch", "x86_64"},
			},
		}
	case Windows:
		p = windowsProfile(opt)
	}

	p.PerfCmd = perfCommand(opts)

	if opts.MinGWCross {
		// The cross override replaces the unix-derived compilation
		// fields wholesale; it is evaluated after OS dispatch and wins
		// unconditionally.
		native := p
		p = windowsProfile(opt)
		p.CompileFlags = []string{"-march=i686", "-m32", opt, "-g", "-fno-strict-aliasing"}
		p.PerfCmd = native.PerfCmd
	}

	return p
}

// windowsProfile is the MinGW-targeted Windows profile, used both for
// native Windows hosts and for the cross-compile override.
func windowsProfile(opt string) Profile {
	return Profile{
		Family:         Windows,
		LibNamePattern: "%s.dll",
		LibGlobPattern: "%s-*.dll",
		Windowsy:       true,
		CompileFlags:   []string{"-Wall", "-Werror", "-g", opt, "-march=i686"},
		LinkFlags:      []string{"-shared", "-fPIC"},
		DefFlagPrefix:  "",
		PreLibFlags:    []string{"-Wl,-whole-archive"},
		PostLibFlags:   []string{"-Wl,-no-whole-archive"},
		LibPathVar:     "PATH",
		DebugInfoCmd:   []string{"true"},
		ArchCompileFlags: map[string][]string{
			"i386":   {"-m32"},
			"x86_64": {"-m64"},
		},
		ArchLinkFlags: map[string][]string{
			"i386":   {"-m32"},
			"x86_64": {"-m64"},
		},
	}
}

// perfCommand picks the performance-measurement command with the fixed
// precedence profiler → memory checker → wall-clock timing.
func perfCommand(opts Options) []string {
	switch {
	case opts.PerfTool != "":
		return []string{opts.PerfTool, "stat", "-r", "3"}
	case opts.Valgrind != "":
		return []string{opts.Valgrind, "--tool=cachegrind", "--cache-sim=yes", "--branch-sim=yes"}
	default:
		return []string{"/usr/bin/time", "--verbose"}
	}
}
