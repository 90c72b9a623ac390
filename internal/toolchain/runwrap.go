package toolchain

// RunWrapper describes how to execute a just-built binary so that it
// finds its shared libraries. The library search path is returned as a
// value for the caller's process-launch abstraction to apply; nothing
// here mutates the ambient environment.
type RunWrapper struct {
	// Prefix is prepended to the command line (memory checker, wine
	// shim), possibly empty.
	Prefix []string

	// PathVar, when non-empty, names the environment variable the
	// launcher must prepend LibDir to before invocation.
	PathVar string

	// LibDir is the resolved dynamic-library directory.
	LibDir string

	// Positional marks the windowsy-native convention where LibDir is
	// passed as the first argument of the run template instead of
	// through the environment.
	Positional bool
}

// Command renders the full command line for running bin with args.
func (w RunWrapper) Command(bin string, args ...string) []string {
	cmd := make([]string, 0, len(w.Prefix)+2+len(args))
	cmd = append(cmd, w.Prefix...)
	cmd = append(cmd, bin)
	if w.Positional && w.LibDir != "" {
		cmd = append(cmd, w.LibDir)
	}
	cmd = append(cmd, args...)
	return cmd
}

// valgrindRunFlags are the fixed flags for running a binary under the
// memory checker: full leak check, a distinct exit code on leak, and
// quiet output.
var valgrindRunFlags = []string{"--leak-check=full", "--error-exitcode=100", "--quiet"}

// runWrapper selects the run prefix for a profile. checked requests
// wrapping in the memory checker when one is configured.
func runWrapper(p Profile, opts Options, libDir string, checked bool) RunWrapper {
	switch {
	case p.Unixy:
		var prefix []string
		if checked && opts.Valgrind != "" {
			prefix = append(prefix, opts.Valgrind)
			prefix = append(prefix, valgrindRunFlags...)
			for _, supp := range p.SuppressionFiles(opts.SuppressionsDir) {
				prefix = append(prefix, "--suppressions="+supp)
			}
		}
		return RunWrapper{Prefix: prefix, PathVar: p.LibPathVar, LibDir: libDir}

	case opts.MinGWCross:
		// Cross-built Windows binaries run under the compatibility
		// shim; the checker, when requested, sits behind it.
		prefix := []string{"wine"}
		if checked && opts.Valgrind != "" {
			prefix = append(prefix, opts.Valgrind)
			prefix = append(prefix, valgrindRunFlags...)
		}
		return RunWrapper{Prefix: prefix, LibDir: libDir}

	case opts.MSYS:
		// The MSYS subsystem reaches libraries through PATH; the
		// launcher prepends the library directory before invocation.
		return RunWrapper{PathVar: "PATH", LibDir: libDir}

	default:
		// Native Windows: the run template takes the library directory
		// positionally.
		return RunWrapper{LibDir: libDir, Positional: true}
	}
}
