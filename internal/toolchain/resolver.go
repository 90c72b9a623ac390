package toolchain

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// Config is the caller-supplied input to a resolution. All values are
// known at configuration time; the resolver never reads them again
// after New returns.
type Config struct {
	// Triples are the declared build targets.
	Triples []Triple

	// Host is the triple the build itself runs on.
	Host Triple

	// OS is the host operating system identifier (uname-style or a
	// configure-style canonical name).
	OS string

	// Family selects the compiler backend ("gcc" or "clang"). An
	// unknown or empty family is the resolver's only fatal error.
	Family string

	// BuildDir is the root of the staged build tree.
	BuildDir string

	// LibDir is the platform library-directory convention ("lib").
	LibDir string

	// CrossPrefixes maps non-host triples to their toolchain binary
	// prefix, e.g. "i686-w64-mingw32-".
	CrossPrefixes map[Triple]string

	// Assemblers maps triples to assembler binaries, overriding the
	// default.
	Assemblers map[Triple]string

	Options Options

	Logger *slog.Logger
}

// CommandSet is the immutable per-triple command table entry. The
// stored slices are templates; the methods append the per-invocation
// file arguments without mutating the stored state.
type CommandSet struct {
	Triple Triple

	cc       string
	cpp      string
	compile  []string
	link     []string
	depScan  []string
	asm      string
	profile  Profile
}

// Compile renders the compile-to-object command for one source file.
func (c CommandSet) Compile(src, obj string) []string {
	cmd := make([]string, 0, len(c.compile)+4)
	cmd = append(cmd, c.compile...)
	cmd = append(cmd, "-c", "-o", obj, src)
	return cmd
}

// Link renders the shared-library link command. defFile, when
// non-empty, adds the OS-specific symbol-export flag immediately
// followed by the file path; when empty the flag is omitted entirely.
func (c CommandSet) Link(out string, objs []string, defFile string) []string {
	cmd := make([]string, 0, len(c.link)+len(objs)+4)
	cmd = append(cmd, c.link...)
	cmd = append(cmd, c.profile.DefFlag(defFile)...)
	cmd = append(cmd, c.profile.InstallNameFlag(filepath.Base(out))...)
	cmd = append(cmd, "-o", out)
	cmd = append(cmd, objs...)
	return cmd
}

// WholeArchive brackets static-archive link inputs with the profile's
// whole-archive wrapper flags.
func (c CommandSet) WholeArchive(archives []string) []string {
	cmd := make([]string, 0, len(archives)+2)
	cmd = append(cmd, c.profile.PreLibFlags...)
	cmd = append(cmd, archives...)
	cmd = append(cmd, c.profile.PostLibFlags...)
	return cmd
}

// Assemble renders the two-stage preprocess-then-assemble pipeline for
// one assembly source.
func (c CommandSet) Assemble(src, obj string) Pipeline {
	return assemblePipeline(c.cpp, c.asm, c.Triple, src, obj)
}

// DepScan renders the header dependency-scan command for one source.
func (c CommandSet) DepScan(src string) []string {
	cmd := make([]string, 0, len(c.depScan)+1)
	cmd = append(cmd, c.depScan...)
	cmd = append(cmd, src)
	return cmd
}

// Resolver holds the resolved platform profile, compiler backend, and
// the per-triple command table. It is built once by New and read-only
// afterwards.
type Resolver struct {
	cfg     Config
	profile Profile
	backend Backend
	sets    map[Triple]CommandSet
	order   []Triple
}

// New resolves the full toolchain surface for a configuration. It
// either returns a complete table or fails; no partial output is ever
// produced. The only fatal conditions are an unusable compiler family
// and an unclassifiable host OS.
func New(cfg Config) (*Resolver, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.LibDir == "" {
		cfg.LibDir = "lib"
	}

	family, err := ParseFamily(cfg.Family)
	if err != nil {
		return nil, err
	}
	osFamily, err := ClassifyOS(cfg.OS)
	if err != nil {
		return nil, err
	}

	profile := ProfileFor(osFamily, cfg.Options)
	backend := BackendFor(family)

	log.Debug("resolved platform profile",
		"os", osFamily.String(),
		"family", family.String(),
		"unixy", profile.Unixy,
		"windowsy", profile.Windowsy,
		"mingw_cross", cfg.Options.MinGWCross)

	r := &Resolver{
		cfg:     cfg,
		profile: profile,
		backend: backend,
		sets:    make(map[Triple]CommandSet, len(cfg.Triples)),
		order:   make([]Triple, 0, len(cfg.Triples)),
	}
	for _, raw := range cfg.Triples {
		t, err := ParseTriple(raw.String())
		if err != nil {
			return nil, fmt.Errorf("invalid target triple: %w", err)
		}
		r.sets[t] = r.buildSet(t)
		r.order = append(r.order, t)
		log.Debug("resolved command templates", "triple", t.String(), "arch", t.HostArch())
	}
	return r, nil
}

// buildSet assembles one triple's command templates. Flag order is
// fixed: binary, base flags, family flags, per-arch flags.
func (r *Resolver) buildSet(t Triple) CommandSet {
	prefix := r.cfg.CrossPrefixes[t]
	arch := t.HostArch()

	cc := prefix + r.backend.CC
	cpp := prefix + r.backend.CPP

	compile := []string{cc}
	compile = append(compile, r.profile.CompileFlags...)
	compile = append(compile, r.backend.Flags...)
	compile = append(compile, r.profile.ArchCompileFlags[arch]...)

	link := []string{cc}
	link = append(link, r.profile.LinkFlags...)
	link = append(link, r.profile.ArchLinkFlags[arch]...)

	depScan := make([]string, 0, len(r.backend.DepScan))
	depScan = append(depScan, prefix+r.backend.DepScan[0])
	depScan = append(depScan, r.backend.DepScan[1:]...)

	asm := r.cfg.Assemblers[t]

	return CommandSet{
		Triple:  t,
		cc:      cc,
		cpp:     cpp,
		compile: compile,
		link:    link,
		depScan: depScan,
		asm:     asm,
		profile: r.profile,
	}
}

// Profile returns the resolved platform profile.
func (r *Resolver) Profile() Profile { return r.profile }

// Backend returns the resolved compiler backend.
func (r *Resolver) Backend() Backend { return r.backend }

// Triples returns the declared triples in configuration order.
func (r *Resolver) Triples() []Triple {
	out := make([]Triple, len(r.order))
	copy(out, r.order)
	return out
}

// CommandSet looks up the command table entry for a triple.
func (r *Resolver) CommandSet(t Triple) (CommandSet, bool) {
	cs, ok := r.sets[t]
	return cs, ok
}

// StageLibraryPath resolves the library search path for a stage
// specifier and triple under the configured build tree.
func (r *Resolver) StageLibraryPath(spec string, t Triple) (string, error) {
	stage, err := ParseStage(spec)
	if err != nil {
		return "", err
	}
	return StageLibraryPath(r.cfg.BuildDir, stage, t, r.cfg.LibDir), nil
}

// RunWrapper returns the execution wrapper for a built binary whose
// shared libraries live in libDir. checked requests the memory checker
// when one is configured.
func (r *Resolver) RunWrapper(libDir string, checked bool) RunWrapper {
	return runWrapper(r.profile, r.cfg.Options, libDir, checked)
}

// TestRunWrapper is the test-runner variant: the library directory is
// the resolved stage path for the given stage specifier and triple.
func (r *Resolver) TestRunWrapper(stageSpec string, t Triple, checked bool) (RunWrapper, error) {
	libDir, err := r.StageLibraryPath(stageSpec, t)
	if err != nil {
		return RunWrapper{}, err
	}
	return runWrapper(r.profile, r.cfg.Options, libDir, checked), nil
}
