package commands

import (
	"strings"

	"github.com/leapstack-labs/forgecc/internal/toolchain"
	"github.com/spf13/cobra"
)

// Placeholder tokens used when rendering command templates. The build
// orchestrator substitutes the real file paths per invocation.
const (
	srcPlaceholder    = "{src}"
	objPlaceholder    = "{obj}"
	outPlaceholder    = "{out}"
	libDirPlaceholder = "{libdir}"
)

// ResolveOptions holds options for the resolve command.
type ResolveOptions struct {
	DefFile string
	Checked bool
}

// tripleCommands is the per-triple slice of the resolved table, shaped
// for structured output.
type tripleCommands struct {
	Triple     string   `json:"triple" yaml:"triple"`
	Arch       string   `json:"arch" yaml:"arch"`
	Compile    []string `json:"compile" yaml:"compile"`
	Link       []string `json:"link" yaml:"link"`
	Preprocess []string `json:"preprocess" yaml:"preprocess"`
	Assemble   []string `json:"assemble" yaml:"assemble"`
	DepScan    []string `json:"dep_scan" yaml:"dep_scan"`
	Run        []string `json:"run" yaml:"run"`
}

// resolution is the full resolver output consumed by the build
// orchestrator.
type resolution struct {
	OS         string            `json:"os" yaml:"os"`
	Compiler   string            `json:"compiler" yaml:"compiler"`
	LibName    string            `json:"lib_name_pattern" yaml:"lib_name_pattern"`
	LibGlob    string            `json:"lib_glob_pattern" yaml:"lib_glob_pattern"`
	LibPathVar string            `json:"lib_path_var" yaml:"lib_path_var"`
	DebugInfo  []string          `json:"debug_info_cmd" yaml:"debug_info_cmd"`
	PerfCmd    []string          `json:"perf_cmd" yaml:"perf_cmd"`
	Stages     map[string]string `json:"stages" yaml:"stages"`
	Targets    []tripleCommands  `json:"targets" yaml:"targets"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	opts := &ResolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the full toolchain command table",
		Long: `Resolve compile, link, assemble, and run command templates for every
declared target triple.

Templates use {src}, {obj}, and {out} placeholders; the build
orchestrator substitutes real paths per invocation.`,
		Example: `  # Resolve with the configured toolchain
  forgecc resolve

  # Resolve with a symbol-export list and machine-readable output
  forgecc resolve --def-file rustrt.def --output json

  # Resolve run wrappers with the memory checker enabled
  forgecc resolve --checked`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DefFile, "def-file", "", "Symbol-export list file included in link commands")
	cmd.Flags().BoolVar(&opts.Checked, "checked", false, "Wrap run commands in the memory checker when configured")

	return cmd
}

func runResolve(cmd *cobra.Command, opts *ResolveOptions) error {
	ctx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	res := buildResolution(ctx, opts)

	if ctx.Renderer.Structured() {
		return ctx.Renderer.Emit(res)
	}

	ctx.Renderer.Printf("OS: %s  Compiler: %s  Libraries: %s (%s in %s)\n\n",
		res.OS, res.Compiler, res.LibName, res.LibGlob, res.LibPathVar)
	for _, t := range res.Targets {
		ctx.Renderer.Printf("%s (%s)\n", t.Triple, t.Arch)
		ctx.Renderer.Printf("  compile:  %s\n", strings.Join(t.Compile, " "))
		ctx.Renderer.Printf("  link:     %s\n", strings.Join(t.Link, " "))
		ctx.Renderer.Printf("  assemble: %s | %s\n",
			strings.Join(t.Preprocess, " "), strings.Join(t.Assemble, " "))
		ctx.Renderer.Printf("  depscan:  %s\n", strings.Join(t.DepScan, " "))
		ctx.Renderer.Printf("  run:      %s\n\n", strings.Join(t.Run, " "))
	}
	return nil
}

// buildResolution flattens the resolver state into the output shape.
func buildResolution(ctx *CommandContext, opts *ResolveOptions) resolution {
	r := ctx.Resolver
	p := r.Profile()

	// Stage-to-path mapping for the host triple.
	host := toolchain.Triple(ctx.Cfg.Toolchain.Host)
	stages := make(map[string]string, 4)
	for _, s := range toolchain.Stages() {
		if p, err := r.StageLibraryPath(s.Dir(), host); err == nil {
			stages[s.Dir()] = p
		}
	}

	res := resolution{
		OS:         p.Family.String(),
		Compiler:   r.Backend().Family.String(),
		LibName:    p.LibName("{name}"),
		LibGlob:    p.LibGlob("{name}"),
		LibPathVar: p.LibPathVar,
		DebugInfo:  p.DebugInfoCmd,
		PerfCmd:    p.PerfCmd,
		Stages:     stages,
	}

	for _, triple := range r.Triples() {
		cs, ok := r.CommandSet(triple)
		if !ok {
			continue
		}
		pipe := cs.Assemble(srcPlaceholder, objPlaceholder)
		wrapper := r.RunWrapper(libDirPlaceholder, opts.Checked)
		res.Targets = append(res.Targets, tripleCommands{
			Triple:     triple.String(),
			Arch:       triple.HostArch(),
			Compile:    cs.Compile(srcPlaceholder, objPlaceholder),
			Link:       cs.Link(outPlaceholder, []string{objPlaceholder}, opts.DefFile),
			Preprocess: pipe.Preprocess,
			Assemble:   pipe.Assemble,
			DepScan:    cs.DepScan(srcPlaceholder),
			Run:        wrapper.Command("{bin}"),
		})
	}
	return res
}
