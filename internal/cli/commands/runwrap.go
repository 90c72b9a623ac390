package commands

import (
	"strings"

	"github.com/leapstack-labs/forgecc/internal/toolchain"
	"github.com/spf13/cobra"
)

// RunWrapOptions holds options for the runwrap command.
type RunWrapOptions struct {
	Stage   string
	Triple  string
	Checked bool
	LibDir  string
}

// NewRunWrapCommand creates the runwrap command.
func NewRunWrapCommand() *cobra.Command {
	opts := &RunWrapOptions{}

	cmd := &cobra.Command{
		Use:   "runwrap <binary> [args...]",
		Short: "Show the execution wrapper for a built binary",
		Long: `Show the command prefix and library search path needed to execute a
just-built binary. With --stage, the library directory is the resolved
stage path for the given stage and triple (the test-runner variant).`,
		Example: `  # The run wrapper with an explicit library directory
  forgecc runwrap compiletest --libdir build/stage2/lib

  # The test-runner variant, wrapped in the memory checker
  forgecc runwrap compiletest --stage check-stage2 --checked`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunWrap(cmd, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVar(&opts.Stage, "stage", "", "Stage specifier for the test-runner variant")
	cmd.Flags().StringVar(&opts.Triple, "triple", "", "Target triple (default: host triple)")
	cmd.Flags().BoolVar(&opts.Checked, "checked", false, "Wrap in the memory checker when configured")
	cmd.Flags().StringVar(&opts.LibDir, "libdir", "", "Dynamic-library directory for the binary")

	return cmd
}

func runRunWrap(cmd *cobra.Command, opts *RunWrapOptions, bin string, args []string) error {
	ctx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	triple := toolchain.Triple(opts.Triple)
	if opts.Triple == "" {
		triple = toolchain.Triple(ctx.Cfg.Toolchain.Host)
	}

	var wrapper toolchain.RunWrapper
	if opts.Stage != "" {
		wrapper, err = ctx.Resolver.TestRunWrapper(opts.Stage, triple, opts.Checked)
		if err != nil {
			return err
		}
	} else {
		wrapper = ctx.Resolver.RunWrapper(opts.LibDir, opts.Checked)
	}

	cmdline := wrapper.Command(bin, args...)

	if ctx.Renderer.Structured() {
		return ctx.Renderer.Emit(map[string]any{
			"command":      cmdline,
			"lib_path_var": wrapper.PathVar,
			"lib_dir":      wrapper.LibDir,
		})
	}

	if wrapper.PathVar != "" && wrapper.LibDir != "" {
		ctx.Renderer.Printf("%s=%s\n", wrapper.PathVar, wrapper.LibDir)
	}
	ctx.Renderer.Printf("%s\n", strings.Join(cmdline, " "))
	return nil
}
