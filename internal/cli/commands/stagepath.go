package commands

import (
	"fmt"

	"github.com/leapstack-labs/forgecc/internal/toolchain"
	"github.com/spf13/cobra"
)

// NewStagePathCommand creates the stagepath command.
func NewStagePathCommand() *cobra.Command {
	var tripleFlag string

	cmd := &cobra.Command{
		Use:   "stagepath <specifier>",
		Short: "Resolve the library search path for a bootstrap stage",
		Long: `Resolve the on-disk library search path for a stage specifier and a
target triple. The specifier names one of stage0..stage3; a specifier
naming no stage is an error.`,
		Example: `  # The stage2 library path for the host triple
  forgecc stagepath stage2

  # A test-runner specifier for a specific triple
  forgecc stagepath check-stage1 --triple i686-unknown-linux-gnu`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStagePath(cmd, args[0], tripleFlag)
		},
	}

	cmd.Flags().StringVar(&tripleFlag, "triple", "", "Target triple (default: host triple)")

	return cmd
}

func runStagePath(cmd *cobra.Command, spec, tripleFlag string) error {
	ctx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	triple := toolchain.Triple(tripleFlag)
	if tripleFlag == "" {
		triple = toolchain.Triple(ctx.Cfg.Toolchain.Host)
	}

	path, err := ctx.Resolver.StageLibraryPath(spec, triple)
	if err != nil {
		return fmt.Errorf("cannot resolve stage path: %w", err)
	}

	if ctx.Renderer.Structured() {
		return ctx.Renderer.Emit(map[string]string{
			"specifier": spec,
			"triple":    triple.String(),
			"path":      path,
		})
	}
	ctx.Renderer.Printf("%s\n", path)
	return nil
}
