// Package commands implements the forgecc subcommands.
package commands

import (
	"log/slog"

	"github.com/leapstack-labs/forgecc/internal/cli/config"
	"github.com/leapstack-labs/forgecc/internal/cli/output"
	"github.com/leapstack-labs/forgecc/internal/toolchain"
	"github.com/spf13/cobra"
)

// CommandContext bundles the dependencies a command needs: the loaded
// configuration, the logger, the built resolver, and the renderer.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Resolver *toolchain.Resolver
	Renderer *output.Renderer
}

// NewCommandContext builds the context for a command that needs a
// resolved toolchain. Resolution is all-or-nothing: a bad compiler
// family or OS identifier fails here, before the command body runs.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	ctx := NewCommandContextWithoutResolver(cmd)

	if err := ctx.Cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := toolchain.New(ctx.Cfg.Toolchain.ResolverConfig(ctx.Logger))
	if err != nil {
		return nil, err
	}
	ctx.Resolver = r
	return ctx, nil
}

// NewCommandContextWithoutResolver builds the context for commands
// that only inspect configuration.
func NewCommandContextWithoutResolver(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, falling back to an
// empty config with defaults when none has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Toolchain:    &config.ToolchainConfig{},
		OutputFormat: config.DefaultOutput,
	}
}
