// Package cli provides the command-line interface for ForgeCC.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/forgecc/internal/cli/commands"
	"github.com/leapstack-labs/forgecc/internal/cli/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forgecc",
		Short: "ForgeCC - Toolchain Configuration Resolver",
		Long: `ForgeCC resolves the concrete toolchain invocation surface for a
multi-stage bootstrapped compiler build: per-triple compile, link,
assemble, and run command templates across Linux, FreeBSD, Darwin, and
Windows/MinGW.

It decides which command to run, never whether or when to run it.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Build the logger and store it in context for commands.
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			ctx := context.WithValue(cmd.Context(), config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Toolchain configuration resolver
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./forgecc.yaml)")
	rootCmd.PersistentFlags().String("project-dir", "", "Project root directory")
	rootCmd.PersistentFlags().StringSlice("triples", nil, "Declared target triples")
	rootCmd.PersistentFlags().String("host", "", "Host triple (default: first declared triple)")
	rootCmd.PersistentFlags().String("os", "", "Host OS identifier")
	rootCmd.PersistentFlags().String("compiler", "", "Compiler family (gcc|clang)")
	rootCmd.PersistentFlags().String("build-dir", "", "Root of the staged build tree")
	rootCmd.PersistentFlags().String("libdir", "", "Library directory convention")
	rootCmd.PersistentFlags().String("perf-tool", "", "Path to a sampling profiler")
	rootCmd.PersistentFlags().String("valgrind", "", "Path to the memory checker")
	rootCmd.PersistentFlags().String("suppressions-dir", "", "Directory with valgrind suppression files")
	rootCmd.PersistentFlags().Bool("mingw-cross", false, "Force the 32-bit MinGW cross-compile profile")
	rootCmd.PersistentFlags().Bool("no-opt", false, "Disable optimization")
	rootCmd.PersistentFlags().Bool("msys", false, "Mark the MSYS subsystem on Windows hosts")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json|yaml)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for compiler flag
	_ = rootCmd.RegisterFlagCompletionFunc("compiler", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"gcc", "clang"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewResolveCommand())
	rootCmd.AddCommand(commands.NewTargetsCommand())
	rootCmd.AddCommand(commands.NewStagePathCommand())
	rootCmd.AddCommand(commands.NewRunWrapCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the most recently loaded config.
func GetConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return &config.Config{
		Toolchain:    &config.ToolchainConfig{},
		OutputFormat: config.DefaultOutput,
	}
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ForgeCC.

To load completions:

Bash:
  $ source <(forgecc completion bash)

Zsh:
  $ forgecc completion zsh > "${fpath[1]}/_forgecc"

Fish:
  $ forgecc completion fish | source

PowerShell:
  PS> forgecc completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
	return cmd
}
