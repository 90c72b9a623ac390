// Package config provides shared configuration types for ForgeCC.
// This package is decoupled from CLI concerns so that other tools
// embedding the resolver can load the same project configuration.
package config

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/forgecc/internal/toolchain"
)

// ToolchainConfig describes one toolchain resolution: the declared
// targets, the host, the compiler family, and the build options.
type ToolchainConfig struct {
	// Triples are the declared target triples (arch-vendor-os[-abi]).
	Triples []string `koanf:"triples"`

	// Host is the triple the build runs on. Defaults to the first
	// declared triple.
	Host string `koanf:"host"`

	// OS is the host operating system identifier.
	OS string `koanf:"os"`

	// Compiler selects the backend family: gcc or clang.
	Compiler string `koanf:"compiler"`

	// BuildDir is the root of the staged build tree.
	BuildDir string `koanf:"build_dir"`

	// LibDir is the library-directory convention, normally "lib".
	LibDir string `koanf:"libdir"`

	// PerfTool is an optional path to a sampling profiler.
	PerfTool string `koanf:"perf_tool"`

	// Valgrind is an optional path to the memory checker.
	Valgrind string `koanf:"valgrind"`

	// SuppressionsDir is where valgrind suppression files live.
	SuppressionsDir string `koanf:"suppressions_dir"`

	// MinGWCross forces the 32-bit MinGW cross-compile profile.
	MinGWCross bool `koanf:"mingw_cross"`

	// NoOpt disables optimization.
	NoOpt bool `koanf:"no_opt"`

	// MSYS marks the MSYS subsystem on Windows hosts.
	MSYS bool `koanf:"msys"`

	// CrossPrefixes maps triples to toolchain binary prefixes.
	CrossPrefixes map[string]string `koanf:"cross_prefixes"`

	// Assemblers maps triples to assembler binaries.
	Assemblers map[string]string `koanf:"assemblers"`
}

// Validate checks the toolchain configuration. The compiler family is
// validated here so that a bad configuration fails before any command
// templates are derived.
func (c *ToolchainConfig) Validate() error {
	if len(c.Triples) == 0 {
		return fmt.Errorf("at least one target triple is required")
	}
	for _, t := range c.Triples {
		if _, err := toolchain.ParseTriple(t); err != nil {
			return err
		}
	}
	if c.OS == "" {
		return fmt.Errorf("host OS identifier is required")
	}
	if _, err := toolchain.ParseFamily(c.Compiler); err != nil {
		return err
	}
	return nil
}

// ResolverConfig converts the configuration to a toolchain.Config.
func (c *ToolchainConfig) ResolverConfig(logger *slog.Logger) toolchain.Config {
	triples := make([]toolchain.Triple, 0, len(c.Triples))
	for _, t := range c.Triples {
		triples = append(triples, toolchain.Triple(t))
	}

	host := toolchain.Triple(c.Host)
	if c.Host == "" && len(c.Triples) > 0 {
		host = toolchain.Triple(c.Triples[0])
	}

	prefixes := make(map[toolchain.Triple]string, len(c.CrossPrefixes))
	for t, p := range c.CrossPrefixes {
		prefixes[toolchain.Triple(t)] = p
	}
	assemblers := make(map[toolchain.Triple]string, len(c.Assemblers))
	for t, a := range c.Assemblers {
		assemblers[toolchain.Triple(t)] = a
	}

	return toolchain.Config{
		Triples:       triples,
		Host:          host,
		OS:            c.OS,
		Family:        c.Compiler,
		BuildDir:      c.BuildDir,
		LibDir:        c.LibDir,
		CrossPrefixes: prefixes,
		Assemblers:    assemblers,
		Options: toolchain.Options{
			PerfTool:        c.PerfTool,
			Valgrind:        c.Valgrind,
			SuppressionsDir: c.SuppressionsDir,
			MinGWCross:      c.MinGWCross,
			NoOpt:           c.NoOpt,
			MSYS:            c.MSYS,
		},
		Logger: logger,
	}
}
