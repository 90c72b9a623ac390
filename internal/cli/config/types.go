// Package config provides configuration management for the ForgeCC CLI.
//
// This package extends the shared configuration types from
// internal/config with CLI-specific fields and the koanf loading
// pipeline (defaults, config file, environment, flags).
package config

import (
	sharedcfg "github.com/leapstack-labs/forgecc/internal/config"
)

// ToolchainConfig is an alias for the shared toolchain configuration.
// This allows CLI code to use config.ToolchainConfig without importing
// internal/config.
type ToolchainConfig = sharedcfg.ToolchainConfig

// Config holds all CLI configuration options.
type Config struct {
	Toolchain    *ToolchainConfig `koanf:"toolchain"`
	Verbose      bool             `koanf:"verbose"`
	OutputFormat string           `koanf:"output"`

	// ProjectRoot is the directory relative paths resolve against.
	// Derived at load time, never read from the file itself.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - toolchain defaults come from the
// shared package.
const (
	DefaultBuildDir = sharedcfg.DefaultBuildDir
	DefaultLibDir   = sharedcfg.DefaultLibDir
	DefaultCompiler = sharedcfg.DefaultCompiler
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
