package config

import "runtime"

// Default configuration values.
const (
	DefaultBuildDir = "build"
	DefaultLibDir   = "lib"
	DefaultCompiler = "gcc"
)

// DefaultOS returns the default host OS identifier when none is
// configured.
func DefaultOS() string {
	return runtime.GOOS
}

// ApplyDefaults applies default values to a ToolchainConfig.
func ApplyDefaults(c *ToolchainConfig) {
	if c == nil {
		return
	}
	if c.BuildDir == "" {
		c.BuildDir = DefaultBuildDir
	}
	if c.LibDir == "" {
		c.LibDir = DefaultLibDir
	}
	if c.Compiler == "" {
		c.Compiler = DefaultCompiler
	}
	if c.OS == "" {
		c.OS = DefaultOS()
	}
	if c.Host == "" && len(c.Triples) > 0 {
		c.Host = c.Triples[0]
	}
}
