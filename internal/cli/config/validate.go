package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid. Toolchain validation
// is delegated to the shared config; a bad compiler family or an empty
// triple list fails here, before any resolution starts.
func (c *Config) Validate() error {
	if c.Toolchain == nil {
		return fmt.Errorf("toolchain configuration is required")
	}
	return c.Toolchain.Validate()
}

// ValidateSuppressionsDir checks that the configured suppression
// directory exists. Callers treat a missing directory as a soft
// condition; this is used only by diagnostics.
func (c *Config) ValidateSuppressionsDir() error {
	if c.Toolchain == nil || c.Toolchain.SuppressionsDir == "" {
		return nil
	}
	if _, err := os.Stat(c.Toolchain.SuppressionsDir); os.IsNotExist(err) {
		return fmt.Errorf("suppressions directory does not exist: %s", c.Toolchain.SuppressionsDir)
	}
	return nil
}
