package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	sharedcfg "github.com/leapstack-labs/forgecc/internal/config"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context. Shared with the
// commands package via GetLogger/LoggerKey to avoid an import cycle
// with the cli package.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search
// for config files.
const maxUpwardSearchLevels = 10

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// configFileNames are the recognized config file names, in priority
// order.
var configFileNames = []string{"forgecc.yaml", "forgecc.yml"}

// findConfigFile finds the config file to use.
// Priority: explicit path > forgecc.yaml > forgecc.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// configExistsIn checks if a forgecc config file exists in the
// directory.
func configExistsIn(dir string) bool {
	for _, name := range configFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// findProjectRootUpward searches upward from startDir for a forgecc
// config file. Returns empty string if not found within
// maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot determines the project root from CLI flags and the
// filesystem.
// Priority:
//  1. Explicit --project-dir flag
//  2. Search upward from CWD for forgecc.yaml
//  3. Current working directory
func inferProjectRoot(flags *pflag.FlagSet) string {
	if flags != nil {
		if projectDir, _ := flags.GetString("project-dir"); projectDir != "" && flags.Changed("project-dir") {
			abs, err := filepath.Abs(projectDir)
			if err == nil {
				return abs
			}
			return filepath.Clean(projectDir)
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		if root := findProjectRootUpward(cwd); root != "" {
			return root
		}
	}

	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not
// absolute. Returns the path unchanged if it's empty or already
// absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// envKeyMap bridges flat FORGECC_* environment variables to their
// nested config keys.
var envKeyMap = map[string]string{
	"triples":          "toolchain.triples",
	"host":             "toolchain.host",
	"os":               "toolchain.os",
	"compiler":         "toolchain.compiler",
	"build_dir":        "toolchain.build_dir",
	"libdir":           "toolchain.libdir",
	"perf_tool":        "toolchain.perf_tool",
	"valgrind":         "toolchain.valgrind",
	"suppressions_dir": "toolchain.suppressions_dir",
	"mingw_cross":      "toolchain.mingw_cross",
	"no_opt":           "toolchain.no_opt",
	"msys":             "toolchain.msys",
}

// flagKeyMap bridges CLI flag names to nested config keys, for the
// flags that mirror toolchain settings.
var flagKeyMap = map[string]string{
	"triples":          "toolchain.triples",
	"host":             "toolchain.host",
	"os":               "toolchain.os",
	"compiler":         "toolchain.compiler",
	"build_dir":        "toolchain.build_dir",
	"libdir":           "toolchain.libdir",
	"perf_tool":        "toolchain.perf_tool",
	"valgrind":         "toolchain.valgrind",
	"suppressions_dir": "toolchain.suppressions_dir",
	"mingw_cross":      "toolchain.mingw_cross",
	"no_opt":           "toolchain.no_opt",
	"msys":             "toolchain.msys",
}

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config
// file > defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	projectRoot := inferProjectRoot(flags)

	// If an explicit config file is provided, use its directory as
	// project root unless --project-dir was given.
	if cfgFile != "" && (flags == nil || !flags.Changed("project-dir")) {
		if absPath, err := filepath.Abs(cfgFile); err == nil {
			projectRoot = filepath.Dir(absPath)
		}
	}

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"toolchain.compiler":  DefaultCompiler,
		"toolchain.build_dir": DefaultBuildDir,
		"toolchain.libdir":    DefaultLibDir,
		"toolchain.os":        sharedcfg.DefaultOS(),
		"verbose":             false,
		"output":              DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file, searching the project root when no
	// explicit file was provided.
	if cfgFile == "" {
		for _, name := range configFileNames {
			candidate := filepath.Join(projectRoot, name)
			if _, err := os.Stat(candidate); err == nil {
				cfgFile = candidate
				break
			}
		}
	}
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (FORGECC_ prefix)
	// Transform: FORGECC_COMPILER -> toolchain.compiler
	if err := k.Load(env.Provider("FORGECC_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "FORGECC_"))
		if mapped, ok := envKeyMap[key]; ok {
			return mapped
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config
	// file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeyMap[key]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Toolchain == nil {
		cfg.Toolchain = &ToolchainConfig{}
	}
	sharedcfg.ApplyDefaults(cfg.Toolchain)

	// 6. Set project root and resolve relative paths against it.
	cfg.ProjectRoot = projectRoot
	cfg.Toolchain.BuildDir = resolvePathRelativeTo(cfg.Toolchain.BuildDir, projectRoot)
	cfg.Toolchain.SuppressionsDir = resolvePathRelativeTo(cfg.Toolchain.SuppressionsDir, projectRoot)

	currentConfig = &cfg
	return &cfg, nil
}

// GetConfigFileUsed returns the path of the config file that was
// loaded, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the most recently loaded config, or nil
// when none has been loaded.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
