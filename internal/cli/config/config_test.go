package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "forgecc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func toolchainFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("project-dir", "", "")
	flags.StringSlice("triples", nil, "")
	flags.String("host", "", "")
	flags.String("os", "", "")
	flags.String("compiler", "", "")
	flags.String("build-dir", "", "")
	flags.Bool("mingw-cross", false, "")
	flags.Bool("no-opt", false, "")
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(ResetConfig)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "gcc", cfg.Toolchain.Compiler)
	assert.Equal(t, "lib", cfg.Toolchain.LibDir)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.NotEmpty(t, cfg.Toolchain.OS)
}

func TestLoadConfig_File(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	t.Chdir(dir)

	writeConfigFile(t, dir, `
toolchain:
  triples:
    - x86_64-unknown-linux-gnu
    - i686-unknown-linux-gnu
  os: unknown-linux-gnu
  compiler: clang
  build_dir: out
  valgrind: /usr/bin/valgrind
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"x86_64-unknown-linux-gnu", "i686-unknown-linux-gnu"}, cfg.Toolchain.Triples)
	assert.Equal(t, "clang", cfg.Toolchain.Compiler)
	assert.Equal(t, "/usr/bin/valgrind", cfg.Toolchain.Valgrind)
	// Host defaults to the first declared triple.
	assert.Equal(t, "x86_64-unknown-linux-gnu", cfg.Toolchain.Host)
	// Relative build_dir resolves against the project root.
	assert.Equal(t, filepath.Join(dir, "out"), cfg.Toolchain.BuildDir)
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	t.Chdir(t.TempDir())

	path := writeConfigFile(t, dir, `
toolchain:
  triples: [x86_64-apple-darwin]
  os: apple-darwin
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "apple-darwin", cfg.Toolchain.OS)
	// The explicit file's directory becomes the project root.
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	t.Chdir(dir)

	writeConfigFile(t, dir, `
toolchain:
  triples: [x86_64-unknown-linux-gnu]
  os: unknown-linux-gnu
  compiler: gcc
`)
	t.Setenv("FORGECC_COMPILER", "clang")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "clang", cfg.Toolchain.Compiler)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	t.Chdir(dir)

	writeConfigFile(t, dir, `
toolchain:
  triples: [x86_64-unknown-linux-gnu]
  os: unknown-linux-gnu
`)
	t.Setenv("FORGECC_COMPILER", "clang")

	flags := toolchainFlags()
	require.NoError(t, flags.Parse([]string{"--compiler", "gcc", "--mingw-cross"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "gcc", cfg.Toolchain.Compiler)
	assert.True(t, cfg.Toolchain.MinGWCross)
}

func TestLoadConfig_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	t.Chdir(dir)

	writeConfigFile(t, dir, `
toolchain:
  triples: [x86_64-unknown-linux-gnu]
  os: unknown-linux-gnu
  compiler: clang
`)

	flags := toolchainFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "clang", cfg.Toolchain.Compiler)
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	t.Cleanup(ResetConfig)
	root := t.TempDir()
	writeConfigFile(t, root, `
toolchain:
  triples: [x86_64-unknown-linux-gnu]
  os: unknown-linux-gnu
`)
	nested := filepath.Join(root, "src", "rt")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Len(t, cfg.Toolchain.Triples, 1)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		toolchain *ToolchainConfig
		wantErr   string
	}{
		{
			name:    "missing toolchain",
			wantErr: "toolchain configuration is required",
		},
		{
			name:      "no triples",
			toolchain: &ToolchainConfig{OS: "linux", Compiler: "gcc"},
			wantErr:   "at least one target triple is required",
		},
		{
			name: "missing os",
			toolchain: &ToolchainConfig{
				Triples:  []string{"x86_64-unknown-linux-gnu"},
				Compiler: "gcc",
			},
			wantErr: "host OS identifier is required",
		},
		{
			name: "unknown compiler",
			toolchain: &ToolchainConfig{
				Triples:  []string{"x86_64-unknown-linux-gnu"},
				OS:       "linux",
				Compiler: "msvc",
			},
			wantErr: "unknown compiler family",
		},
		{
			name: "valid",
			toolchain: &ToolchainConfig{
				Triples:  []string{"x86_64-unknown-linux-gnu"},
				OS:       "linux",
				Compiler: "clang",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Toolchain: tt.toolchain}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
