package commands

import (
	"os"
	"os/exec"

	"github.com/leapstack-labs/forgecc/internal/toolchain"
	"github.com/spf13/cobra"
)

// checkResult is one diagnostic row.
type checkResult struct {
	Name   string `json:"name" yaml:"name"`
	Value  string `json:"value" yaml:"value"`
	Status string `json:"status" yaml:"status"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that configured tools exist",
		Long: `Check that the configured compiler, performance tool, memory checker,
and suppression directory are present. Missing optional tools are soft
conditions and never fail the command; resolution falls back to its
defaults for them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
}

func runDoctor(cmd *cobra.Command) error {
	ctx := NewCommandContextWithoutResolver(cmd)
	tc := ctx.Cfg.Toolchain

	var results []checkResult

	// The compiler family must parse; this is the one fatal
	// configuration error.
	if _, err := toolchain.ParseFamily(tc.Compiler); err != nil {
		results = append(results, checkResult{"compiler", tc.Compiler, "FATAL: " + err.Error()})
	} else {
		backend := toolchain.BackendFor(mustFamily(tc.Compiler))
		results = append(results, checkBinary("compiler", backend.CC))
	}

	results = append(results, checkOptionalPath("perf_tool", tc.PerfTool))
	results = append(results, checkOptionalPath("valgrind", tc.Valgrind))
	results = append(results, checkOptionalDir("suppressions_dir", tc.SuppressionsDir))

	if ctx.Renderer.Structured() {
		return ctx.Renderer.Emit(results)
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Name, r.Value, r.Status})
	}
	ctx.Renderer.Table([]string{"CHECK", "VALUE", "STATUS"}, rows)
	return nil
}

func mustFamily(name string) toolchain.Family {
	f, _ := toolchain.ParseFamily(name)
	return f
}

func checkBinary(name, bin string) checkResult {
	if _, err := exec.LookPath(bin); err != nil {
		return checkResult{name, bin, "not found in PATH"}
	}
	return checkResult{name, bin, "ok"}
}

func checkOptionalPath(name, path string) checkResult {
	if path == "" {
		return checkResult{name, "", "not configured (using fallback)"}
	}
	if _, err := os.Stat(path); err != nil {
		return checkResult{name, path, "missing"}
	}
	return checkResult{name, path, "ok"}
}

func checkOptionalDir(name, dir string) checkResult {
	if dir == "" {
		return checkResult{name, "", "not configured"}
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return checkResult{name, dir, "missing"}
	}
	return checkResult{name, dir, "ok"}
}
