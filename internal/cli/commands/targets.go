package commands

import (
	"github.com/spf13/cobra"
)

// targetInfo is one row of the targets listing.
type targetInfo struct {
	Triple     string `json:"triple" yaml:"triple"`
	Arch       string `json:"arch" yaml:"arch"`
	LibName    string `json:"lib_name" yaml:"lib_name"`
	LibGlob    string `json:"lib_glob" yaml:"lib_glob"`
	LibPathVar string `json:"lib_path_var" yaml:"lib_path_var"`
	Assembler  string `json:"assembler" yaml:"assembler"`
}

// NewTargetsCommand creates the targets command.
func NewTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List declared target triples and their conventions",
		Long: `List every declared target triple with its resolved architecture,
shared-library naming conventions, and dynamic-library search-path
variable.`,
		Example: `  # List targets as a table
  forgecc targets

  # List targets as JSON
  forgecc targets --output json`,
		Aliases: []string{"list"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTargets(cmd)
		},
	}
}

func runTargets(cmd *cobra.Command) error {
	ctx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	p := ctx.Resolver.Profile()
	targets := make([]targetInfo, 0, len(ctx.Resolver.Triples()))
	for _, t := range ctx.Resolver.Triples() {
		cs, ok := ctx.Resolver.CommandSet(t)
		if !ok {
			continue
		}
		pipe := cs.Assemble(srcPlaceholder, objPlaceholder)
		targets = append(targets, targetInfo{
			Triple:     t.String(),
			Arch:       t.HostArch(),
			LibName:    p.LibName("{name}"),
			LibGlob:    p.LibGlob("{name}"),
			LibPathVar: p.LibPathVar,
			Assembler:  pipe.Assemble[0],
		})
	}

	if ctx.Renderer.Structured() {
		return ctx.Renderer.Emit(targets)
	}

	rows := make([][]string, 0, len(targets))
	for _, t := range targets {
		rows = append(rows, []string{t.Triple, t.Arch, t.LibName, t.LibPathVar, t.Assembler})
	}
	ctx.Renderer.Table([]string{"TRIPLE", "ARCH", "LIB NAME", "PATH VAR", "ASSEMBLER"}, rows)
	return nil
}
