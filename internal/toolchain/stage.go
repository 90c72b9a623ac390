package toolchain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Stage is one step of the multi-pass bootstrap build. Each stage's
// compiler is built with the previous stage's output.
type Stage int

const (
	Stage0 Stage = iota
	Stage1
	Stage2
	Stage3
)

// Dir returns the stage's build directory segment, e.g. "stage1".
func (s Stage) Dir() string {
	return fmt.Sprintf("stage%d", int(s))
}

// Stages lists all bootstrap stages in build order.
func Stages() []Stage {
	return []Stage{Stage0, Stage1, Stage2, Stage3}
}

// ParseStage scans a specifier for one of the four stage markers,
// checked in ascending order; the first marker found wins. A specifier
// naming no stage is an error rather than an empty path segment.
func ParseStage(spec string) (Stage, error) {
	for _, s := range Stages() {
		if strings.Contains(spec, s.Dir()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("no stage marker in %q (expected one of stage0..stage3)", spec)
}

// StageLibraryPath resolves the on-disk library search path for a
// stage: <base>/<stageN>/<libdir>/rustc/<hostTriple>/<libdir>. The
// libdir appears twice by convention, first for the stage's compiler
// install layout and again for the per-target library subdirectory.
func StageLibraryPath(base string, stage Stage, host Triple, libdir string) string {
	return filepath.Join(base, stage.Dir(), libdir, "rustc", host.String(), libdir)
}
