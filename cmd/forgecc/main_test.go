// Package main provides tests for the ForgeCC CLI.
package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leapstack-labs/forgecc/internal/cli"
	cliconfig "github.com/leapstack-labs/forgecc/internal/cli/config"
	"github.com/leapstack-labs/forgecc/internal/cli/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(cliconfig.ResetConfig)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(output, "ForgeCC") {
		t.Errorf("version output should contain 'ForgeCC', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := execute(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}
	expectedCommands := []string{"resolve", "targets", "stagepath", "runwrap", "doctor", "version"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestTargetsCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	output, err := execute(t, "targets")
	if err != nil {
		t.Errorf("targets command error = %v", err)
	}
	if !strings.Contains(output, "x86_64-unknown-linux-gnu") {
		t.Errorf("targets output should list the declared triples, got: %s", output)
	}
	if !strings.Contains(output, "i386") {
		t.Errorf("targets output should show the aliased arch, got: %s", output)
	}
}

func TestTargetsCommandJSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	output, err := execute(t, "targets", "--output", "json")
	if err != nil {
		t.Errorf("targets --output json error = %v", err)
	}

	var targets []map[string]any
	if err := json.Unmarshal([]byte(output), &targets); err != nil {
		t.Fatalf("targets output is not valid JSON: %v\n%s", err, output)
	}
	if len(targets) != 2 {
		t.Errorf("expected 2 targets, got %d", len(targets))
	}
}

func TestResolveCommandJSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	output, err := execute(t, "resolve", "--output", "json", "--def-file", "rustrt.def")
	if err != nil {
		t.Errorf("resolve command error = %v", err)
	}

	var res map[string]any
	if err := json.Unmarshal([]byte(output), &res); err != nil {
		t.Fatalf("resolve output is not valid JSON: %v\n%s", err, output)
	}
	if res["compiler"] != "gcc" {
		t.Errorf("expected compiler gcc, got %v", res["compiler"])
	}
	if !strings.Contains(output, "--dynamic-list=rustrt.def") {
		t.Errorf("resolve output should carry the export flag, got: %s", output)
	}
}

func TestResolveCommand_UnknownCompilerFails(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	output, err := execute(t, "resolve", "--compiler", "msvc")
	if err == nil {
		t.Errorf("expected fatal error for unknown compiler family, got output: %s", output)
	}
	if !strings.Contains(err.Error(), "unknown compiler family") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStagePathCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	output, err := execute(t, "stagepath", "stage2")
	if err != nil {
		t.Errorf("stagepath command error = %v", err)
	}
	if !strings.Contains(output, "stage2") || !strings.Contains(output, "rustc") {
		t.Errorf("unexpected stagepath output: %s", output)
	}
}

func TestStagePathCommand_NoStage(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	_, err := execute(t, "stagepath", "release")
	if err == nil {
		t.Error("expected error for a specifier naming no stage")
	}
}

func TestRunWrapCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	output, err := execute(t, "runwrap", "compiletest", "--stage", "check-stage1")
	if err != nil {
		t.Errorf("runwrap command error = %v", err)
	}
	if !strings.Contains(output, "LD_LIBRARY_PATH=") {
		t.Errorf("runwrap output should name the search-path variable, got: %s", output)
	}
	if !strings.Contains(output, "compiletest") {
		t.Errorf("runwrap output should contain the binary, got: %s", output)
	}
}

func TestDoctorCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	output, err := execute(t, "doctor")
	if err != nil {
		t.Errorf("doctor command error = %v", err)
	}
	if !strings.Contains(output, "compiler") {
		t.Errorf("doctor output should report the compiler check, got: %s", output)
	}
}
