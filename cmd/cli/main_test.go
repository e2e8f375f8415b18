package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A manifest with a syntax error is guaranteed to panic during the
	// loading phase inside app.NewApp().
	invalidHCL := `
		stage "system" {
			script =
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "reload.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{filePath}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EndToEndAssembly(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	scriptBase := filepath.Join(tempDir, "Analytical Data Storage System", "main", "scripts")
	require.NoError(t, os.MkdirAll(scriptBase, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(scriptBase, "data_according_to_system.qvs"),
		[]byte("Trace system layer marker...;"), 0644))

	outPath := filepath.Join(tempDir, "entry.qvs")
	args := []string{
		"--branch=main",
		"--storage-root=lib://DataFiles",
		"--scripts-root=" + tempDir,
		"--out=" + outPath,
		"--log-format=text",
	}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err)

	script, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	require.Contains(t, string(script), "    GIT Branch: main\n")
	require.Contains(t, string(script), "system layer marker")
}
