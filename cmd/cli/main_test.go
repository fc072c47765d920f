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
	// A manifest with a syntax error is guaranteed to cause a panic during
	// the loading phase inside app.NewApp().
	invalidHCL := `
		component "card" {
			exports {
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	pagePath := filepath.Join(tempDir, "index.html")
	require.NoError(t, os.WriteFile(pagePath, []byte("<html></html>"), 0600))
	configPath := filepath.Join(tempDir, "site.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(invalidHCL), 0600))

	args := []string{"--config", configPath, pagePath}
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

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	pagePath := filepath.Join(tempDir, "index.html")
	page := `<html><body><div id="c1" lz-load x-data="card()"></div></body></html>`
	require.NoError(t, os.WriteFile(pagePath, []byte(page), 0600))

	configPath := filepath.Join(tempDir, "site.hcl")
	manifest := `
component "card" {
  exports {
    default = "card-impl"
  }
}
`
	require.NoError(t, os.WriteFile(configPath, []byte(manifest), 0600))

	out := &bytes.Buffer{}
	err := run(out, []string{"--config", configPath, "--log-format", "text", pagePath})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Subtree activated.")
}
