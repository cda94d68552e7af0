package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/coursegraph/internal/app"
	"github.com/vk/coursegraph/internal/testutil"
)

const courseHCL = `
course "Sample" {
  node "1" {
    type  = "st"
    title = "Root"

    node "100" {
      type  = "sp"
      title = "Intro"
    }

    node "200" {
      type             = "sp"
      title            = "Quiz"
      access_condition = "getPassed(\"100\") & getAttempts(\"100\") > 0"
    }
  }
}
`

const courseYAML = `
courses:
  - title: Loop
    root:
      id: "1"
      type: st
      children:
        - id: "10"
          type: sp
          access_condition: getPassed("11")
        - id: "11"
          type: sp
          access_condition: getPassed("10")
`

func writeCourses(t *testing.T) string {
	t.Helper()
	return testutil.WriteFiles(t, map[string]string{
		"a.hcl":       courseHCL,
		"more/b.yaml": courseYAML,
	})
}

func TestRun_Analyze(t *testing.T) {
	t.Parallel()

	dir := writeCourses(t)
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	err := run(out, logs, []string{"--workers", "2", dir})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "== analyze: Sample")
	assert.Contains(t, out.String(), "== analyze: Loop")
	assert.Contains(t, out.String(), "cyclic: 2")
	assert.Contains(t, logs.String(), "Cyclic dependency detected.")
}

func TestRun_CheckDeleteFails(t *testing.T) {
	t.Parallel()

	dir := writeCourses(t)
	out := &bytes.Buffer{}

	err := run(out, &bytes.Buffer{}, []string{"--command", "check-delete", "--nodes", "100", filepath.Join(dir, "a.hcl")})

	assert.ErrorIs(t, err, app.ErrChecksFailed)
	assert.Contains(t, out.String(), "Node 'Quiz' depends on this element")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A course file with a syntax error fails during loading.
	invalidHCL := `
		course "broken" {
			node "1" {
		// Missing closing braces here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	// --- Act ---
	runErr := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{filePath})

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should see `shouldExit=true` and return a nil error.
	err := run(out, &bytes.Buffer{}, args)

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
	// The run function should propagate the error from cli.Parse.
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
