package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/kitresolve/internal/cli"
)

func TestRun_ResolvesConfigFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	cfg := `
kit {
  adapter "static" {}
  alias = {
    "@components" = "./src/lib/components"
  }
}
`
	path := filepath.Join(root, "kit.config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0600))
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{path})

	// --- Assert ---
	require.NoError(t, err, logs.String())
	var doc struct {
		ProjectRoot string            `json:"projectRoot"`
		Aliases     map[string]string `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Equal(t, root, doc.ProjectRoot)
	require.Equal(t, filepath.Join(root, "src", "lib", "components"), doc.Aliases["@components"])
}

func TestRun_ResolutionError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	path := filepath.Join(root, "kit.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kit": {"adapter": "netlify"}}`), 0600))
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{path})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "netlify")
	require.Empty(t, out.String(), "no output may be produced for a failed resolution")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, logs.String(), "Usage:", "Expected help text to be printed to the error output")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
