package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/notarium/internal/cli"
	"github.com/vk/notarium/internal/diag"
)

func writeProject(t *testing.T, document string) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"project.hcl":       "model = \"model.hcl\"\n",
		"model.hcl":         "type \"Note\" {\n  name = \"Note\"\n}\n",
		"documents/n.d.hcl": document,
	}
	for name, data := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	}
	return root
}

func TestRun_Compile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := writeProject(t, "key = \"n\"\ntitle = \"Notes\"\narticle \"Note\" \"first\" {\n  names = [\"First\"]\n}\n")
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"compile", "--log-format", "json", root})

	// --- Assert ---
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "website", "documents", "n.html"))
	assert.FileExists(t, filepath.Join(root, "website", "classes", "first.json"))
	assert.Contains(t, out.String(), `"msg":"Compile: Website published."`)
}

func TestRun_CompileError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := writeProject(t, "key = \"n\"\ntitle = \"Notes\"\narticle \"Note\" \"first\" {\n  names = [\"First\"]\n  link \"cites\" { to = [\"first\"] }\n}\n")

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, []string{"compile", root})

	// --- Assert ---
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.CategorySchema), "got %v", err)
	assert.NoDirExists(t, filepath.Join(root, "website"))
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The help flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"--help"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, []string{"compile", "--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "unknown flag: --this-is-not-a-valid-flag")
}
