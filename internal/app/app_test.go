package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/hcl"
)

const testModel = `
type "Definition" {
  name = "Definition"
}
`

// syncBuffer is a bytes.Buffer safe for the watch goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, data := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	}
	return root
}

func testConfig(root string) *Config {
	cfg := DefaultConfig()
	cfg.ProjectDir = root
	cfg.LogLevel = "debug"
	cfg.Debounce = 20 * time.Millisecond
	return &cfg
}

func TestApp_Run(t *testing.T) {
	// --- Arrange ---
	root := writeProject(t, map[string]string{
		"project.hcl":         "model = \"model.hcl\"\n",
		"model.hcl":           testModel,
		"documents/a.d.hcl":   "key = \"a\"\ntitle = \"A\"\narticle \"Definition\" \"x\" {\n  names = [\"X\"]\n}\n",
		"website/outdated.js": "",
	})
	out := &bytes.Buffer{}
	app := NewApp(out, testConfig(root), hcl.NewLoader())

	// --- Act ---
	err := app.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "website", "classes", "x.json"))
	assert.FileExists(t, filepath.Join(root, "website", "documents", "a.html"))
	assert.NoFileExists(t, filepath.Join(root, "website", "outdated.js"))
	assert.Contains(t, out.String(), "Compile: Website published.")
}

func TestApp_RunReturnsCompileError(t *testing.T) {
	root := writeProject(t, map[string]string{
		"project.hcl":       "model = \"model.hcl\"\n",
		"model.hcl":         testModel,
		"documents/a.d.hcl": "key = \"a\"\ntitle = \"A\"\narticle \"Lemma\" \"x\" {\n  names = [\"X\"]\n}\n",
	})
	app := NewApp(&bytes.Buffer{}, testConfig(root), hcl.NewLoader())

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.CategorySchema))
	assert.NoDirExists(t, filepath.Join(root, "website"))
}

func TestApp_Watch(t *testing.T) {
	// --- Arrange ---
	root := writeProject(t, map[string]string{
		"project.hcl":       "model = \"model.hcl\"\n",
		"model.hcl":         testModel,
		"documents/a.d.hcl": "key = \"a\"\ntitle = \"A\"\n",
	})
	cfg := testConfig(root)
	cfg.Watch = true
	out := &syncBuffer{}
	app := NewApp(out, cfg, hcl.NewLoader())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	// --- Act & Assert ---
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(root, "website", "documents", "a.html"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond, "initial compile")
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Watching for changes."))
	}, 5*time.Second, 10*time.Millisecond)

	// A broken document is logged and the loop keeps running.
	require.NoError(t, os.WriteFile(filepath.Join(root, "documents", "bad.d.hcl"), []byte("key = \n"), 0o600))
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Compile failed."))
	}, 5*time.Second, 10*time.Millisecond, "failed recompile is logged")

	require.NoError(t, os.WriteFile(filepath.Join(root, "documents", "bad.d.hcl"), []byte("key = \"b\"\ntitle = \"B\"\n"), 0o600))
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(root, "website", "documents", "bad.html"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond, "recompile after fix")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
