package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromalint/internal/config"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("const a = 1;\n"), 0644))
	return path
}

func TestCollectFilesFromDirectory(t *testing.T) {
	dir := t.TempDir()
	wantJS := writeFile(t, dir, "app.js")
	wantPy := writeFile(t, dir, filepath.Join("nested", "job.py"))
	writeFile(t, dir, "README.md")
	writeFile(t, dir, filepath.Join("node_modules", "dep.js"))

	files, err := CollectFiles([]string{dir}, config.DefaultConfig().Files)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{wantJS, wantPy}, files)
}

func TestCollectFilesCustomExclude(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "keep.ts")
	writeFile(t, dir, filepath.Join("skip", "drop.ts"))

	cfg := config.DefaultConfig().Files
	cfg.Exclude = append(cfg.Exclude, "skip/**")

	files, err := CollectFiles([]string{dir}, cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{want}, files)
}

func TestCollectFilesDirectFileBypassesIncludes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one.jsx")

	cfg := config.DefaultConfig().Files
	cfg.Include = []string{"only/**/*.never"}

	files, err := CollectFiles([]string{path}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestCollectFilesSkipsUnsupportedDirectFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt")

	files, err := CollectFiles([]string{path}, config.DefaultConfig().Files)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCollectFilesMissingPath(t *testing.T) {
	_, err := CollectFiles([]string{"does/not/exist"}, config.DefaultConfig().Files)
	assert.Error(t, err)
}

func TestCollectFilesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dup.js")

	files, err := CollectFiles([]string{path, path}, config.DefaultConfig().Files)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}
