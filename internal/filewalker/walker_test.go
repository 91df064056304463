package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("void main() {}\n"), 0644))
}

func paths(entries []FileEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "lib", "main.dart"))
	touch(t, filepath.Join(root, "lib", "ui", "home.dart"))
	touch(t, filepath.Join(root, "lib", "model.g.dart"))
	touch(t, filepath.Join(root, "lib", "generated", "intl", "messages_en.dart"))
	touch(t, filepath.Join(root, ".dart_tool", "cache.dart"))
	touch(t, filepath.Join(root, "lib", "README.md"))

	entries, err := NewWalker().Walk(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "lib", "main.dart"),
		filepath.Join(root, "lib", "ui", "home.dart"),
	}, paths(entries))
	for _, e := range entries {
		assert.Equal(t, ".dart", e.Ext)
		assert.NotNil(t, e.Parser)
	}
}

func TestWalkSingleFileAndDedup(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "lib", "main.dart")
	touch(t, file)

	entries, err := NewWalker().Walk(file, root)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, paths(entries))
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := NewWalker().Walk(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
