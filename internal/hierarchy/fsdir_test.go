package hierarchy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSDirProvider(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("b"), 0o644))

	p := NewFSDirProvider()

	root, err := p.Validate(ElementRef(dir))
	require.NoError(t, err)

	t.Run("directories sort before files", func(t *testing.T) {
		children, err := p.FetchChildren(root)
		require.NoError(t, err)
		require.Len(t, children, 3)
		assert.Equal(t, "sub", filepath.Base(string(children[0])))
		assert.Equal(t, "a.txt", filepath.Base(string(children[1])))
		assert.Equal(t, "b.go", filepath.Base(string(children[2])))
	})

	t.Run("directory attributes", func(t *testing.T) {
		attrs, err := p.FetchAttributes(root)
		require.NoError(t, err)
		assert.Equal(t, "AXGroup", attrs.Role)
		assert.Equal(t, 3, attrs.ChildCount)
	})

	t.Run("file attributes", func(t *testing.T) {
		attrs, err := p.FetchAttributes(ElementRef(filepath.Join(dir, "b.go")))
		require.NoError(t, err)
		assert.Equal(t, "AXStaticText", attrs.Role)
		assert.Equal(t, "b.go", attrs.Title)
		assert.Equal(t, "go file", attrs.TypeDescription)
		assert.Equal(t, 0, attrs.ChildCount)
	})

	t.Run("removed entry is gone", func(t *testing.T) {
		path := filepath.Join(dir, "a.txt")
		require.NoError(t, os.Remove(path))
		_, err := p.FetchAttributes(ElementRef(path))
		require.Error(t, err)
		assert.True(t, IsGone(err))
	})

	t.Run("validating a file fails", func(t *testing.T) {
		_, err := p.Validate(ElementRef(filepath.Join(dir, "b.go")))
		assert.Error(t, err)
	})
}
