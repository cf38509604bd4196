package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T, name string) *Directory {
	d, err := NewDirectory(name)
	require.NoError(t, err)
	return d
}

func TestDirectoryAdd(t *testing.T) {
	t.Run("add directory returns child for chaining", func(t *testing.T) {
		root := newTestDirectory(t, "root")
		child, err := root.AddDirectory("sub")
		require.NoError(t, err)
		inner, err := child.AddDirectory("inner")
		require.NoError(t, err)
		assert.Equal(t, "inner", inner.Name())
		assert.Same(t, inner, root.FindDirectory("inner", true))
	})

	t.Run("duplicate directory name", func(t *testing.T) {
		root := newTestDirectory(t, "root")
		_, err := root.AddDirectory("sub")
		require.NoError(t, err)
		_, err = root.AddDirectory("sub")
		var duplicate *DuplicateNameError
		assert.ErrorAs(t, err, &duplicate)
		assert.Len(t, root.Subdirectories(), 1)
	})

	t.Run("file and directory share one namespace", func(t *testing.T) {
		root := newTestDirectory(t, "root")
		_, err := root.AddFile("shared")
		require.NoError(t, err)

		_, err = root.AddDirectory("shared")
		var duplicate *DuplicateNameError
		require.ErrorAs(t, err, &duplicate)

		// and the other way around
		_, err = root.AddDirectory("other")
		require.NoError(t, err)
		_, err = root.AddFile("other")
		assert.ErrorAs(t, err, &duplicate)
	})

	t.Run("tree unchanged after failed add", func(t *testing.T) {
		root := newTestDirectory(t, "root")
		_, err := root.AddFile("a")
		require.NoError(t, err)
		before := root.Export()

		_, err = root.AddFile("a")
		require.Error(t, err)
		assert.Equal(t, before, root.Export())
	})
}

func TestDirectoryRemove(t *testing.T) {
	t.Run("remove missing file", func(t *testing.T) {
		root := newTestDirectory(t, "root")
		err := root.RemoveFile("ghost")
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("remove missing directory leaves state unchanged", func(t *testing.T) {
		root := newTestDirectory(t, "root")
		_, err := root.AddDirectory("keep")
		require.NoError(t, err)
		before := root.Export()

		err = root.RemoveDirectory("ghost")
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, before, root.Export())
	})

	t.Run("cascading delete makes descendants unreachable", func(t *testing.T) {
		root := newTestDirectory(t, "root")
		sub, err := root.AddDirectory("sub")
		require.NoError(t, err)
		deep, err := sub.AddDirectory("deep")
		require.NoError(t, err)
		_, err = deep.AddFile("leaf.txt")
		require.NoError(t, err)

		require.NoError(t, root.RemoveDirectory("sub"))
		assert.Nil(t, root.FindDirectory("sub", true))
		assert.Nil(t, root.FindDirectory("deep", true))
		assert.Nil(t, root.FindFile("leaf.txt", true))
	})
}

func TestDirectoryFind(t *testing.T) {
	root := newTestDirectory(t, "root")
	sub, err := root.AddDirectory("sub")
	require.NoError(t, err)
	_, err = sub.AddFile("nested.txt")
	require.NoError(t, err)
	_, err = root.AddFile("top.txt")
	require.NoError(t, err)

	t.Run("direct child", func(t *testing.T) {
		assert.NotNil(t, root.FindFile("top.txt", false))
		assert.Same(t, sub, root.FindDirectory("sub", false))
	})

	t.Run("recursive", func(t *testing.T) {
		assert.NotNil(t, root.FindFile("nested.txt", true))
	})

	t.Run("non-recursive misses nested entries", func(t *testing.T) {
		assert.Nil(t, root.FindFile("nested.txt", false))
	})

	t.Run("absence returns nil, not an error", func(t *testing.T) {
		assert.Nil(t, root.FindFile("ghost", true))
		assert.Nil(t, root.FindDirectory("ghost", true))
	})

	t.Run("repeated searches are stable", func(t *testing.T) {
		first := root.FindDirectory("sub", true)
		for i := 0; i < 5; i++ {
			assert.Same(t, first, root.FindDirectory("sub", true))
		}
	})
}

func TestDirectoryFromData(t *testing.T) {
	t.Run("missing child mappings mean empty", func(t *testing.T) {
		d, err := DirectoryFromData("d", "docs", map[string]interface{}{})
		require.NoError(t, err)
		assert.Empty(t, d.Files())
		assert.Empty(t, d.Subdirectories())
	})

	t.Run("files must be a mapping", func(t *testing.T) {
		_, err := DirectoryFromData("d", "docs", map[string]interface{}{
			"files": "not-a-mapping",
		})
		var malformed *MalformedDataError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "d.files", malformed.Path)
	})

	t.Run("child name must match mapping key", func(t *testing.T) {
		_, err := DirectoryFromData("d", "docs", map[string]interface{}{
			"files": map[string]interface{}{
				"a.txt": map[string]interface{}{"name": "b.txt"},
			},
		})
		var malformed *MalformedDataError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "d.files.a.txt", malformed.Path)
	})

	t.Run("malformed grandchild surfaces its path", func(t *testing.T) {
		_, err := DirectoryFromData("d", "docs", map[string]interface{}{
			"subdirectories": map[string]interface{}{
				"img": map[string]interface{}{
					"files": map[string]interface{}{
						"x": "not-a-mapping",
					},
				},
			},
		})
		var malformed *MalformedDataError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "d.subdirectories.img.files.x", malformed.Path)
	})

	t.Run("recursive round trip", func(t *testing.T) {
		root := newTestDirectory(t, "root")
		sub, err := root.AddDirectory("sub")
		require.NoError(t, err)
		_, err = sub.AddFileWithContent("a.txt", "alpha")
		require.NoError(t, err)
		_, err = root.AddFile("b.txt")
		require.NoError(t, err)

		restored, err := DirectoryFromData("root", "root", root.Export())
		require.NoError(t, err)
		assert.Equal(t, root.Export(), restored.Export())
	})
}
