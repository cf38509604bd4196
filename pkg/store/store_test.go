package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "store")
		s, err := New(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.Dir())
	})

	t.Run("empty directory rejected", func(t *testing.T) {
		_, err := New("")
		assert.Error(t, err)
	})
}

func TestStoreRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Write("structure.json", `{"directories":{}}`))

	text, err := s.Read("structure.json")
	require.NoError(t, err)
	assert.Equal(t, `{"directories":{}}`, text)

	exists, err := s.Exists("structure.json")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Exists("missing.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStoreList(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Write("b.json", "{}"))
	require.NoError(t, s.Write("a.json", "{}"))
	require.NoError(t, s.Write("notes.txt", "ignored"))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, names)
}

func TestStoreReadMissing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Read("missing.json")
	assert.Error(t, err)
}
