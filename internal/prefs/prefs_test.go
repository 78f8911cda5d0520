package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreRoundTrip(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Save("Grid/Size", 16))

	var got int
	found, err := s.Load("Grid/Size", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 16, got)
}

func TestMemStoreMissingPathReportsFalse(t *testing.T) {
	s := NewMemStore()
	var got string
	found, err := s.Load("View/Layout", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "", got)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.yaml")

	s1, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Save("Grid/Size", 32))
	require.NoError(t, s1.Save("Grid/Snap", true))

	s2, err := NewFileStore(path)
	require.NoError(t, err)

	var size int
	found, err := s2.Load("Grid/Size", &size)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 32, size)

	var snap bool
	found, err = s2.Load("Grid/Snap", &snap)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, snap)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.yaml")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	var v int
	found, err := s.Load("anything", &v)
	require.NoError(t, err)
	assert.False(t, found)
}
