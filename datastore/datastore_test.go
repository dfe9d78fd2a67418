package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGetDelete(t *testing.T) {
	ds, err := New(filepath.Join(t.TempDir(), "d.json"))
	require.NoError(t, err)
	defer ds.Close()

	ds.Add("k", "v")
	v, ok := ds.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	ds.Delete("k")
	_, ok = ds.Get("k")
	assert.False(t, ok)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.json")

	ds, err := New(path)
	require.NoError(t, err)
	ds.Add("greeting", "hello")
	ds.Add("count", 3)
	require.NoError(t, ds.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok := reopened.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	// numbers come back as float64 after a JSON load
	n, ok := reopened.Get("count")
	require.True(t, ok)
	assert.Equal(t, float64(3), n)
}

func TestUnchangedDataSkipsRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.json")

	ds, err := New(path)
	require.NoError(t, err)
	defer ds.Close()

	ds.Add("k", "v")
	require.NoError(t, ds.SaveToFile())

	info1, err := os.Stat(path)
	require.NoError(t, err)

	// same content: the second save must not touch the file
	require.NoError(t, ds.SaveToFile())
	info2, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info1.ModTime(), info2.ModTime())
}

func TestKeys(t *testing.T) {
	ds, err := New(filepath.Join(t.TempDir(), "d.json"))
	require.NoError(t, err)
	defer ds.Close()

	ds.Add("a", 1)
	ds.Add("b", 2)
	assert.ElementsMatch(t, []string{"a", "b"}, ds.Keys())
}

func TestClosedStoreRefusesWork(t *testing.T) {
	ds, err := New(filepath.Join(t.TempDir(), "d.json"))
	require.NoError(t, err)
	require.NoError(t, ds.Close())

	ds.Add("k", "v")
	_, ok := ds.Get("k")
	assert.False(t, ok)
	assert.Error(t, ds.SaveToFile())
}
