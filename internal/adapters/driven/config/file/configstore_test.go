package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyServerURL, "http://localhost:8000"))
	require.NoError(t, store.Set(KeyPollIntervalMS, 2000))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, "http://localhost:8000", store.GetString(KeyServerURL))
	assert.Equal(t, 2000, store.GetInt(KeyPollIntervalMS))
	assert.True(t, store.GetBool("verbose"))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("absent")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("absent"))
	assert.Zero(t, store.GetInt("absent"))
	assert.False(t, store.GetBool("absent"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyScope, "documents"))
	assert.Zero(t, store.GetInt(KeyScope))
	assert.False(t, store.GetBool(KeyScope))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyServerURL, "http://example.com"))
	require.NoError(t, store.Set(KeyPollIntervalMS, 500))

	// TOML integers come back as int64; GetInt normalises.
	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", reopened.GetString(KeyServerURL))
	assert.Equal(t, 500, reopened.GetInt(KeyPollIntervalMS))
}

func TestConfigStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0600))

	_, err := NewConfigStore(dir)
	require.Error(t, err)
}

func TestConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}
