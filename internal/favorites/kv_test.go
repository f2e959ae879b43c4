package favorites

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	kv := NewFileKV(path)

	// Missing file reads as "never written".
	got, err := kv.Get(StorageKey)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, kv.Set(StorageKey, []byte(`[{"name":"Tokyo"}]`)))

	got, err = kv.Get(StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Tokyo"}]`, string(got))

	// A second key coexists in the same file.
	require.NoError(t, kv.Set("other", []byte(`"x"`)))
	got, err = kv.Get(StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Tokyo"}]`, string(got))
}

func TestFileKVCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	kv := NewFileKV(path)
	_, err := kv.Get(StorageKey)
	assert.Error(t, err)

	// Set replaces the corrupt file instead of failing forever.
	require.NoError(t, kv.Set(StorageKey, []byte(`[]`)))
	got, err := kv.Get(StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))
}
