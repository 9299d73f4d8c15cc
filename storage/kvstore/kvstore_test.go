package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleKVStorePutGet(t *testing.T) {
	store := NewSimpleKVStore()
	ctx := context.Background()

	err := store.Put(ctx, "key1", StoredValue{"field": "value"}, "")
	require.NoError(t, err)

	val, err := store.Get(ctx, "key1", "")
	require.NoError(t, err)
	assert.Equal(t, "value", val["field"])

	missing, err := store.Get(ctx, "nope", "")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSimpleKVStoreCollections(t *testing.T) {
	store := NewSimpleKVStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", StoredValue{"v": 1.0}, "alpha"))
	require.NoError(t, store.Put(ctx, "k", StoredValue{"v": 2.0}, "beta"))

	alpha, err := store.Get(ctx, "k", "alpha")
	require.NoError(t, err)
	assert.Equal(t, 1.0, alpha["v"])

	beta, err := store.Get(ctx, "k", "beta")
	require.NoError(t, err)
	assert.Equal(t, 2.0, beta["v"])
}

func TestSimpleKVStoreDelete(t *testing.T) {
	store := NewSimpleKVStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", StoredValue{"a": "b"}, ""))

	deleted, err := store.Delete(ctx, "key", "")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "key", "")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSimpleKVStoreGetAll(t *testing.T) {
	store := NewSimpleKVStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a", StoredValue{"n": 1.0}, ""))
	require.NoError(t, store.Put(ctx, "b", StoredValue{"n": 2.0}, ""))

	all, err := store.GetAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSimpleKVStoreIsolation(t *testing.T) {
	store := NewSimpleKVStore()
	ctx := context.Background()

	original := StoredValue{"field": "before"}
	require.NoError(t, store.Put(ctx, "key", original, ""))

	// Mutating the caller's map must not affect stored data.
	original["field"] = "after"

	val, err := store.Get(ctx, "key", "")
	require.NoError(t, err)
	assert.Equal(t, "before", val["field"])
}

func TestSimpleKVStorePersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kvstore.json")

	store := NewSimpleKVStore()
	require.NoError(t, store.Put(ctx, "key", StoredValue{"field": "value"}, "coll"))
	require.NoError(t, store.Persist(ctx, path))

	loaded, err := FromPersistPath(ctx, path)
	require.NoError(t, err)

	val, err := loaded.Get(ctx, "key", "coll")
	require.NoError(t, err)
	assert.Equal(t, "value", val["field"])
}

func TestFromPersistPathMissingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "missing.json")

	store, err := FromPersistPath(ctx, path)
	require.NoError(t, err)

	all, err := store.GetAll(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFromDict(t *testing.T) {
	data := DataType{
		"coll": {"key": StoredValue{"field": "value"}},
	}
	store := FromDict(data)

	val, err := store.Get(context.Background(), "key", "coll")
	require.NoError(t, err)
	assert.Equal(t, "value", val["field"])

	assert.Equal(t, data, store.ToDict())
}
