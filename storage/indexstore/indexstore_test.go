package indexstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexStructRoundTrip(t *testing.T) {
	is := NewIndexStruct(IndexStructTypeEmpty)
	is.Summary = "an empty index"

	parsed, err := FromJSON(is.ToJSON())
	require.NoError(t, err)

	assert.Equal(t, is.IndexID, parsed.IndexID)
	assert.Equal(t, IndexStructTypeEmpty, parsed.Type)
	assert.Equal(t, "an empty index", parsed.Summary)
}

func TestIndexStructGetSummary(t *testing.T) {
	is := NewIndexStruct(IndexStructTypeList)

	_, err := is.GetSummary()
	assert.ErrorIs(t, err, ErrSummaryNotSet)

	is.Summary = "summary"
	summary, err := is.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, "summary", summary)
}

func TestSimpleIndexStoreAddGet(t *testing.T) {
	store := NewSimpleIndexStore()
	ctx := context.Background()

	is := NewIndexStruct(IndexStructTypeEmpty)
	require.NoError(t, store.AddIndexStruct(ctx, is))

	got, err := store.GetIndexStruct(ctx, is.IndexID)
	require.NoError(t, err)
	assert.Equal(t, is.IndexID, got.IndexID)
	assert.Equal(t, IndexStructTypeEmpty, got.Type)
}

func TestGetIndexStructEmptyID(t *testing.T) {
	store := NewSimpleIndexStore()
	ctx := context.Background()

	// No structs stored yet.
	_, err := store.GetIndexStruct(ctx, "")
	assert.ErrorIs(t, err, ErrIndexStructNotFound)

	first := NewIndexStruct(IndexStructTypeEmpty)
	require.NoError(t, store.AddIndexStruct(ctx, first))

	// A single struct resolves without an ID.
	got, err := store.GetIndexStruct(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, first.IndexID, got.IndexID)

	// A second struct makes the empty ID ambiguous.
	require.NoError(t, store.AddIndexStruct(ctx, NewIndexStruct(IndexStructTypeList)))
	_, err = store.GetIndexStruct(ctx, "")
	assert.ErrorIs(t, err, ErrMultipleIndexStructs)
}

func TestDeleteIndexStruct(t *testing.T) {
	store := NewSimpleIndexStore()
	ctx := context.Background()

	is := NewIndexStruct(IndexStructTypeEmpty)
	require.NoError(t, store.AddIndexStruct(ctx, is))
	require.NoError(t, store.DeleteIndexStruct(ctx, is.IndexID))

	_, err := store.GetIndexStruct(ctx, is.IndexID)
	assert.ErrorIs(t, err, ErrIndexStructNotFound)
}

func TestGetIndexStructByType(t *testing.T) {
	store := NewSimpleIndexStore()
	ctx := context.Background()

	empty := NewIndexStruct(IndexStructTypeEmpty)
	require.NoError(t, store.AddIndexStruct(ctx, empty))

	got, err := store.GetIndexStructByType(ctx, IndexStructTypeEmpty)
	require.NoError(t, err)
	assert.Equal(t, empty.IndexID, got.IndexID)

	_, err = store.GetIndexStructByType(ctx, IndexStructTypeTree)
	assert.ErrorIs(t, err, ErrIndexStructNotFound)
}

func TestSimpleIndexStorePersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index_store.json")

	store := NewSimpleIndexStore()
	is := NewIndexStruct(IndexStructTypeEmpty)
	require.NoError(t, store.AddIndexStruct(ctx, is))
	require.NoError(t, store.Persist(ctx, path))

	loaded, err := SimpleIndexStoreFromPersistPath(ctx, path)
	require.NoError(t, err)

	got, err := loaded.GetIndexStruct(ctx, is.IndexID)
	require.NoError(t, err)
	assert.Equal(t, is.IndexID, got.IndexID)
	assert.Equal(t, IndexStructTypeEmpty, got.Type)
}
