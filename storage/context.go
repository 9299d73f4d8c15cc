// Package storage provides unified storage management.
package storage

import (
	"context"
	"path/filepath"

	"github.com/aqua777/go-gptindex/storage/indexstore"
)

const (
	// DefaultPersistDir is the default directory for persistence.
	DefaultPersistDir = "./storage"
	// IndexStoreFilename is the default filename for the index store.
	IndexStoreFilename = "index_store.json"
)

// StorageContext is a container for storage components. Indexes persist
// their structure through it.
type StorageContext struct {
	// IndexStore stores index structures.
	IndexStore indexstore.IndexStore
}

// StorageContextOption is a functional option for StorageContext.
type StorageContextOption func(*StorageContext)

// WithIndexStore sets a pre-configured index store.
func WithIndexStore(store indexstore.IndexStore) StorageContextOption {
	return func(sc *StorageContext) {
		sc.IndexStore = store
	}
}

// NewStorageContext creates a StorageContext with in-memory defaults.
func NewStorageContext(opts ...StorageContextOption) *StorageContext {
	sc := &StorageContext{}

	for _, opt := range opts {
		opt(sc)
	}

	if sc.IndexStore == nil {
		sc.IndexStore = indexstore.NewSimpleIndexStore()
	}

	return sc
}

// StorageContextFromPersistDir loads a StorageContext from a persist directory.
func StorageContextFromPersistDir(ctx context.Context, persistDir string) (*StorageContext, error) {
	if persistDir == "" {
		persistDir = DefaultPersistDir
	}

	indexStore, err := indexstore.SimpleIndexStoreFromPersistPath(ctx, filepath.Join(persistDir, IndexStoreFilename))
	if err != nil {
		return nil, err
	}

	return &StorageContext{IndexStore: indexStore}, nil
}

// Persist saves all persistable stores to the given directory.
func (sc *StorageContext) Persist(ctx context.Context, persistDir string) error {
	if persistDir == "" {
		persistDir = DefaultPersistDir
	}

	if simple, ok := sc.IndexStore.(*indexstore.SimpleIndexStore); ok {
		return simple.Persist(ctx, filepath.Join(persistDir, IndexStoreFilename))
	}
	return nil
}
