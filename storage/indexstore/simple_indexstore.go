package indexstore

import (
	"context"
	"path/filepath"

	"github.com/aqua777/go-gptindex/storage/kvstore"
)

const (
	// DefaultPersistDir is the default directory for persistence.
	DefaultPersistDir = "./storage"
	// DefaultPersistFilename is the default filename for persistence.
	DefaultPersistFilename = "index_store.json"
)

// SimpleIndexStore is an in-memory index store with optional persistence.
// It wraps a KVIndexStore backed by a SimpleKVStore.
type SimpleIndexStore struct {
	*KVIndexStore
	kvstore *kvstore.SimpleKVStore
}

// SimpleIndexStoreOption is a functional option for SimpleIndexStore.
type SimpleIndexStoreOption func(*SimpleIndexStore)

// WithSimpleIndexStoreNamespace sets the namespace for the index store.
func WithSimpleIndexStoreNamespace(namespace string) SimpleIndexStoreOption {
	return func(s *SimpleIndexStore) {
		s.KVIndexStore = NewKVIndexStore(s.kvstore, WithIndexStoreNamespace(namespace))
	}
}

// NewSimpleIndexStore creates a new SimpleIndexStore.
func NewSimpleIndexStore(opts ...SimpleIndexStoreOption) *SimpleIndexStore {
	kv := kvstore.NewSimpleKVStore()
	store := &SimpleIndexStore{
		kvstore:      kv,
		KVIndexStore: NewKVIndexStore(kv),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Persist saves the index store to disk.
func (s *SimpleIndexStore) Persist(ctx context.Context, persistPath string) error {
	if persistPath == "" {
		persistPath = filepath.Join(DefaultPersistDir, DefaultPersistFilename)
	}
	return s.kvstore.Persist(ctx, persistPath)
}

// SimpleIndexStoreFromPersistPath loads a SimpleIndexStore from a persist path.
func SimpleIndexStoreFromPersistPath(ctx context.Context, persistPath string) (*SimpleIndexStore, error) {
	if persistPath == "" {
		persistPath = filepath.Join(DefaultPersistDir, DefaultPersistFilename)
	}

	kv, err := kvstore.FromPersistPath(ctx, persistPath)
	if err != nil {
		return nil, err
	}

	return &SimpleIndexStore{
		kvstore:      kv,
		KVIndexStore: NewKVIndexStore(kv),
	}, nil
}

// ToDict returns a copy of the internal data.
func (s *SimpleIndexStore) ToDict() kvstore.DataType {
	return s.kvstore.ToDict()
}

// SimpleIndexStoreFromDict creates a SimpleIndexStore from a data dictionary.
func SimpleIndexStoreFromDict(data kvstore.DataType) *SimpleIndexStore {
	kv := kvstore.FromDict(data)
	return &SimpleIndexStore{
		kvstore:      kv,
		KVIndexStore: NewKVIndexStore(kv),
	}
}

var _ IndexStore = (*SimpleIndexStore)(nil)
