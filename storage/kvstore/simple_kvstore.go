package kvstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// DataType maps collection names to their key-value pairs.
type DataType map[string]map[string]StoredValue

// SimpleKVStore is a thread-safe in-memory key-value store. When loaded
// from a persist path it writes through to disk on every mutation.
type SimpleKVStore struct {
	mu          sync.RWMutex
	data        DataType
	persistPath string
}

// NewSimpleKVStore creates a new SimpleKVStore.
func NewSimpleKVStore() *SimpleKVStore {
	return &SimpleKVStore{
		data: make(DataType),
	}
}

// FromDict creates a SimpleKVStore from a data dictionary.
func FromDict(data DataType) *SimpleKVStore {
	store := NewSimpleKVStore()
	for collection, pairs := range data {
		store.data[collection] = make(map[string]StoredValue, len(pairs))
		for k, v := range pairs {
			store.data[collection][k] = copyStoredValue(v)
		}
	}
	return store
}

// FromPersistPath loads a SimpleKVStore from a persist path. A missing
// file yields an empty store bound to that path.
func FromPersistPath(ctx context.Context, persistPath string) (*SimpleKVStore, error) {
	if err := os.MkdirAll(filepath.Dir(persistPath), 0755); err != nil {
		return nil, err
	}

	store := NewSimpleKVStore()
	store.persistPath = persistPath

	raw, err := os.ReadFile(persistPath)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &store.data); err != nil {
		return nil, err
	}

	return store, nil
}

// Put stores a key-value pair in the specified collection.
func (s *SimpleKVStore) Put(ctx context.Context, key string, val StoredValue, collection string) error {
	if collection == "" {
		collection = DefaultCollection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[collection]; !exists {
		s.data[collection] = make(map[string]StoredValue)
	}
	s.data[collection][key] = copyStoredValue(val)

	if s.persistPath != "" {
		return s.persistLocked(s.persistPath)
	}
	return nil
}

// Get retrieves a value by key. Returns nil for missing keys.
func (s *SimpleKVStore) Get(ctx context.Context, key string, collection string) (StoredValue, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	val, exists := s.data[collection][key]
	if !exists {
		return nil, nil
	}

	return copyStoredValue(val), nil
}

// GetAll retrieves all key-value pairs from the specified collection.
func (s *SimpleKVStore) GetAll(ctx context.Context, collection string) (map[string]StoredValue, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]StoredValue, len(s.data[collection]))
	for k, v := range s.data[collection] {
		result[k] = copyStoredValue(v)
	}
	return result, nil
}

// Delete removes a key-value pair. Returns true if the key existed.
func (s *SimpleKVStore) Delete(ctx context.Context, key string, collection string) (bool, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collectionData, exists := s.data[collection]
	if !exists {
		return false, nil
	}
	if _, exists := collectionData[key]; !exists {
		return false, nil
	}

	delete(collectionData, key)

	if s.persistPath != "" {
		if err := s.persistLocked(s.persistPath); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Persist saves the store to the specified path.
func (s *SimpleKVStore) Persist(ctx context.Context, persistPath string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistLocked(persistPath)
}

// persistLocked writes the data to disk. Caller must hold the lock.
func (s *SimpleKVStore) persistLocked(persistPath string) error {
	if err := os.MkdirAll(filepath.Dir(persistPath), 0755); err != nil {
		return err
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}

	return os.WriteFile(persistPath, raw, 0644)
}

// ToDict returns a deep copy of the internal data.
func (s *SimpleKVStore) ToDict() DataType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(DataType, len(s.data))
	for collection, pairs := range s.data {
		result[collection] = make(map[string]StoredValue, len(pairs))
		for k, v := range pairs {
			result[collection][k] = copyStoredValue(v)
		}
	}
	return result
}

// copyStoredValue deep-copies a StoredValue through a JSON round trip so
// callers cannot mutate stored data through shared references.
func copyStoredValue(val StoredValue) StoredValue {
	if val == nil {
		return nil
	}

	raw, err := json.Marshal(val)
	if err == nil {
		var result StoredValue
		if err := json.Unmarshal(raw, &result); err == nil {
			return result
		}
	}

	result := make(StoredValue, len(val))
	for k, v := range val {
		result[k] = v
	}
	return result
}

var (
	_ KVStore            = (*SimpleKVStore)(nil)
	_ PersistableKVStore = (*SimpleKVStore)(nil)
)
