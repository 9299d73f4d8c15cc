package indexstore

import (
	"context"
	"fmt"

	"github.com/aqua777/go-gptindex/storage/kvstore"
)

const (
	collectionSuffix = "/data"

	typeKey = "__type__"
	dataKey = "__data__"
)

// KVIndexStore is an index store backed by a KVStore.
type KVIndexStore struct {
	kvstore    kvstore.KVStore
	namespace  string
	collection string
}

// KVIndexStoreOption is a functional option for KVIndexStore.
type KVIndexStoreOption func(*KVIndexStore)

// WithIndexStoreNamespace sets the namespace for the index store.
func WithIndexStoreNamespace(namespace string) KVIndexStoreOption {
	return func(s *KVIndexStore) {
		s.namespace = namespace
	}
}

// NewKVIndexStore creates a new KVIndexStore.
func NewKVIndexStore(kv kvstore.KVStore, opts ...KVIndexStoreOption) *KVIndexStore {
	store := &KVIndexStore{
		kvstore:   kv,
		namespace: DefaultNamespace,
	}

	for _, opt := range opts {
		opt(store)
	}

	store.collection = store.namespace + collectionSuffix

	return store
}

// AddIndexStruct adds an index struct to the store.
func (s *KVIndexStore) AddIndexStruct(ctx context.Context, indexStruct *IndexStruct) error {
	val := kvstore.StoredValue{
		typeKey: string(indexStruct.Type),
		dataKey: indexStruct.ToJSON(),
	}
	return s.kvstore.Put(ctx, indexStruct.IndexID, val, s.collection)
}

// DeleteIndexStruct removes an index struct from the store.
func (s *KVIndexStore) DeleteIndexStruct(ctx context.Context, key string) error {
	_, err := s.kvstore.Delete(ctx, key, s.collection)
	return err
}

// GetIndexStruct retrieves an index struct by ID. An empty structID
// resolves to the store's only struct.
func (s *KVIndexStore) GetIndexStruct(ctx context.Context, structID string) (*IndexStruct, error) {
	if structID == "" {
		structs, err := s.IndexStructs(ctx)
		if err != nil {
			return nil, err
		}
		if len(structs) == 0 {
			return nil, ErrIndexStructNotFound
		}
		if len(structs) > 1 {
			return nil, ErrMultipleIndexStructs
		}
		return structs[0], nil
	}

	value, err := s.kvstore.Get(ctx, structID, s.collection)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, ErrIndexStructNotFound
	}

	return storedValueToIndexStruct(value)
}

// IndexStructs returns all index structs in the store.
func (s *KVIndexStore) IndexStructs(ctx context.Context) ([]*IndexStruct, error) {
	values, err := s.kvstore.GetAll(ctx, s.collection)
	if err != nil {
		return nil, err
	}

	structs := make([]*IndexStruct, 0, len(values))
	for _, value := range values {
		is, err := storedValueToIndexStruct(value)
		if err != nil {
			continue
		}
		structs = append(structs, is)
	}

	return structs, nil
}

// GetIndexStructByType retrieves the first index struct of the given type.
func (s *KVIndexStore) GetIndexStructByType(ctx context.Context, structType IndexStructType) (*IndexStruct, error) {
	structs, err := s.IndexStructs(ctx)
	if err != nil {
		return nil, err
	}

	for _, is := range structs {
		if is.Type == structType {
			return is, nil
		}
	}

	return nil, fmt.Errorf("index struct with type %s not found: %w", structType, ErrIndexStructNotFound)
}

func storedValueToIndexStruct(value kvstore.StoredValue) (*IndexStruct, error) {
	if data, ok := value[dataKey].(map[string]interface{}); ok {
		return FromJSON(data)
	}
	return FromJSON(value)
}

var _ IndexStore = (*KVIndexStore)(nil)
