// Package indexstore provides index structure persistence.
package indexstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// DefaultNamespace is the default namespace for index stores.
const DefaultNamespace = "index_store"

// IndexStructType represents the type of index structure.
type IndexStructType string

const (
	// IndexStructTypeTree represents a tree-structured index.
	IndexStructTypeTree IndexStructType = "tree"
	// IndexStructTypeList represents a list index.
	IndexStructTypeList IndexStructType = "list"
	// IndexStructTypeKeywordTable represents a keyword table index.
	IndexStructTypeKeywordTable IndexStructType = "keyword_table"
	// IndexStructTypeVectorStore represents a vector store index.
	IndexStructTypeVectorStore IndexStructType = "vector_store"
	// IndexStructTypeEmpty represents an empty index.
	IndexStructTypeEmpty IndexStructType = "empty"
)

// IndexStruct is the persisted descriptor of an index. An index with no
// node bookkeeping, like the empty index, stores only its identity here.
type IndexStruct struct {
	IndexID string          `json:"index_id"`
	Summary string          `json:"summary,omitempty"`
	Type    IndexStructType `json:"type"`
}

// NewIndexStruct creates a new IndexStruct with a generated ID.
func NewIndexStruct(structType IndexStructType) *IndexStruct {
	return &IndexStruct{
		IndexID: uuid.New().String(),
		Type:    structType,
	}
}

// GetType returns the index struct type.
func (is *IndexStruct) GetType() IndexStructType {
	return is.Type
}

// GetSummary returns the summary, or an error if not set.
func (is *IndexStruct) GetSummary() (string, error) {
	if is.Summary == "" {
		return "", ErrSummaryNotSet
	}
	return is.Summary, nil
}

// ToJSON converts the index struct to a JSON map.
func (is *IndexStruct) ToJSON() map[string]interface{} {
	result := map[string]interface{}{
		"index_id": is.IndexID,
		"type":     string(is.Type),
	}
	if is.Summary != "" {
		result["summary"] = is.Summary
	}
	return result
}

// FromJSON creates an IndexStruct from a JSON map.
func FromJSON(data map[string]interface{}) (*IndexStruct, error) {
	is := &IndexStruct{}

	if indexID, ok := data["index_id"].(string); ok {
		is.IndexID = indexID
	}
	if summary, ok := data["summary"].(string); ok {
		is.Summary = summary
	}
	if structType, ok := data["type"].(string); ok {
		is.Type = IndexStructType(structType)
	}

	if is.IndexID == "" {
		return nil, ErrIndexStructNotFound
	}

	return is, nil
}

// IndexStore is the interface for index stores.
type IndexStore interface {
	// IndexStructs returns all index structs in the store.
	IndexStructs(ctx context.Context) ([]*IndexStruct, error)

	// AddIndexStruct adds an index struct to the store.
	AddIndexStruct(ctx context.Context, indexStruct *IndexStruct) error

	// DeleteIndexStruct removes an index struct from the store.
	DeleteIndexStruct(ctx context.Context, key string) error

	// GetIndexStruct retrieves an index struct by ID.
	// If structID is empty, returns the only index struct (errors if multiple exist).
	GetIndexStruct(ctx context.Context, structID string) (*IndexStruct, error)
}

var (
	// ErrSummaryNotSet is returned when an index struct has no summary.
	ErrSummaryNotSet = errors.New("summary field not set")
	// ErrMultipleIndexStructs is returned when an ID is required to disambiguate.
	ErrMultipleIndexStructs = errors.New("multiple index structs found, specify struct_id")
	// ErrIndexStructNotFound is returned when no matching index struct exists.
	ErrIndexStructNotFound = errors.New("index struct not found")
)
