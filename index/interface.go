// Package index provides index abstractions.
package index

import (
	"context"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/llm"
	"github.com/aqua777/go-gptindex/prompts"
	"github.com/aqua777/go-gptindex/rag/queryengine"
	"github.com/aqua777/go-gptindex/rag/retriever"
	"github.com/aqua777/go-gptindex/rag/synthesizer"
	"github.com/aqua777/go-gptindex/schema"
	"github.com/aqua777/go-gptindex/storage"
	"github.com/aqua777/go-gptindex/storage/indexstore"
)

// Index is the base interface for all index types.
type Index interface {
	// IndexID returns the unique identifier for this index.
	IndexID() string

	// IndexStruct returns the underlying index structure.
	IndexStruct() *indexstore.IndexStruct

	// StorageContext returns the storage context.
	StorageContext() *storage.StorageContext

	// AsRetriever returns a retriever for this index.
	AsRetriever(opts ...RetrieverOption) retriever.Retriever

	// AsQueryEngine returns a query engine for this index. Configuration
	// the index cannot honor is rejected here rather than at query time.
	AsQueryEngine(opts ...QueryEngineOption) (queryengine.QueryEngine, error)

	// InsertNodes inserts nodes into the index.
	InsertNodes(ctx context.Context, nodes []*schema.Node) error

	// DeleteNodes removes nodes from the index.
	DeleteNodes(ctx context.Context, nodeIDs []string) error
}

// RetrieverOption configures retriever creation.
type RetrieverOption func(*RetrieverConfig)

// RetrieverConfig holds retriever configuration.
type RetrieverConfig struct {
	CallbackManager *callbacks.CallbackManager
}

// WithRetrieverCallbackManager sets the callback manager for retrieval.
func WithRetrieverCallbackManager(cm *callbacks.CallbackManager) RetrieverOption {
	return func(c *RetrieverConfig) {
		c.CallbackManager = cm
	}
}

// QueryEngineOption configures query engine creation.
type QueryEngineOption func(*QueryEngineConfig)

// QueryEngineConfig holds query engine configuration.
type QueryEngineConfig struct {
	LLM             llm.LLM
	ResponseMode    synthesizer.ResponseMode
	Streaming       bool
	SimpleTemplate  prompts.BasePromptTemplate
	CallbackManager *callbacks.CallbackManager
}

// WithQueryEngineLLM sets the LLM for the query engine.
func WithQueryEngineLLM(l llm.LLM) QueryEngineOption {
	return func(c *QueryEngineConfig) {
		c.LLM = l
	}
}

// WithResponseMode sets the response synthesis mode.
func WithResponseMode(mode synthesizer.ResponseMode) QueryEngineOption {
	return func(c *QueryEngineConfig) {
		c.ResponseMode = mode
	}
}

// WithQueryEngineStreaming enables streaming LLM calls during synthesis.
func WithQueryEngineStreaming(streaming bool) QueryEngineOption {
	return func(c *QueryEngineConfig) {
		c.Streaming = streaming
	}
}

// WithSimpleInputTemplate sets the template applied to the raw query.
func WithSimpleInputTemplate(template prompts.BasePromptTemplate) QueryEngineOption {
	return func(c *QueryEngineConfig) {
		c.SimpleTemplate = template
	}
}

// WithQueryEngineCallbackManager sets the callback manager.
func WithQueryEngineCallbackManager(cm *callbacks.CallbackManager) QueryEngineOption {
	return func(c *QueryEngineConfig) {
		c.CallbackManager = cm
	}
}

// BaseIndex provides common functionality for all index types.
type BaseIndex struct {
	// indexStruct is the underlying index structure.
	indexStruct *indexstore.IndexStruct
	// storageContext manages storage components.
	storageContext *storage.StorageContext
	// PromptMixin for prompt management.
	*prompts.BasePromptMixin
}

// NewBaseIndex creates a new BaseIndex.
func NewBaseIndex(indexStruct *indexstore.IndexStruct, sc *storage.StorageContext) *BaseIndex {
	if sc == nil {
		sc = storage.NewStorageContext()
	}
	return &BaseIndex{
		indexStruct:     indexStruct,
		storageContext:  sc,
		BasePromptMixin: prompts.NewBasePromptMixin(),
	}
}

// IndexID returns the unique identifier for this index.
func (bi *BaseIndex) IndexID() string {
	return bi.indexStruct.IndexID
}

// IndexStruct returns the underlying index structure.
func (bi *BaseIndex) IndexStruct() *indexstore.IndexStruct {
	return bi.indexStruct
}

// StorageContext returns the storage context.
func (bi *BaseIndex) StorageContext() *storage.StorageContext {
	return bi.storageContext
}

// Summary returns the index summary.
func (bi *BaseIndex) Summary() string {
	return bi.indexStruct.Summary
}

// SetSummary sets the index summary and persists the updated struct.
func (bi *BaseIndex) SetSummary(ctx context.Context, summary string) error {
	bi.indexStruct.Summary = summary
	return bi.storageContext.IndexStore.AddIndexStruct(ctx, bi.indexStruct)
}
