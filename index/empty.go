package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/aqua777/go-gptindex/llm"
	"github.com/aqua777/go-gptindex/rag/queryengine"
	"github.com/aqua777/go-gptindex/rag/retriever"
	"github.com/aqua777/go-gptindex/rag/synthesizer"
	"github.com/aqua777/go-gptindex/schema"
	"github.com/aqua777/go-gptindex/settings"
	"github.com/aqua777/go-gptindex/storage"
	"github.com/aqua777/go-gptindex/storage/indexstore"
)

// DefaultEmptyIndexSummary is the summary assigned to new empty indexes.
const DefaultEmptyIndexSummary = "empty"

var (
	// ErrInvalidResponseMode is returned when a query engine is requested
	// with a response mode the empty index cannot serve.
	ErrInvalidResponseMode = errors.New("empty index requires response mode to be generation")

	// ErrEmptyIndexImmutable is returned for node mutations. The empty
	// index holds no nodes by definition.
	ErrEmptyIndexImmutable = errors.New("cannot modify nodes of an empty index")
)

// EmptyIndex is an index over nothing. It retrieves no context and answers
// queries from the LLM's internal knowledge alone.
type EmptyIndex struct {
	*BaseIndex
}

// EmptyIndexOption configures EmptyIndex creation.
type EmptyIndexOption func(*emptyIndexConfig)

type emptyIndexConfig struct {
	storageContext *storage.StorageContext
}

// WithEmptyIndexStorageContext sets the storage context.
func WithEmptyIndexStorageContext(sc *storage.StorageContext) EmptyIndexOption {
	return func(c *emptyIndexConfig) {
		c.storageContext = sc
	}
}

// NewEmptyIndex creates a new EmptyIndex and persists its structure.
func NewEmptyIndex(ctx context.Context, opts ...EmptyIndexOption) (*EmptyIndex, error) {
	config := &emptyIndexConfig{}
	for _, opt := range opts {
		opt(config)
	}

	indexStruct := indexstore.NewIndexStruct(indexstore.IndexStructTypeEmpty)
	indexStruct.Summary = DefaultEmptyIndexSummary

	ei := &EmptyIndex{
		BaseIndex: NewBaseIndex(indexStruct, config.storageContext),
	}

	if err := ei.storageContext.IndexStore.AddIndexStruct(ctx, indexStruct); err != nil {
		return nil, fmt.Errorf("failed to persist index struct: %w", err)
	}

	return ei, nil
}

// LoadEmptyIndex loads an EmptyIndex from a storage context. An empty
// indexID resolves to the store's only index struct.
func LoadEmptyIndex(ctx context.Context, sc *storage.StorageContext, indexID string) (*EmptyIndex, error) {
	indexStruct, err := sc.IndexStore.GetIndexStruct(ctx, indexID)
	if err != nil {
		return nil, err
	}

	if indexStruct.Type != indexstore.IndexStructTypeEmpty {
		return nil, fmt.Errorf("index struct %s has type %s, expected %s",
			indexStruct.IndexID, indexStruct.Type, indexstore.IndexStructTypeEmpty)
	}

	return &EmptyIndex{
		BaseIndex: NewBaseIndex(indexStruct, sc),
	}, nil
}

// AsRetriever returns a retriever that always retrieves nothing.
func (ei *EmptyIndex) AsRetriever(opts ...RetrieverOption) retriever.Retriever {
	config := &RetrieverConfig{}
	for _, opt := range opts {
		opt(config)
	}

	return retriever.NewEmptyRetriever(
		retriever.WithEmptyRetrieverCallbackManager(config.CallbackManager),
	)
}

// AsQueryEngine returns a query engine for this index. Only the generation
// response mode is accepted: any other mode would need retrieved context,
// which this index can never supply.
func (ei *EmptyIndex) AsQueryEngine(opts ...QueryEngineOption) (queryengine.QueryEngine, error) {
	config := &QueryEngineConfig{
		ResponseMode: synthesizer.ResponseModeGeneration,
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.ResponseMode != synthesizer.ResponseModeGeneration {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidResponseMode, config.ResponseMode)
	}

	llmModel := config.LLM
	if llmModel == nil {
		llmModel = settings.GetLLM()
	}

	cm := config.CallbackManager
	if cm == nil {
		cm = settings.GetCallbackManager()
	}

	predictor := llm.NewPredictor(llmModel, llm.WithPredictorCallbackManager(cm))

	synthOpts := []synthesizer.GenerationSynthesizerOption{
		synthesizer.WithGenerationStreaming(config.Streaming),
		synthesizer.WithGenerationCallbackManager(cm),
	}
	if config.SimpleTemplate != nil {
		synthOpts = append(synthOpts, synthesizer.WithSimpleTemplate(config.SimpleTemplate))
	}

	return queryengine.NewRetrieverQueryEngine(
		ei.AsRetriever(WithRetrieverCallbackManager(cm)),
		synthesizer.NewGenerationSynthesizer(predictor, synthOpts...),
		queryengine.WithRetrieverQueryEngineCallbackManager(cm),
	), nil
}

// InsertNodes is not supported: the empty index holds no nodes.
func (ei *EmptyIndex) InsertNodes(ctx context.Context, nodes []*schema.Node) error {
	return ErrEmptyIndexImmutable
}

// DeleteNodes is not supported: the empty index holds no nodes.
func (ei *EmptyIndex) DeleteNodes(ctx context.Context, nodeIDs []string) error {
	return ErrEmptyIndexImmutable
}

var _ Index = (*EmptyIndex)(nil)
