// Package queryengine provides query engine implementations.
package queryengine

import (
	"context"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/prompts"
	"github.com/aqua777/go-gptindex/rag/retriever"
	"github.com/aqua777/go-gptindex/rag/synthesizer"
	"github.com/aqua777/go-gptindex/schema"
)

// QueryEngine is the interface for query engines.
type QueryEngine interface {
	// Query executes a query and returns a response.
	Query(ctx context.Context, query string) (*synthesizer.Response, error)
}

// QueryEngineWithRetrieval extends QueryEngine with separate retrieve/synthesize.
type QueryEngineWithRetrieval interface {
	QueryEngine
	// Retrieve retrieves nodes for a query.
	Retrieve(ctx context.Context, query schema.QueryBundle) ([]schema.NodeWithScore, error)
	// Synthesize synthesizes a response from nodes.
	Synthesize(ctx context.Context, query string, nodes []schema.NodeWithScore) (*synthesizer.Response, error)
}

// BaseQueryEngine provides common functionality for query engines.
type BaseQueryEngine struct {
	// Verbose enables verbose logging.
	Verbose bool
	// CallbackManager receives query events. May be nil.
	CallbackManager *callbacks.CallbackManager
	// PromptMixin for prompt management.
	*prompts.BasePromptMixin
}

// NewBaseQueryEngine creates a new BaseQueryEngine.
func NewBaseQueryEngine() *BaseQueryEngine {
	return &BaseQueryEngine{
		BasePromptMixin: prompts.NewBasePromptMixin(),
	}
}

// RetrieverQueryEngine combines a retriever and synthesizer.
type RetrieverQueryEngine struct {
	*BaseQueryEngine
	// Retriever retrieves relevant nodes.
	Retriever retriever.Retriever
	// Synthesizer generates responses from nodes.
	Synthesizer synthesizer.Synthesizer
}

// RetrieverQueryEngineOption is a functional option.
type RetrieverQueryEngineOption func(*RetrieverQueryEngine)

// WithRetrieverQueryEngineVerbose enables verbose logging.
func WithRetrieverQueryEngineVerbose(verbose bool) RetrieverQueryEngineOption {
	return func(rqe *RetrieverQueryEngine) {
		rqe.Verbose = verbose
	}
}

// WithRetrieverQueryEngineCallbackManager sets the callback manager.
func WithRetrieverQueryEngineCallbackManager(cm *callbacks.CallbackManager) RetrieverQueryEngineOption {
	return func(rqe *RetrieverQueryEngine) {
		rqe.CallbackManager = cm
	}
}

// NewRetrieverQueryEngine creates a new RetrieverQueryEngine.
func NewRetrieverQueryEngine(
	ret retriever.Retriever,
	synth synthesizer.Synthesizer,
	opts ...RetrieverQueryEngineOption,
) *RetrieverQueryEngine {
	rqe := &RetrieverQueryEngine{
		BaseQueryEngine: NewBaseQueryEngine(),
		Retriever:       ret,
		Synthesizer:     synth,
	}

	for _, opt := range opts {
		opt(rqe)
	}

	return rqe
}

// Query executes a query: retrieve first, then synthesize over the result.
func (rqe *RetrieverQueryEngine) Query(ctx context.Context, query string) (*synthesizer.Response, error) {
	eventID := rqe.CallbackManager.OnEventStart(callbacks.CBEventTypeQuery, map[string]interface{}{
		string(callbacks.EventPayloadQueryStr): query,
	})

	nodes, err := rqe.Retrieve(ctx, schema.QueryBundle{QueryString: query})
	if err != nil {
		rqe.CallbackManager.OnEventEnd(callbacks.CBEventTypeQuery, map[string]interface{}{
			string(callbacks.EventPayloadException): err,
		}, eventID)
		return nil, err
	}

	response, err := rqe.Synthesize(ctx, query, nodes)
	if err != nil {
		rqe.CallbackManager.OnEventEnd(callbacks.CBEventTypeQuery, map[string]interface{}{
			string(callbacks.EventPayloadException): err,
		}, eventID)
		return nil, err
	}

	rqe.CallbackManager.OnEventEnd(callbacks.CBEventTypeQuery, map[string]interface{}{
		string(callbacks.EventPayloadResponse): response,
	}, eventID)

	return response, nil
}

// Retrieve retrieves nodes for a query.
func (rqe *RetrieverQueryEngine) Retrieve(ctx context.Context, query schema.QueryBundle) ([]schema.NodeWithScore, error) {
	return rqe.Retriever.Retrieve(ctx, query)
}

// Synthesize synthesizes a response from nodes.
func (rqe *RetrieverQueryEngine) Synthesize(ctx context.Context, query string, nodes []schema.NodeWithScore) (*synthesizer.Response, error) {
	return rqe.Synthesizer.Synthesize(ctx, query, nodes)
}

var _ QueryEngine = (*RetrieverQueryEngine)(nil)
var _ QueryEngineWithRetrieval = (*RetrieverQueryEngine)(nil)
