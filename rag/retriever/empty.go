package retriever

import (
	"context"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/schema"
)

// EmptyRetriever retrieves nothing. It backs indexes that hold no nodes,
// where answers come from the LLM alone.
type EmptyRetriever struct {
	*BaseRetriever
}

// EmptyRetrieverOption is a functional option for EmptyRetriever.
type EmptyRetrieverOption func(*EmptyRetriever)

// WithEmptyRetrieverCallbackManager sets the callback manager.
func WithEmptyRetrieverCallbackManager(cm *callbacks.CallbackManager) EmptyRetrieverOption {
	return func(er *EmptyRetriever) {
		er.CallbackManager = cm
	}
}

// NewEmptyRetriever creates a new EmptyRetriever.
func NewEmptyRetriever(opts ...EmptyRetrieverOption) *EmptyRetriever {
	er := &EmptyRetriever{
		BaseRetriever: NewBaseRetriever(),
	}

	for _, opt := range opts {
		opt(er)
	}

	return er
}

// Retrieve always returns an empty node list and never fails.
func (er *EmptyRetriever) Retrieve(ctx context.Context, query schema.QueryBundle) ([]schema.NodeWithScore, error) {
	eventID := er.CallbackManager.OnEventStart(callbacks.CBEventTypeRetrieve, map[string]interface{}{
		string(callbacks.EventPayloadQueryStr): query.QueryString,
	})

	nodes := []schema.NodeWithScore{}

	er.CallbackManager.OnEventEnd(callbacks.CBEventTypeRetrieve, map[string]interface{}{
		string(callbacks.EventPayloadNodes): nodes,
	}, eventID)

	return nodes, nil
}

var _ Retriever = (*EmptyRetriever)(nil)
