// Package retriever provides node retrieval implementations.
package retriever

import (
	"context"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/schema"
)

// Retriever is the interface for retrieving nodes for a query.
type Retriever interface {
	// Retrieve returns nodes relevant to the query bundle.
	Retrieve(ctx context.Context, query schema.QueryBundle) ([]schema.NodeWithScore, error)
}

// BaseRetriever provides common functionality for retrievers.
type BaseRetriever struct {
	// Verbose enables verbose logging.
	Verbose bool
	// CallbackManager receives retrieve events. May be nil.
	CallbackManager *callbacks.CallbackManager
}

// NewBaseRetriever creates a new BaseRetriever.
func NewBaseRetriever() *BaseRetriever {
	return &BaseRetriever{}
}
