package synthesizer

import (
	"context"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/llm"
	"github.com/aqua777/go-gptindex/prompts"
	"github.com/aqua777/go-gptindex/schema"
)

// Synthesizer is the interface for response synthesizers.
type Synthesizer interface {
	// Synthesize generates a response from the query and source nodes.
	Synthesize(ctx context.Context, query string, nodes []schema.NodeWithScore) (*Response, error)
}

// BaseSynthesizer provides common functionality for synthesizers.
type BaseSynthesizer struct {
	// Predictor wraps the LLM with prompt formatting and token accounting.
	Predictor *llm.Predictor
	// Streaming enables streaming LLM calls.
	Streaming bool
	// Verbose enables verbose logging.
	Verbose bool
	// CallbackManager receives synthesis events. May be nil.
	CallbackManager *callbacks.CallbackManager
	// PromptMixin for prompt management.
	*prompts.BasePromptMixin
}

// NewBaseSynthesizer creates a new BaseSynthesizer.
func NewBaseSynthesizer(predictor *llm.Predictor) *BaseSynthesizer {
	return &BaseSynthesizer{
		Predictor:       predictor,
		BasePromptMixin: prompts.NewBasePromptMixin(),
	}
}

// GetMetadataForResponse extracts metadata from nodes.
func (bs *BaseSynthesizer) GetMetadataForResponse(nodes []schema.NodeWithScore) map[string]interface{} {
	metadata := make(map[string]interface{})
	for _, node := range nodes {
		metadata[node.Node.ID] = node.Node.Metadata
	}
	return metadata
}

// PrepareResponseOutput creates a Response from response text and source nodes.
func (bs *BaseSynthesizer) PrepareResponseOutput(responseStr string, sourceNodes []schema.NodeWithScore) *Response {
	return &Response{
		Response:    responseStr,
		SourceNodes: sourceNodes,
		Metadata:    bs.GetMetadataForResponse(sourceNodes),
	}
}

// GetTextChunksFromNodes extracts text content from nodes.
func GetTextChunksFromNodes(nodes []schema.NodeWithScore, mode schema.MetadataMode) []string {
	chunks := make([]string, len(nodes))
	for i, node := range nodes {
		chunks[i] = node.Node.GetContent(mode)
	}
	return chunks
}
