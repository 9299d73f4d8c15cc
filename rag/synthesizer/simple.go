package synthesizer

import (
	"context"
	"strings"

	"github.com/aqua777/go-gptindex/llm"
	"github.com/aqua777/go-gptindex/prompts"
	"github.com/aqua777/go-gptindex/schema"
)

// SimpleSynthesizer merges all text chunks and makes a single LLM call.
type SimpleSynthesizer struct {
	*BaseSynthesizer
	// TextQATemplate is the prompt template for QA.
	TextQATemplate prompts.BasePromptTemplate
}

// SimpleSynthesizerOption is a functional option for SimpleSynthesizer.
type SimpleSynthesizerOption func(*SimpleSynthesizer)

// WithTextQATemplate sets the QA template.
func WithTextQATemplate(template prompts.BasePromptTemplate) SimpleSynthesizerOption {
	return func(ss *SimpleSynthesizer) {
		ss.TextQATemplate = template
	}
}

// NewSimpleSynthesizer creates a new SimpleSynthesizer.
func NewSimpleSynthesizer(predictor *llm.Predictor, opts ...SimpleSynthesizerOption) *SimpleSynthesizer {
	ss := &SimpleSynthesizer{
		BaseSynthesizer: NewBaseSynthesizer(predictor),
		TextQATemplate:  prompts.DefaultTextQAPrompt,
	}

	for _, opt := range opts {
		opt(ss)
	}

	ss.SetPrompt("text_qa_template", ss.TextQATemplate)

	return ss
}

// Synthesize generates a response from the query and source nodes.
func (ss *SimpleSynthesizer) Synthesize(ctx context.Context, query string, nodes []schema.NodeWithScore) (*Response, error) {
	if len(nodes) == 0 {
		return NewResponse("Empty Response", nil), nil
	}

	chunks := GetTextChunksFromNodes(nodes, schema.MetadataModeLLM)

	responseStr, err := ss.Predictor.Predict(ctx, ss.TextQATemplate, map[string]string{
		"query_str":   query,
		"context_str": strings.Join(chunks, "\n\n"),
	})
	if err != nil {
		return nil, err
	}

	return ss.PrepareResponseOutput(responseStr, nodes), nil
}

var _ Synthesizer = (*SimpleSynthesizer)(nil)
