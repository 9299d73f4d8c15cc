package synthesizer

import (
	"context"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/llm"
	"github.com/aqua777/go-gptindex/prompts"
	"github.com/aqua777/go-gptindex/schema"
)

// GenerationSynthesizer answers the query directly from the LLM without
// looking at retrieved context. Source nodes passed to Synthesize are never
// inspected; they are only carried through on the returned Response.
type GenerationSynthesizer struct {
	*BaseSynthesizer
	// SimpleTemplate is the prompt template applied to the raw query.
	SimpleTemplate prompts.BasePromptTemplate
}

// GenerationSynthesizerOption is a functional option for GenerationSynthesizer.
type GenerationSynthesizerOption func(*GenerationSynthesizer)

// WithSimpleTemplate sets the prompt template applied to the query.
func WithSimpleTemplate(template prompts.BasePromptTemplate) GenerationSynthesizerOption {
	return func(gs *GenerationSynthesizer) {
		gs.SimpleTemplate = template
	}
}

// WithGenerationStreaming enables streaming LLM calls.
func WithGenerationStreaming(streaming bool) GenerationSynthesizerOption {
	return func(gs *GenerationSynthesizer) {
		gs.Streaming = streaming
	}
}

// WithGenerationCallbackManager sets the callback manager.
func WithGenerationCallbackManager(cm *callbacks.CallbackManager) GenerationSynthesizerOption {
	return func(gs *GenerationSynthesizer) {
		gs.CallbackManager = cm
	}
}

// NewGenerationSynthesizer creates a new GenerationSynthesizer.
func NewGenerationSynthesizer(predictor *llm.Predictor, opts ...GenerationSynthesizerOption) *GenerationSynthesizer {
	gs := &GenerationSynthesizer{
		BaseSynthesizer: NewBaseSynthesizer(predictor),
		SimpleTemplate:  prompts.DefaultSimpleInputPrompt,
	}

	for _, opt := range opts {
		opt(gs)
	}

	gs.SetPrompt("simple_template", gs.SimpleTemplate)

	return gs
}

// Synthesize generates a response for the query. When streaming is enabled
// the underlying LLM call streams, but the stream is drained before
// returning so the caller always receives a complete Response.
func (gs *GenerationSynthesizer) Synthesize(ctx context.Context, query string, nodes []schema.NodeWithScore) (*Response, error) {
	eventID := gs.CallbackManager.OnEventStart(callbacks.CBEventTypeSynthesize, map[string]interface{}{
		string(callbacks.EventPayloadQueryStr): query,
	})

	vars := map[string]string{"query_str": query}

	var responseStr string
	if gs.Streaming {
		stream, err := gs.Predictor.PredictStream(ctx, gs.SimpleTemplate, vars)
		if err != nil {
			gs.CallbackManager.OnEventEnd(callbacks.CBEventTypeSynthesize, map[string]interface{}{
				string(callbacks.EventPayloadException): err,
			}, eventID)
			return nil, err
		}
		responseStr = NewStreamingResponse(stream, nodes).String()
	} else {
		var err error
		responseStr, err = gs.Predictor.Predict(ctx, gs.SimpleTemplate, vars)
		if err != nil {
			gs.CallbackManager.OnEventEnd(callbacks.CBEventTypeSynthesize, map[string]interface{}{
				string(callbacks.EventPayloadException): err,
			}, eventID)
			return nil, err
		}
	}

	response := gs.PrepareResponseOutput(responseStr, nodes)

	gs.CallbackManager.OnEventEnd(callbacks.CBEventTypeSynthesize, map[string]interface{}{
		string(callbacks.EventPayloadResponse): response,
	}, eventID)

	return response, nil
}

var _ Synthesizer = (*GenerationSynthesizer)(nil)
