package queryengine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/llm"
	"github.com/aqua777/go-gptindex/rag/retriever"
	"github.com/aqua777/go-gptindex/rag/synthesizer"
	"github.com/aqua777/go-gptindex/schema"
)

// failingRetriever always returns an error.
type failingRetriever struct {
	err error
}

func (r failingRetriever) Retrieve(ctx context.Context, query schema.QueryBundle) ([]schema.NodeWithScore, error) {
	return nil, r.err
}

func TestRetrieverQueryEngineQuery(t *testing.T) {
	mock := llm.NewMockLLM("direct answer")
	engine := NewRetrieverQueryEngine(
		retriever.NewEmptyRetriever(),
		synthesizer.NewGenerationSynthesizer(llm.NewPredictor(mock)),
	)

	response, err := engine.Query(context.Background(), "What is Go?")
	require.NoError(t, err)

	assert.Equal(t, "direct answer", response.Response)
	assert.Empty(t, response.SourceNodes)
	assert.Equal(t, "What is Go?", mock.LastPrompt())
}

func TestRetrieverQueryEngineRetrieveError(t *testing.T) {
	retrieveErr := errors.New("retrieval failed")
	engine := NewRetrieverQueryEngine(
		failingRetriever{err: retrieveErr},
		synthesizer.NewGenerationSynthesizer(llm.NewPredictor(llm.NewMockLLM("unused"))),
	)

	_, err := engine.Query(context.Background(), "query")
	require.Error(t, err)
	assert.ErrorIs(t, err, retrieveErr)
}

func TestRetrieverQueryEngineSynthesizeError(t *testing.T) {
	synthErr := errors.New("completion failed")
	engine := NewRetrieverQueryEngine(
		retriever.NewEmptyRetriever(),
		synthesizer.NewGenerationSynthesizer(llm.NewPredictor(llm.NewMockLLMWithError(synthErr))),
	)

	_, err := engine.Query(context.Background(), "query")
	require.Error(t, err)
	assert.ErrorIs(t, err, synthErr)
}

func TestRetrieverQueryEngineTraceIntactAfterFailedQuery(t *testing.T) {
	cm := callbacks.NewCallbackManager()
	engine := NewRetrieverQueryEngine(
		retriever.NewEmptyRetriever(),
		synthesizer.NewGenerationSynthesizer(
			llm.NewPredictor(llm.NewMockLLMWithError(errors.New("completion failed"))),
			synthesizer.WithGenerationCallbackManager(cm),
		),
		WithRetrieverQueryEngineCallbackManager(cm),
	)

	_, err := engine.Query(context.Background(), "first")
	require.Error(t, err)

	// A failed query must unwind its trace frames: the next top-level
	// event is parented under the root trace, not the dead query.
	nextID := cm.OnEventStart(callbacks.CBEventTypeQuery, nil)
	cm.OnEventEnd(callbacks.CBEventTypeQuery, nil, nextID)

	assert.Contains(t, cm.TraceMap()[callbacks.BaseTraceEvent], nextID)
}

func TestRetrieverQueryEngineEmitsQueryEvents(t *testing.T) {
	collector := callbacks.NewCollectingHandler()
	cm := callbacks.NewCallbackManager()
	cm.AddHandler(collector)

	engine := NewRetrieverQueryEngine(
		retriever.NewEmptyRetriever(),
		synthesizer.NewGenerationSynthesizer(llm.NewPredictor(llm.NewMockLLM("ok"))),
		WithRetrieverQueryEngineCallbackManager(cm),
	)

	_, err := engine.Query(context.Background(), "q")
	require.NoError(t, err)

	events := collector.EventsOfType(callbacks.CBEventTypeQuery)
	require.Len(t, events, 2)
	assert.Equal(t, "q", events[0].Payload[string(callbacks.EventPayloadQueryStr)])
}
