package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqua777/go-gptindex/llm"
	"github.com/aqua777/go-gptindex/prompts"
	"github.com/aqua777/go-gptindex/rag/synthesizer"
	"github.com/aqua777/go-gptindex/schema"
	"github.com/aqua777/go-gptindex/storage"
	"github.com/aqua777/go-gptindex/storage/indexstore"
)

func TestNewEmptyIndexPersistsStruct(t *testing.T) {
	ctx := context.Background()
	sc := storage.NewStorageContext()

	ei, err := NewEmptyIndex(ctx, WithEmptyIndexStorageContext(sc))
	require.NoError(t, err)

	stored, err := sc.IndexStore.GetIndexStruct(ctx, ei.IndexID())
	require.NoError(t, err)
	assert.Equal(t, indexstore.IndexStructTypeEmpty, stored.Type)
	assert.Equal(t, DefaultEmptyIndexSummary, stored.Summary)
}

func TestLoadEmptyIndex(t *testing.T) {
	ctx := context.Background()
	sc := storage.NewStorageContext()

	created, err := NewEmptyIndex(ctx, WithEmptyIndexStorageContext(sc))
	require.NoError(t, err)

	loaded, err := LoadEmptyIndex(ctx, sc, "")
	require.NoError(t, err)
	assert.Equal(t, created.IndexID(), loaded.IndexID())
}

func TestLoadEmptyIndexWrongType(t *testing.T) {
	ctx := context.Background()
	sc := storage.NewStorageContext()

	other := indexstore.NewIndexStruct(indexstore.IndexStructTypeList)
	require.NoError(t, sc.IndexStore.AddIndexStruct(ctx, other))

	_, err := LoadEmptyIndex(ctx, sc, other.IndexID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected empty")
}

func TestEmptyIndexAsRetriever(t *testing.T) {
	ctx := context.Background()
	ei, err := NewEmptyIndex(ctx)
	require.NoError(t, err)

	nodes, err := ei.AsRetriever().Retrieve(ctx, schema.QueryBundle{QueryString: "anything"})
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestEmptyIndexAsQueryEngine(t *testing.T) {
	ctx := context.Background()
	ei, err := NewEmptyIndex(ctx)
	require.NoError(t, err)

	mock := llm.NewMockLLM("the answer")
	engine, err := ei.AsQueryEngine(WithQueryEngineLLM(mock))
	require.NoError(t, err)

	response, err := engine.Query(ctx, "What is Go?")
	require.NoError(t, err)

	assert.Equal(t, "the answer", response.Response)
	assert.Empty(t, response.SourceNodes)
	assert.Equal(t, 1, mock.CompleteCalls())
	assert.Equal(t, "What is Go?", mock.LastPrompt())
}

func TestEmptyIndexAsQueryEngineRejectsOtherModes(t *testing.T) {
	ctx := context.Background()
	ei, err := NewEmptyIndex(ctx)
	require.NoError(t, err)

	rejected := []synthesizer.ResponseMode{
		synthesizer.ResponseModeRefine,
		synthesizer.ResponseModeCompact,
		synthesizer.ResponseModeSimpleSummarize,
		synthesizer.ResponseModeTreeSummarize,
		synthesizer.ResponseModeNoText,
		synthesizer.ResponseModeAccumulate,
	}

	for _, mode := range rejected {
		_, err := ei.AsQueryEngine(
			WithQueryEngineLLM(llm.NewMockLLM("unused")),
			WithResponseMode(mode),
		)
		require.Error(t, err, "mode %s should be rejected", mode)
		assert.ErrorIs(t, err, ErrInvalidResponseMode)
	}
}

func TestEmptyIndexAsQueryEngineDefaultsToGeneration(t *testing.T) {
	ctx := context.Background()
	ei, err := NewEmptyIndex(ctx)
	require.NoError(t, err)

	// No response mode given defaults to generation.
	_, err = ei.AsQueryEngine(WithQueryEngineLLM(llm.NewMockLLM("ok")))
	require.NoError(t, err)

	// Generation given explicitly is accepted too.
	_, err = ei.AsQueryEngine(
		WithQueryEngineLLM(llm.NewMockLLM("ok")),
		WithResponseMode(synthesizer.ResponseModeGeneration),
	)
	require.NoError(t, err)
}

func TestEmptyIndexQueryEngineStreaming(t *testing.T) {
	ctx := context.Background()
	ei, err := NewEmptyIndex(ctx)
	require.NoError(t, err)

	mock := llm.NewMockLLM("")
	mock.StreamTokens = []string{"str", "eamed"}

	engine, err := ei.AsQueryEngine(
		WithQueryEngineLLM(mock),
		WithQueryEngineStreaming(true),
	)
	require.NoError(t, err)

	response, err := engine.Query(ctx, "q")
	require.NoError(t, err)

	assert.Equal(t, "streamed", response.Response)
	assert.Equal(t, 1, mock.StreamCalls())
	assert.Equal(t, 0, mock.CompleteCalls())
}

func TestEmptyIndexQueryEngineCustomTemplate(t *testing.T) {
	ctx := context.Background()
	ei, err := NewEmptyIndex(ctx)
	require.NoError(t, err)

	mock := llm.NewMockLLM("ok")
	template := prompts.NewPromptTemplate("Answer briefly: {query_str}", prompts.PromptTypeSimpleInput)

	engine, err := ei.AsQueryEngine(
		WithQueryEngineLLM(mock),
		WithSimpleInputTemplate(template),
	)
	require.NoError(t, err)

	_, err = engine.Query(ctx, "why?")
	require.NoError(t, err)
	assert.Equal(t, "Answer briefly: why?", mock.LastPrompt())
}

func TestEmptyIndexRejectsNodeMutations(t *testing.T) {
	ctx := context.Background()
	ei, err := NewEmptyIndex(ctx)
	require.NoError(t, err)

	err = ei.InsertNodes(ctx, []*schema.Node{schema.NewTextNode("text")})
	assert.ErrorIs(t, err, ErrEmptyIndexImmutable)

	err = ei.DeleteNodes(ctx, []string{"id"})
	assert.ErrorIs(t, err, ErrEmptyIndexImmutable)
}

func TestEmptyIndexSetSummary(t *testing.T) {
	ctx := context.Background()
	sc := storage.NewStorageContext()

	ei, err := NewEmptyIndex(ctx, WithEmptyIndexStorageContext(sc))
	require.NoError(t, err)

	require.NoError(t, ei.SetSummary(ctx, "no context, pure generation"))

	stored, err := sc.IndexStore.GetIndexStruct(ctx, ei.IndexID())
	require.NoError(t, err)
	assert.Equal(t, "no context, pure generation", stored.Summary)
}
