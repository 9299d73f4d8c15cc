package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/prompts"
)

// wordCounter is an offline token counter for tests.
type wordCounter struct{}

func (wordCounter) CountTokens(text string) int {
	return len(strings.Fields(text))
}

func TestPredictorPredict(t *testing.T) {
	mock := NewMockLLM("Paris")
	predictor := NewPredictor(mock)

	template := prompts.NewPromptTemplate("Answer this: {query_str}", prompts.PromptTypeCustom)
	result, err := predictor.Predict(context.Background(), template, map[string]string{
		"query_str": "What is the capital of France?",
	})

	require.NoError(t, err)
	assert.Equal(t, "Paris", result)
	assert.Equal(t, 1, mock.CompleteCalls())
	assert.Equal(t, "Answer this: What is the capital of France?", mock.LastPrompt())
}

func TestPredictorPredictError(t *testing.T) {
	llmErr := errors.New("model unavailable")
	mock := NewMockLLMWithError(llmErr)
	predictor := NewPredictor(mock)

	template := prompts.NewPromptTemplate("{query_str}", prompts.PromptTypeSimpleInput)
	_, err := predictor.Predict(context.Background(), template, map[string]string{
		"query_str": "hello",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, llmErr)
}

func TestPredictorPredictStream(t *testing.T) {
	mock := NewMockLLM("")
	mock.StreamTokens = []string{"The ", "answer ", "is ", "42."}
	predictor := NewPredictor(mock)

	template := prompts.NewPromptTemplate("{query_str}", prompts.PromptTypeSimpleInput)
	stream, err := predictor.PredictStream(context.Background(), template, map[string]string{
		"query_str": "What is the answer?",
	})
	require.NoError(t, err)

	var builder strings.Builder
	for token := range stream {
		builder.WriteString(token)
	}

	assert.Equal(t, "The answer is 42.", builder.String())
	assert.Equal(t, 1, mock.StreamCalls())
	assert.Equal(t, "What is the answer?", mock.LastPrompt())
}

func TestPredictorPredictStreamError(t *testing.T) {
	llmErr := errors.New("stream failed")
	mock := NewMockLLMWithError(llmErr)
	predictor := NewPredictor(mock)

	template := prompts.NewPromptTemplate("{query_str}", prompts.PromptTypeSimpleInput)
	_, err := predictor.PredictStream(context.Background(), template, map[string]string{
		"query_str": "hello",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, llmErr)
}

func TestPredictorPredictStreamCancelEndsEvent(t *testing.T) {
	collector := callbacks.NewCollectingHandler()
	cm := callbacks.NewCallbackManager()
	cm.AddHandler(collector)

	mock := NewMockLLM("")
	mock.StreamTokens = []string{"one", "two", "three"}
	predictor := NewPredictor(mock, WithPredictorCallbackManager(cm))

	ctx, cancel := context.WithCancel(context.Background())
	template := prompts.NewPromptTemplate("{query_str}", prompts.PromptTypeSimpleInput)
	stream, err := predictor.PredictStream(ctx, template, map[string]string{
		"query_str": "hello",
	})
	require.NoError(t, err)

	// Consume one token, then abandon the stream mid-flight.
	<-stream
	cancel()

	assert.Eventually(t, func() bool {
		return len(collector.EventsOfType(callbacks.CBEventTypeLLM)) == 2
	}, time.Second, 10*time.Millisecond)

	events := collector.EventsOfType(callbacks.CBEventTypeLLM)
	assert.Equal(t, context.Canceled, events[1].Payload[string(callbacks.EventPayloadException)])
}

func TestPredictorTokenAccounting(t *testing.T) {
	mock := NewMockLLM("four words in response")
	predictor := NewPredictor(mock, WithPredictorTokenCounter(wordCounter{}))

	template := prompts.NewPromptTemplate("{query_str}", prompts.PromptTypeSimpleInput)
	_, err := predictor.Predict(context.Background(), template, map[string]string{
		"query_str": "two words",
	})
	require.NoError(t, err)

	// 2 prompt words + 4 completion words
	assert.Equal(t, 6, predictor.LastTokenUsage())
	assert.Equal(t, 6, predictor.TotalTokensUsed())

	_, err = predictor.Predict(context.Background(), template, map[string]string{
		"query_str": "one",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, predictor.LastTokenUsage())
	assert.Equal(t, 11, predictor.TotalTokensUsed())
}

func TestPredictorNoCounterByDefault(t *testing.T) {
	mock := NewMockLLM("response")
	predictor := NewPredictor(mock)

	template := prompts.NewPromptTemplate("{query_str}", prompts.PromptTypeSimpleInput)
	_, err := predictor.Predict(context.Background(), template, map[string]string{
		"query_str": "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, predictor.TotalTokensUsed())
	assert.Equal(t, 0, predictor.LastTokenUsage())
}

func TestPredictorEmitsCallbackEvents(t *testing.T) {
	collector := callbacks.NewCollectingHandler()
	cm := callbacks.NewCallbackManager()
	cm.AddHandler(collector)

	mock := NewMockLLM("response")
	predictor := NewPredictor(mock, WithPredictorCallbackManager(cm))

	template := prompts.NewPromptTemplate("{query_str}", prompts.PromptTypeSimpleInput)
	_, err := predictor.Predict(context.Background(), template, map[string]string{
		"query_str": "hello",
	})
	require.NoError(t, err)

	templatingEvents := collector.EventsOfType(callbacks.CBEventTypeTemplating)
	assert.Len(t, templatingEvents, 2)

	llmEvents := collector.EventsOfType(callbacks.CBEventTypeLLM)
	require.Len(t, llmEvents, 2)
	assert.Equal(t, "hello", llmEvents[0].Payload[string(callbacks.EventPayloadPrompt)])
	assert.Equal(t, "response", llmEvents[1].Payload[string(callbacks.EventPayloadCompletion)])
}

func TestGetEncodingForModel(t *testing.T) {
	assert.Equal(t, EncodingO200kBase, GetEncodingForModel("gpt-4o"))
	assert.Equal(t, EncodingCL100kBase, GetEncodingForModel("gpt-4"))
	assert.Equal(t, EncodingCL100kBase, GetEncodingForModel("unknown-model"))
}
