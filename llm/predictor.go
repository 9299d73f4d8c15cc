package llm

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/prompts"
)

// Predictor formats a prompt template and forwards it to an LLM.
// It keeps a cumulative count of tokens used across calls when a
// TokenCounter is configured.
//
// Predictor performs no retries and no error handling of its own:
// failures from the underlying LLM surface unchanged to the caller.
type Predictor struct {
	llm             LLM
	counter         TokenCounter
	callbackManager *callbacks.CallbackManager
	logger          *slog.Logger

	mu              sync.Mutex
	totalTokensUsed int
	lastTokenUsage  int
}

// PredictorOption is a functional option for Predictor.
type PredictorOption func(*Predictor)

// WithPredictorTokenCounter enables token accounting with the given counter.
func WithPredictorTokenCounter(counter TokenCounter) PredictorOption {
	return func(p *Predictor) {
		p.counter = counter
	}
}

// WithPredictorCallbackManager sets the callback manager for event emission.
func WithPredictorCallbackManager(cm *callbacks.CallbackManager) PredictorOption {
	return func(p *Predictor) {
		p.callbackManager = cm
	}
}

// NewPredictor creates a Predictor for the given LLM.
func NewPredictor(llmModel LLM, opts ...PredictorOption) *Predictor {
	p := &Predictor{
		llm:    llmModel,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// LLM returns the underlying LLM.
func (p *Predictor) LLM() LLM {
	return p.llm
}

// Predict formats the template with vars and issues one blocking
// completion call. Returns the generated text.
func (p *Predictor) Predict(ctx context.Context, template prompts.BasePromptTemplate, vars map[string]string) (string, error) {
	formattedPrompt := p.formatPrompt(template, vars)

	eventID := p.callbackManager.OnEventStart(callbacks.CBEventTypeLLM, map[string]interface{}{
		string(callbacks.EventPayloadPrompt): formattedPrompt,
	})

	text, err := p.llm.Complete(ctx, formattedPrompt)
	if err != nil {
		p.callbackManager.OnEventEnd(callbacks.CBEventTypeLLM, map[string]interface{}{
			string(callbacks.EventPayloadException): err,
		}, eventID)
		return "", err
	}

	p.recordUsage(formattedPrompt, text)

	p.callbackManager.OnEventEnd(callbacks.CBEventTypeLLM, map[string]interface{}{
		string(callbacks.EventPayloadCompletion): text,
	}, eventID)

	return text, nil
}

// PredictStream formats the template with vars and issues one streaming
// completion call. Tokens are forwarded on the returned channel; token
// usage is recorded once the stream is fully drained.
func (p *Predictor) PredictStream(ctx context.Context, template prompts.BasePromptTemplate, vars map[string]string) (<-chan string, error) {
	formattedPrompt := p.formatPrompt(template, vars)

	eventID := p.callbackManager.OnEventStart(callbacks.CBEventTypeLLM, map[string]interface{}{
		string(callbacks.EventPayloadPrompt): formattedPrompt,
	})

	stream, err := p.llm.Stream(ctx, formattedPrompt)
	if err != nil {
		p.callbackManager.OnEventEnd(callbacks.CBEventTypeLLM, map[string]interface{}{
			string(callbacks.EventPayloadException): err,
		}, eventID)
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)

		var builder strings.Builder
		for token := range stream {
			builder.WriteString(token)
			select {
			case out <- token:
			case <-ctx.Done():
				p.callbackManager.OnEventEnd(callbacks.CBEventTypeLLM, map[string]interface{}{
					string(callbacks.EventPayloadException): ctx.Err(),
				}, eventID)
				return
			}
		}

		text := builder.String()
		p.recordUsage(formattedPrompt, text)
		p.callbackManager.OnEventEnd(callbacks.CBEventTypeLLM, map[string]interface{}{
			string(callbacks.EventPayloadCompletion): text,
		}, eventID)
	}()

	return out, nil
}

// TotalTokensUsed returns the cumulative token count across all calls.
// Always zero when no TokenCounter is configured.
func (p *Predictor) TotalTokensUsed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalTokensUsed
}

// LastTokenUsage returns the token count of the most recent call.
func (p *Predictor) LastTokenUsage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastTokenUsage
}

// formatPrompt renders the template and emits a templating event.
func (p *Predictor) formatPrompt(template prompts.BasePromptTemplate, vars map[string]string) string {
	formatted := template.Format(vars)

	eventID := p.callbackManager.OnEventStart(callbacks.CBEventTypeTemplating, map[string]interface{}{
		string(callbacks.EventPayloadTemplate):     template.GetTemplate(),
		string(callbacks.EventPayloadTemplateVars): vars,
	})
	p.callbackManager.OnEventEnd(callbacks.CBEventTypeTemplating, nil, eventID)

	return formatted
}

// recordUsage updates the cumulative token counts.
func (p *Predictor) recordUsage(prompt, completion string) {
	if p.counter == nil {
		return
	}

	used := p.counter.CountTokens(prompt) + p.counter.CountTokens(completion)

	p.mu.Lock()
	p.lastTokenUsage = used
	p.totalTokensUsed += used
	p.mu.Unlock()

	p.logger.Debug("token usage recorded", "tokens", used)
}
