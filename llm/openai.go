package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const (
	OpenAI_API_URL_v1 = "https://api.openai.com/v1"
)

// OpenAILLM implements the LLM interface for the OpenAI chat API.
type OpenAILLM struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAILLM creates a new OpenAI client. Empty arguments fall back to
// the OPENAI_API_KEY and OPENAI_URL environment variables.
func NewOpenAILLM(baseUrl, model, apiKey string) *OpenAILLM {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if baseUrl == "" {
		baseUrl = os.Getenv("OPENAI_URL")
		if baseUrl == "" {
			baseUrl = OpenAI_API_URL_v1
		}
	}

	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseUrl
	client := openai.NewClientWithConfig(config)

	return &OpenAILLM{
		client: client,
		model:  model,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

// NewOpenAILLMWithClient creates an OpenAI LLM with a preconfigured client.
func NewOpenAILLMWithClient(client *openai.Client, model string) *OpenAILLM {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &OpenAILLM{
		client: client,
		model:  model,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

// Model returns the configured model name.
func (o *OpenAILLM) Model() string {
	return o.model
}

// Complete generates a completion for a given prompt.
func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	o.logger.Info("Complete called", "model", o.model, "prompt_len", len(prompt))

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)

	if err != nil {
		o.logger.Error("Complete failed", "error", err)
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Chat generates a response for a list of chat messages.
func (o *OpenAILLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	o.logger.Info("Chat called", "model", o.model, "message_count", len(messages))

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:    o.model,
			Messages: convertToOpenAIMessages(messages),
		},
	)

	if err != nil {
		o.logger.Error("Chat failed", "error", err)
		return "", fmt.Errorf("openai chat failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Stream generates a streaming completion for a given prompt.
func (o *OpenAILLM) Stream(ctx context.Context, prompt string) (<-chan string, error) {
	o.logger.Info("Stream called", "model", o.model, "prompt_len", len(prompt))

	stream, err := o.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Stream: true,
		},
	)

	if err != nil {
		o.logger.Error("Stream failed", "error", err)
		return nil, fmt.Errorf("openai stream failed: %w", err)
	}

	tokenChan := make(chan string)

	go func() {
		defer close(tokenChan)
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				o.logger.Error("Stream receive error", "error", err)
				return
			}

			if len(response.Choices) > 0 {
				delta := response.Choices[0].Delta.Content
				if delta == "" {
					continue
				}
				select {
				case tokenChan <- delta:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return tokenChan, nil
}

// Metadata returns information about the model's capabilities.
func (o *OpenAILLM) Metadata() LLMMetadata {
	switch o.model {
	case openai.GPT4o, openai.GPT4oMini:
		return LLMMetadata{ModelName: o.model, ContextWindow: 128000, NumOutputTokens: 16384, IsChat: true}
	case openai.GPT4, openai.GPT4Turbo:
		return LLMMetadata{ModelName: o.model, ContextWindow: 128000, NumOutputTokens: 4096, IsChat: true}
	case openai.GPT3Dot5Turbo:
		return LLMMetadata{ModelName: o.model, ContextWindow: 16385, NumOutputTokens: 4096, IsChat: true}
	default:
		return DefaultLLMMetadata(o.model)
	}
}

// convertToOpenAIMessages converts ChatMessages to the OpenAI format.
func convertToOpenAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		result[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
			Name:    msg.Name,
		}
	}
	return result
}

var _ LLM = (*OpenAILLM)(nil)
var _ LLMWithMetadata = (*OpenAILLM)(nil)
