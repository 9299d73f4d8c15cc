package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

const (
	// DefaultBedrockModel is the default model to use.
	DefaultBedrockModel = "anthropic.claude-3-5-sonnet-20241022-v2:0"
	// DefaultBedrockMaxTokens is the default max tokens.
	DefaultBedrockMaxTokens = 1024
)

// Bedrock model constants.
const (
	BedrockClaude35Sonnet   = "anthropic.claude-3-5-sonnet-20240620-v1:0"
	BedrockClaude35SonnetV2 = "anthropic.claude-3-5-sonnet-20241022-v2:0"
	BedrockClaude35Haiku    = "anthropic.claude-3-5-haiku-20241022-v1:0"
	BedrockNovaProV1        = "amazon.nova-pro-v1:0"
	BedrockNovaLiteV1       = "amazon.nova-lite-v1:0"
	BedrockLlama33_70B      = "meta.llama3-3-70b-instruct-v1:0"
	BedrockMistralLarge2402 = "mistral.mistral-large-2402-v1:0"
)

// bedrockContextWindows maps model IDs to their context window sizes.
var bedrockContextWindows = map[string]int{
	BedrockClaude35Sonnet:   200000,
	BedrockClaude35SonnetV2: 200000,
	BedrockClaude35Haiku:    200000,
	BedrockNovaProV1:        300000,
	BedrockNovaLiteV1:       300000,
	BedrockLlama33_70B:      128000,
	BedrockMistralLarge2402: 32000,
}

// BedrockLLM implements the LLM interface for AWS Bedrock using the Converse API.
type BedrockLLM struct {
	client      *bedrockruntime.Client
	model       string
	maxTokens   int
	temperature float32
	region      string
	logger      *slog.Logger
}

// BedrockOption configures a BedrockLLM.
type BedrockOption func(*BedrockLLM)

// WithBedrockModel sets the model.
func WithBedrockModel(model string) BedrockOption {
	return func(b *BedrockLLM) {
		b.model = model
	}
}

// WithBedrockMaxTokens sets the max tokens.
func WithBedrockMaxTokens(maxTokens int) BedrockOption {
	return func(b *BedrockLLM) {
		b.maxTokens = maxTokens
	}
}

// WithBedrockTemperature sets the temperature.
func WithBedrockTemperature(temperature float32) BedrockOption {
	return func(b *BedrockLLM) {
		b.temperature = temperature
	}
}

// WithBedrockRegion sets the AWS region.
func WithBedrockRegion(region string) BedrockOption {
	return func(b *BedrockLLM) {
		b.region = region
	}
}

// WithBedrockCredentials sets explicit AWS credentials.
func WithBedrockCredentials(accessKeyID, secretAccessKey, sessionToken string) BedrockOption {
	return func(b *BedrockLLM) {
		cfg, err := config.LoadDefaultConfig(context.Background(),
			config.WithRegion(b.region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				sessionToken,
			)),
		)
		if err == nil {
			b.client = bedrockruntime.NewFromConfig(cfg)
		}
	}
}

// WithBedrockClient sets a custom Bedrock client (for testing).
func WithBedrockClient(client *bedrockruntime.Client) BedrockOption {
	return func(b *BedrockLLM) {
		b.client = client
	}
}

// NewBedrockLLM creates a new Bedrock LLM client using the default AWS
// credential chain unless explicit credentials are supplied.
func NewBedrockLLM(opts ...BedrockOption) *BedrockLLM {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	b := &BedrockLLM{
		model:       DefaultBedrockModel,
		maxTokens:   DefaultBedrockMaxTokens,
		temperature: 0.1,
		region:      region,
		logger:      slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	// Apply options first so region/credentials take effect
	for _, opt := range opts {
		opt(b)
	}

	if b.client == nil {
		cfg, err := config.LoadDefaultConfig(context.Background(),
			config.WithRegion(b.region),
		)
		if err == nil {
			b.client = bedrockruntime.NewFromConfig(cfg)
		}
	}

	return b
}

// Complete generates a completion for a given prompt.
func (b *BedrockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	b.logger.Info("Complete called", "model", b.model, "prompt_len", len(prompt))

	return b.Chat(ctx, []ChatMessage{NewUserMessage(prompt)})
}

// Chat generates a response for a list of chat messages.
func (b *BedrockLLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	b.logger.Info("Chat called", "model", b.model, "message_count", len(messages))

	converseMessages, systemPrompts := b.convertMessages(messages)

	input := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(b.model),
		Messages: converseMessages,
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(b.maxTokens)),
			Temperature: aws.Float32(b.temperature),
		},
	}

	if len(systemPrompts) > 0 {
		input.System = systemPrompts
	}

	resp, err := b.client.Converse(ctx, input)
	if err != nil {
		b.logger.Error("Chat failed", "error", err)
		return "", fmt.Errorf("bedrock converse failed: %w", err)
	}

	return b.extractTextFromResponse(resp), nil
}

// Stream generates a streaming completion for a given prompt.
func (b *BedrockLLM) Stream(ctx context.Context, prompt string) (<-chan string, error) {
	b.logger.Info("Stream called", "model", b.model, "prompt_len", len(prompt))

	converseMessages, systemPrompts := b.convertMessages([]ChatMessage{NewUserMessage(prompt)})

	input := &bedrockruntime.ConverseStreamInput{
		ModelId:  aws.String(b.model),
		Messages: converseMessages,
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(b.maxTokens)),
			Temperature: aws.Float32(b.temperature),
		},
	}

	if len(systemPrompts) > 0 {
		input.System = systemPrompts
	}

	resp, err := b.client.ConverseStream(ctx, input)
	if err != nil {
		b.logger.Error("Stream failed", "error", err)
		return nil, fmt.Errorf("bedrock stream failed: %w", err)
	}

	tokenChan := make(chan string)

	go func() {
		defer close(tokenChan)

		stream := resp.GetStream()
		for event := range stream.Events() {
			switch v := event.(type) {
			case *types.ConverseStreamOutputMemberContentBlockDelta:
				if textDelta, ok := v.Value.Delta.(*types.ContentBlockDeltaMemberText); ok {
					select {
					case tokenChan <- textDelta.Value:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return tokenChan, nil
}

// Metadata returns information about the model's capabilities.
func (b *BedrockLLM) Metadata() LLMMetadata {
	contextWindow, ok := bedrockContextWindows[b.model]
	if !ok {
		contextWindow = 4096
	}

	return LLMMetadata{
		ModelName:       b.model,
		ContextWindow:   contextWindow,
		NumOutputTokens: b.maxTokens,
		IsChat:          true,
	}
}

// convertMessages converts ChatMessages to Bedrock Converse format.
func (b *BedrockLLM) convertMessages(messages []ChatMessage) ([]types.Message, []types.SystemContentBlock) {
	var converseMessages []types.Message
	var systemPrompts []types.SystemContentBlock

	for _, msg := range messages {
		switch msg.Role {
		case MessageRoleSystem:
			systemPrompts = append(systemPrompts, &types.SystemContentBlockMemberText{
				Value: msg.Content,
			})

		case MessageRoleUser:
			converseMessages = append(converseMessages, types.Message{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: msg.Content},
				},
			})

		case MessageRoleAssistant:
			converseMessages = append(converseMessages, types.Message{
				Role: types.ConversationRoleAssistant,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: msg.Content},
				},
			})
		}
	}

	return converseMessages, systemPrompts
}

// extractTextFromResponse extracts text content from a Converse response.
func (b *BedrockLLM) extractTextFromResponse(resp *bedrockruntime.ConverseOutput) string {
	if resp.Output == nil {
		return ""
	}

	if msgOutput, ok := resp.Output.(*types.ConverseOutputMemberMessage); ok {
		var textParts []string
		for _, block := range msgOutput.Value.Content {
			if textBlock, ok := block.(*types.ContentBlockMemberText); ok {
				textParts = append(textParts, textBlock.Value)
			}
		}
		return strings.Join(textParts, "")
	}

	return ""
}

var _ LLM = (*BedrockLLM)(nil)
var _ LLMWithMetadata = (*BedrockLLM)(nil)
