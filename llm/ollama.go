package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
)

const (
	// OllamaDefaultURL is the default Ollama API endpoint.
	OllamaDefaultURL = "http://localhost:11434"
)

// Common Ollama model names.
const (
	OllamaLlama3  = "llama3"
	OllamaLlama31 = "llama3.1"
	OllamaMistral = "mistral"
	OllamaGemma2  = "gemma2"
	OllamaQwen2   = "qwen2"
	OllamaPhi3    = "phi3"
)

// OllamaLLM implements the LLM interface for Ollama local models.
type OllamaLLM struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
	// Generation options
	temperature *float32
	numPredict  *int
	seed        *int
}

// OllamaOption configures an OllamaLLM.
type OllamaOption func(*OllamaLLM)

// WithOllamaBaseURL sets the base URL.
func WithOllamaBaseURL(baseURL string) OllamaOption {
	return func(o *OllamaLLM) {
		o.baseURL = baseURL
	}
}

// WithOllamaModel sets the model.
func WithOllamaModel(model string) OllamaOption {
	return func(o *OllamaLLM) {
		o.model = model
	}
}

// WithOllamaHTTPClient sets a custom HTTP client.
func WithOllamaHTTPClient(client *http.Client) OllamaOption {
	return func(o *OllamaLLM) {
		o.httpClient = client
	}
}

// WithOllamaTemperature sets the temperature.
func WithOllamaTemperature(temp float32) OllamaOption {
	return func(o *OllamaLLM) {
		o.temperature = &temp
	}
}

// WithOllamaNumPredict sets the max tokens to generate.
func WithOllamaNumPredict(numPredict int) OllamaOption {
	return func(o *OllamaLLM) {
		o.numPredict = &numPredict
	}
}

// WithOllamaSeed sets the random seed.
func WithOllamaSeed(seed int) OllamaOption {
	return func(o *OllamaLLM) {
		o.seed = &seed
	}
}

// NewOllamaLLM creates a new Ollama LLM client. The base URL falls back
// to the OLLAMA_HOST environment variable.
func NewOllamaLLM(opts ...OllamaOption) *OllamaLLM {
	baseURL := os.Getenv("OLLAMA_HOST")
	if baseURL == "" {
		baseURL = OllamaDefaultURL
	}

	o := &OllamaLLM{
		baseURL:    baseURL,
		model:      OllamaLlama31,
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// ollamaGenerateRequest represents a request to the Ollama generate API.
type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// ollamaChatRequest represents a request to the Ollama chat API.
type ollamaChatRequest struct {
	Model    string                 `json:"model"`
	Messages []ollamaMessage        `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

// ollamaMessage represents a message in the Ollama API format.
type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaGenerateResponse represents a response from the Ollama generate API.
type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// ollamaChatResponse represents a response from the Ollama chat API.
type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// Complete generates a completion for a given prompt.
func (o *OllamaLLM) Complete(ctx context.Context, prompt string) (string, error) {
	o.logger.Info("Complete called", "model", o.model, "prompt_len", len(prompt))

	reqBody := ollamaGenerateRequest{
		Model:   o.model,
		Prompt:  prompt,
		Stream:  false,
		Options: o.buildOptions(),
	}

	resp, err := o.doGenerateRequest(ctx, reqBody)
	if err != nil {
		return "", err
	}

	return resp.Response, nil
}

// Chat generates a response for a list of chat messages.
func (o *OllamaLLM) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	o.logger.Info("Chat called", "model", o.model, "message_count", len(messages))

	ollamaMessages := make([]ollamaMessage, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = ollamaMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	reqBody := ollamaChatRequest{
		Model:    o.model,
		Messages: ollamaMessages,
		Stream:   false,
		Options:  o.buildOptions(),
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Message.Content, nil
}

// Stream generates a streaming completion for a given prompt.
func (o *OllamaLLM) Stream(ctx context.Context, prompt string) (<-chan string, error) {
	o.logger.Info("Stream called", "model", o.model, "prompt_len", len(prompt))

	reqBody := ollamaGenerateRequest{
		Model:   o.model,
		Prompt:  prompt,
		Stream:  true,
		Options: o.buildOptions(),
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	tokenChan := make(chan string)

	go func() {
		defer close(tokenChan)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			default:
			}

			var streamResp ollamaGenerateResponse
			if err := json.Unmarshal(scanner.Bytes(), &streamResp); err != nil {
				continue
			}

			if streamResp.Response != "" {
				select {
				case tokenChan <- streamResp.Response:
				case <-ctx.Done():
					return
				}
			}

			if streamResp.Done {
				return
			}
		}
	}()

	return tokenChan, nil
}

// Metadata returns information about the model's capabilities.
func (o *OllamaLLM) Metadata() LLMMetadata {
	contextWindow := 4096
	numOutputTokens := 2048

	switch o.model {
	case OllamaLlama31:
		contextWindow = 128000
		numOutputTokens = 4096
	case OllamaLlama3, OllamaGemma2:
		contextWindow = 8192
		numOutputTokens = 4096
	case OllamaMistral, OllamaQwen2:
		contextWindow = 32768
		numOutputTokens = 4096
	}

	return LLMMetadata{
		ModelName:       o.model,
		ContextWindow:   contextWindow,
		NumOutputTokens: numOutputTokens,
		IsChat:          true,
	}
}

// buildOptions builds the options map for Ollama requests.
func (o *OllamaLLM) buildOptions() map[string]interface{} {
	options := make(map[string]interface{})

	if o.temperature != nil {
		options["temperature"] = *o.temperature
	}
	if o.numPredict != nil {
		options["num_predict"] = *o.numPredict
	}
	if o.seed != nil {
		options["seed"] = *o.seed
	}

	return options
}

// doGenerateRequest performs a generate request to the Ollama API.
func (o *OllamaLLM) doGenerateRequest(ctx context.Context, body ollamaGenerateRequest) (*ollamaGenerateResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

var _ LLM = (*OllamaLLM)(nil)
var _ LLMWithMetadata = (*OllamaLLM)(nil)
