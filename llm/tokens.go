package llm

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Common encoding names.
const (
	EncodingCL100kBase = "cl100k_base" // GPT-4, GPT-3.5-turbo
	EncodingO200kBase  = "o200k_base"  // GPT-4o models
)

// modelEncodingMap maps model names to their tiktoken encoding.
var modelEncodingMap = map[string]string{
	"gpt-4o":                 EncodingO200kBase,
	"gpt-4o-mini":            EncodingO200kBase,
	"gpt-4":                  EncodingCL100kBase,
	"gpt-4-turbo":            EncodingCL100kBase,
	"gpt-3.5-turbo":          EncodingCL100kBase,
	"gpt-3.5-turbo-16k":      EncodingCL100kBase,
	"gpt-3.5-turbo-instruct": EncodingCL100kBase,
}

// GetEncodingForModel returns the encoding name for a given model.
// Returns cl100k_base as default if model is not found.
func GetEncodingForModel(model string) string {
	if enc, ok := modelEncodingMap[model]; ok {
		return enc
	}
	return EncodingCL100kBase
}

// TokenCounter counts tokens in text for usage accounting.
type TokenCounter interface {
	// CountTokens returns the number of tokens in the text.
	CountTokens(text string) int
}

// TiktokenCounter counts tokens using a tiktoken encoding.
type TiktokenCounter struct {
	mu       sync.Mutex
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a counter for a specific encoding name.
func NewTiktokenCounter(encodingName string) (*TiktokenCounter, error) {
	if encodingName == "" {
		encodingName = EncodingCL100kBase
	}
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %s: %w", encodingName, err)
	}
	return &TiktokenCounter{encoding: enc}, nil
}

// NewTiktokenCounterForModel creates a counter using the model's encoding.
func NewTiktokenCounterForModel(model string) (*TiktokenCounter, error) {
	return NewTiktokenCounter(GetEncodingForModel(model))
}

// CountTokens returns the number of tokens in the text.
func (tc *TiktokenCounter) CountTokens(text string) int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return len(tc.encoding.Encode(text, nil, nil))
}

var _ TokenCounter = (*TiktokenCounter)(nil)
