// Package prompts provides prompt templates and utilities for LLM interactions.
package prompts

// PromptType represents the type/category of a prompt.
type PromptType string

const (
	// Question answering
	PromptTypeQuestionAnswer PromptType = "text_qa"
	PromptTypeRefine         PromptType = "refine"

	// Summarization
	PromptTypeSummary PromptType = "summary"

	// Raw input passthrough
	PromptTypeSimpleInput PromptType = "simple_input"

	// Custom (default)
	PromptTypeCustom PromptType = "custom"
)

// String returns the string representation of the prompt type.
func (pt PromptType) String() string {
	return string(pt)
}
