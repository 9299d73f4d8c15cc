package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTemplateVars(t *testing.T) {
	vars := GetTemplateVars("Query: {query_str}\nContext: {context_str}\nAgain: {query_str}")
	assert.Equal(t, []string{"query_str", "context_str"}, vars)
}

func TestPromptTemplateFormat(t *testing.T) {
	pt := NewPromptTemplate("Answer the question: {query_str}", PromptTypeSimpleInput)

	result := pt.Format(map[string]string{"query_str": "What is Go?"})
	assert.Equal(t, "Answer the question: What is Go?", result)
	assert.Equal(t, PromptTypeSimpleInput, pt.GetPromptType())
}

func TestPromptTemplatePartialFormat(t *testing.T) {
	pt := NewPromptTemplate("{prefix}: {query_str}", PromptTypeCustom)

	partial := pt.PartialFormat(map[string]string{"prefix": "Q"})
	result := partial.Format(map[string]string{"query_str": "hello"})
	assert.Equal(t, "Q: hello", result)

	// Original template is untouched
	assert.Empty(t, pt.PartialVars)
}

func TestDefaultSimpleInputPrompt(t *testing.T) {
	result := DefaultSimpleInputPrompt.Format(map[string]string{"query_str": "capital of France"})
	assert.Equal(t, "capital of France", result)
	assert.Equal(t, []string{"query_str"}, DefaultSimpleInputPrompt.GetTemplateVars())
}

func TestGetDefaultPrompt(t *testing.T) {
	assert.Equal(t, DefaultSimpleInputPrompt, GetDefaultPrompt(PromptTypeSimpleInput))
	assert.Equal(t, DefaultTextQAPrompt, GetDefaultPrompt(PromptTypeQuestionAnswer))
	assert.Nil(t, GetDefaultPrompt(PromptTypeCustom))
}

func TestPromptMixin(t *testing.T) {
	mixin := NewBasePromptMixin()
	mixin.SetPrompt("input_prompt", DefaultSimpleInputPrompt)

	prompts := mixin.GetPrompts()
	assert.Len(t, prompts, 1)
	assert.Equal(t, DefaultSimpleInputPrompt, prompts["input_prompt"])

	custom := NewPromptTemplate("please answer: {query_str}", PromptTypeSimpleInput)
	mixin.UpdatePrompts(PromptDictType{"input_prompt": custom})
	assert.Equal(t, custom, mixin.GetPrompt("input_prompt"))
}

func TestPromptMixinSubModules(t *testing.T) {
	sub := NewBasePromptMixin()
	sub.SetPrompt("qa", DefaultTextQAPrompt)

	root := NewBasePromptMixin()
	root.AddPromptModule("synthesizer", sub)

	prompts := root.GetPrompts()
	assert.Equal(t, DefaultTextQAPrompt, prompts["synthesizer:qa"])

	root.UpdatePrompts(PromptDictType{"synthesizer:qa": DefaultRefinePrompt})
	assert.Equal(t, DefaultRefinePrompt, sub.GetPrompt("qa"))
}
