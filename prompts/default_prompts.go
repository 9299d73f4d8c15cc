package prompts

// Default prompt templates for common use cases.

// Simple input prompt: forwards the raw query to the model untouched.
const (
	DefaultSimpleInputTmpl = `{query_str}`
)

// Question-Answer prompts
const (
	DefaultTextQAPromptTmpl = `Context information is below.
---------------------
{context_str}
---------------------
Given the context information and not prior knowledge, answer the query.
Query: {query_str}
Answer: `

	DefaultRefinePromptTmpl = `The original query is as follows: {query_str}
We have provided an existing answer: {existing_answer}
We have the opportunity to refine the existing answer (only if needed) with some more context below.
------------
{context_msg}
------------
Given the new context, refine the original answer to better answer the query. If the context isn't useful, return the original answer.
Refined Answer: `
)

// Summary prompts
const (
	DefaultSummaryPromptTmpl = `Write a summary of the following. Try to use only the information provided. Try to include as many key details as possible.

{context_str}

SUMMARY:`
)

// Default prompt instances
var (
	DefaultSimpleInputPrompt = NewPromptTemplate(DefaultSimpleInputTmpl, PromptTypeSimpleInput)
	DefaultTextQAPrompt      = NewPromptTemplate(DefaultTextQAPromptTmpl, PromptTypeQuestionAnswer)
	DefaultRefinePrompt      = NewPromptTemplate(DefaultRefinePromptTmpl, PromptTypeRefine)
	DefaultSummaryPrompt     = NewPromptTemplate(DefaultSummaryPromptTmpl, PromptTypeSummary)
)

// GetDefaultPrompt returns a default prompt by type.
func GetDefaultPrompt(promptType PromptType) BasePromptTemplate {
	switch promptType {
	case PromptTypeSimpleInput:
		return DefaultSimpleInputPrompt
	case PromptTypeQuestionAnswer:
		return DefaultTextQAPrompt
	case PromptTypeRefine:
		return DefaultRefinePrompt
	case PromptTypeSummary:
		return DefaultSummaryPrompt
	default:
		return nil
	}
}
