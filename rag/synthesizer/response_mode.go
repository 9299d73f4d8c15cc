// Package synthesizer provides response synthesis for query engines.
package synthesizer

// ResponseMode represents the mode of response synthesis.
type ResponseMode string

const (
	// ResponseModeRefine iteratively refines the response across text chunks.
	ResponseModeRefine ResponseMode = "refine"

	// ResponseModeCompact combines text chunks into larger consolidated chunks
	// that better utilize the context window, then refines across them.
	ResponseModeCompact ResponseMode = "compact"

	// ResponseModeSimpleSummarize merges all text chunks into one and makes
	// a single LLM call.
	ResponseModeSimpleSummarize ResponseMode = "simple_summarize"

	// ResponseModeTreeSummarize builds a summary tree over candidate nodes
	// and returns the root.
	ResponseModeTreeSummarize ResponseMode = "tree_summarize"

	// ResponseModeGeneration ignores retrieved context and forwards the raw
	// query to the LLM.
	ResponseModeGeneration ResponseMode = "generation"

	// ResponseModeNoText returns retrieved context nodes without synthesizing.
	ResponseModeNoText ResponseMode = "no_text"

	// ResponseModeAccumulate synthesizes a response for each chunk, then
	// concatenates all responses.
	ResponseModeAccumulate ResponseMode = "accumulate"

	// DefaultResponseMode is the mode used when none is specified.
	DefaultResponseMode = ResponseModeGeneration
)

// String returns the string representation of the response mode.
func (rm ResponseMode) String() string {
	return string(rm)
}

// IsValid checks if the response mode is valid.
func (rm ResponseMode) IsValid() bool {
	switch rm {
	case ResponseModeRefine, ResponseModeCompact, ResponseModeSimpleSummarize,
		ResponseModeTreeSummarize, ResponseModeGeneration, ResponseModeNoText,
		ResponseModeAccumulate:
		return true
	default:
		return false
	}
}
