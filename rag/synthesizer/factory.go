package synthesizer

import (
	"fmt"

	"github.com/aqua777/go-gptindex/llm"
)

// GetSynthesizer returns a synthesizer for the given response mode.
func GetSynthesizer(mode ResponseMode, predictor *llm.Predictor) (Synthesizer, error) {
	switch mode {
	case ResponseModeGeneration:
		return NewGenerationSynthesizer(predictor), nil
	case ResponseModeSimpleSummarize:
		return NewSimpleSynthesizer(predictor), nil
	default:
		return nil, fmt.Errorf("unsupported response mode: %s", mode)
	}
}
