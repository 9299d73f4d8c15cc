// Package settings holds process-wide defaults used when components are
// not configured explicitly.
package settings

import (
	"sync"

	"github.com/aqua777/go-gptindex/callbacks"
	"github.com/aqua777/go-gptindex/llm"
)

var (
	mu                    sync.RWMutex
	globalLLM             llm.LLM
	globalCallbackManager *callbacks.CallbackManager
)

func init() {
	// Providers read API keys from env in their constructors.
	globalLLM = llm.NewOpenAILLM("", "", "")
}

// SetLLM sets the global LLM.
func SetLLM(l llm.LLM) {
	mu.Lock()
	defer mu.Unlock()
	globalLLM = l
}

// GetLLM gets the global LLM.
func GetLLM() llm.LLM {
	mu.RLock()
	defer mu.RUnlock()
	return globalLLM
}

// SetCallbackManager sets the global callback manager.
func SetCallbackManager(cm *callbacks.CallbackManager) {
	mu.Lock()
	defer mu.Unlock()
	globalCallbackManager = cm
}

// GetCallbackManager gets the global callback manager. May be nil.
func GetCallbackManager() *callbacks.CallbackManager {
	mu.RLock()
	defer mu.RUnlock()
	return globalCallbackManager
}
