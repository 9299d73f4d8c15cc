package prompts

import (
	"strings"
)

// PromptDictType is a map of prompt names to prompt templates.
type PromptDictType map[string]BasePromptTemplate

// PromptMixinType is a map of module names to PromptMixin implementations.
type PromptMixinType map[string]PromptMixin

// PromptMixin is an interface for components that manage prompts.
// It allows getting and setting prompts for a component and its sub-modules.
type PromptMixin interface {
	// GetPrompts returns all prompts for this component and its sub-modules.
	// Sub-module prompts are prefixed with "module_name:".
	GetPrompts() PromptDictType

	// UpdatePrompts updates prompts for this component and its sub-modules.
	// Use "module_name:prompt_name" to update sub-module prompts.
	UpdatePrompts(prompts PromptDictType)
}

// BasePromptMixin provides a base implementation of PromptMixin.
// Embed this in structs that need prompt management.
type BasePromptMixin struct {
	prompts PromptDictType
	modules PromptMixinType
}

// NewBasePromptMixin creates a new BasePromptMixin.
func NewBasePromptMixin() *BasePromptMixin {
	return &BasePromptMixin{
		prompts: make(PromptDictType),
		modules: make(PromptMixinType),
	}
}

// GetPrompts returns all prompts for this component and its sub-modules.
func (bpm *BasePromptMixin) GetPrompts() PromptDictType {
	allPrompts := make(PromptDictType)

	for k, v := range bpm.prompts {
		allPrompts[k] = v
	}

	for moduleName, module := range bpm.modules {
		for promptName, prompt := range module.GetPrompts() {
			allPrompts[moduleName+":"+promptName] = prompt
		}
	}

	return allPrompts
}

// UpdatePrompts updates prompts for this component and its sub-modules.
func (bpm *BasePromptMixin) UpdatePrompts(prompts PromptDictType) {
	subModulePrompts := make(map[string]PromptDictType)

	for key, prompt := range prompts {
		if strings.Contains(key, ":") {
			parts := strings.SplitN(key, ":", 2)
			moduleName, promptName := parts[0], parts[1]
			if subModulePrompts[moduleName] == nil {
				subModulePrompts[moduleName] = make(PromptDictType)
			}
			subModulePrompts[moduleName][promptName] = prompt
		} else {
			bpm.prompts[key] = prompt
		}
	}

	for moduleName, modulePrompts := range subModulePrompts {
		if module, ok := bpm.modules[moduleName]; ok {
			module.UpdatePrompts(modulePrompts)
		}
	}
}

// SetPrompt sets a single prompt.
func (bpm *BasePromptMixin) SetPrompt(name string, prompt BasePromptTemplate) {
	bpm.prompts[name] = prompt
}

// GetPrompt returns a single prompt by name, or nil.
func (bpm *BasePromptMixin) GetPrompt(name string) BasePromptTemplate {
	return bpm.prompts[name]
}

// AddPromptModule registers a sub-module for prompt management.
func (bpm *BasePromptMixin) AddPromptModule(name string, module PromptMixin) {
	bpm.modules[name] = module
}
