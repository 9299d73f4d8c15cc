// Package schema defines the core data model shared across the library.
package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Default templates for text formatting.
const (
	DefaultTextNodeTemplate  = "{metadata_str}\n\n{content}"
	DefaultMetadataTemplate  = "{key}: {value}"
	DefaultMetadataSeparator = "\n"
)

// Node represents a chunk of content with optional metadata.
// In this library nodes only ever appear as response provenance; the
// empty index itself never stores any.
type Node struct {
	ID                        string                 `json:"id"`
	Text                      string                 `json:"text"`
	Metadata                  map[string]interface{} `json:"metadata,omitempty"`
	Hash                      string                 `json:"hash,omitempty"`
	ExcludedLLMMetadataKeys   []string               `json:"excluded_llm_metadata_keys,omitempty"`
	ExcludedEmbedMetadataKeys []string               `json:"excluded_embed_metadata_keys,omitempty"`
	MetadataTemplate          string                 `json:"metadata_template,omitempty"`
	MetadataSeparator         string                 `json:"metadata_separator,omitempty"`
	TextTemplate              string                 `json:"text_template,omitempty"`
}

// NewNode creates a new Node with default values.
func NewNode() *Node {
	return &Node{
		ID:                uuid.New().String(),
		Metadata:          make(map[string]interface{}),
		MetadataTemplate:  DefaultMetadataTemplate,
		MetadataSeparator: DefaultMetadataSeparator,
		TextTemplate:      DefaultTextNodeTemplate,
	}
}

// NewTextNode creates a new node with the given text.
func NewTextNode(text string) *Node {
	node := NewNode()
	node.Text = text
	node.Hash = node.GenerateHash()
	return node
}

// GetContent returns the content with metadata based on mode.
func (n *Node) GetContent(mode MetadataMode) string {
	metadataStr := strings.TrimSpace(n.GetMetadataStr(mode))
	if metadataStr == "" || mode == MetadataModeNone {
		return n.Text
	}

	template := n.TextTemplate
	if template == "" {
		template = DefaultTextNodeTemplate
	}
	content := strings.ReplaceAll(template, "{metadata_str}", metadataStr)
	content = strings.ReplaceAll(content, "{content}", n.Text)
	return content
}

// GetMetadataStr returns metadata as a formatted string based on mode.
func (n *Node) GetMetadataStr(mode MetadataMode) string {
	if mode == MetadataModeNone || len(n.Metadata) == 0 {
		return ""
	}

	excludedKeys := make(map[string]bool)
	switch mode {
	case MetadataModeLLM:
		for _, key := range n.ExcludedLLMMetadataKeys {
			excludedKeys[key] = true
		}
	case MetadataModeEmbed:
		for _, key := range n.ExcludedEmbedMetadataKeys {
			excludedKeys[key] = true
		}
	}

	// Sorted keys for consistent output
	keys := make([]string, 0, len(n.Metadata))
	for key := range n.Metadata {
		if !excludedKeys[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	template := n.MetadataTemplate
	if template == "" {
		template = DefaultMetadataTemplate
	}
	separator := n.MetadataSeparator
	if separator == "" {
		separator = DefaultMetadataSeparator
	}

	var parts []string
	for _, key := range keys {
		formatted := strings.ReplaceAll(template, "{key}", key)
		formatted = strings.ReplaceAll(formatted, "{value}", formatValue(n.Metadata[key]))
		parts = append(parts, formatted)
	}

	return strings.Join(parts, separator)
}

// formatValue converts a value to string for metadata formatting.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		bytes, _ := json.Marshal(val)
		return string(bytes)
	}
}

// GetHash returns the hash, generating it if needed.
func (n *Node) GetHash() string {
	if n.Hash == "" {
		n.Hash = n.GenerateHash()
	}
	return n.Hash
}

// GenerateHash generates a SHA256 hash of the node content.
func (n *Node) GenerateHash() string {
	h := sha256.New()
	h.Write([]byte(n.GetContent(MetadataModeAll)))
	return hex.EncodeToString(h.Sum(nil))
}
