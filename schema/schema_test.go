package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTextNode(t *testing.T) {
	node := NewTextNode("Hello, world!")

	assert.NotEmpty(t, node.ID)
	assert.Equal(t, "Hello, world!", node.Text)
	assert.NotEmpty(t, node.Hash)
}

func TestGetContentWithMetadata(t *testing.T) {
	node := NewTextNode("Some content.")
	node.Metadata["source"] = "test.txt"

	content := node.GetContent(MetadataModeAll)
	assert.Contains(t, content, "source: test.txt")
	assert.Contains(t, content, "Some content.")

	// None mode returns bare text
	assert.Equal(t, "Some content.", node.GetContent(MetadataModeNone))
}

func TestGetMetadataStrExcludesLLMKeys(t *testing.T) {
	node := NewTextNode("text")
	node.Metadata["public"] = "yes"
	node.Metadata["internal"] = "no"
	node.ExcludedLLMMetadataKeys = []string{"internal"}

	llmStr := node.GetMetadataStr(MetadataModeLLM)
	assert.Contains(t, llmStr, "public: yes")
	assert.NotContains(t, llmStr, "internal")

	allStr := node.GetMetadataStr(MetadataModeAll)
	assert.Contains(t, allStr, "internal: no")
}

func TestGetMetadataStrExcludesEmbedKeys(t *testing.T) {
	node := NewTextNode("text")
	node.Metadata["title"] = "A Title"
	node.Metadata["author"] = "Someone"
	node.ExcludedEmbedMetadataKeys = []string{"author"}

	embedStr := node.GetMetadataStr(MetadataModeEmbed)
	assert.Contains(t, embedStr, "title: A Title")
	assert.NotContains(t, embedStr, "author")

	// LLM mode is unaffected by the embed exclusions
	llmStr := node.GetMetadataStr(MetadataModeLLM)
	assert.Contains(t, llmStr, "author: Someone")
}

func TestGenerateHashIsStable(t *testing.T) {
	node1 := NewTextNode("same text")
	node2 := NewTextNode("same text")
	assert.Equal(t, node1.GenerateHash(), node2.GenerateHash())

	node2.Text = "different text"
	assert.NotEqual(t, node1.GenerateHash(), node2.GenerateHash())
}

func TestQueryBundleEmbeddingStrings(t *testing.T) {
	qb := QueryBundle{QueryString: "capital of France"}
	assert.Equal(t, []string{"capital of France"}, qb.EmbeddingStrings())

	qb.CustomEmbeddingStrings = []string{"France capital city"}
	assert.Equal(t, []string{"France capital city"}, qb.EmbeddingStrings())
}
