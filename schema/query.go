package schema

// QueryBundle encapsulates the query string and optional auxiliary fields.
// It is treated as read-only by every consumer.
type QueryBundle struct {
	QueryString string `json:"query_string"`
	// CustomEmbeddingStrings are alternative strings to embed in place of
	// the query string. Owned by the caller; unused by the empty index.
	CustomEmbeddingStrings []string  `json:"custom_embedding_strings,omitempty"`
	Embedding              []float64 `json:"embedding,omitempty"`
}

// EmbeddingStrings returns the strings used for embedding the query.
func (qb QueryBundle) EmbeddingStrings() []string {
	if len(qb.CustomEmbeddingStrings) > 0 {
		return qb.CustomEmbeddingStrings
	}
	return []string{qb.QueryString}
}

// NodeWithScore represents a node annotated with a relevance score.
type NodeWithScore struct {
	Node  *Node   `json:"node"`
	Score float64 `json:"score"`
}
