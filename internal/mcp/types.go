// Package mcp exposes the retrieval service over the Model Context
// Protocol for the storefront's chat feature.
package mcp

// SearchSupportInput defines the input parameters for the search_support
// tool.
type SearchSupportInput struct {
	// Query is the user's support question.
	Query string `json:"query" jsonschema:"required,description=The support question to find relevant documentation for"`
	// MaxResults is the maximum number of chunks to return.
	MaxResults int `json:"max_results,omitempty" jsonschema:"minimum=1,maximum=20,default=5,description=Maximum number of chunks to return"`
}

// SupportResult is one ranked chunk from the corpus.
type SupportResult struct {
	// Source is the originating document path.
	Source string `json:"source"`
	// Category is the document's content category.
	Category string `json:"category"`
	// Title is the document title when known.
	Title string `json:"title,omitempty"`
	// Score is the adjusted similarity for this query.
	Score float64 `json:"score"`
	// Text is the chunk text.
	Text string `json:"text"`
	// IsNavigation marks wayfinding content.
	IsNavigation bool `json:"is_navigation"`
}

// SearchSupportOutput contains ranked chunks plus a pre-assembled context
// block the chat feature can paste into its prompt.
type SearchSupportOutput struct {
	Results []SupportResult `json:"results"`
	// Topics are the distinct categories covered by the results.
	Topics []string `json:"topics,omitempty"`
	// Context concatenates the result texts for prompt assembly.
	Context string `json:"context,omitempty"`
	// Message provides informational context (e.g. "no matches").
	Message string `json:"message,omitempty"`
}

// NavigationHelpInput defines the input parameters for the
// navigation_help tool.
type NavigationHelpInput struct {
	// Query is the wayfinding question.
	Query string `json:"query" jsonschema:"required,description=The wayfinding question (where to find a page or feature)"`
	// MaxResults is the maximum number of chunks to return.
	MaxResults int `json:"max_results,omitempty" jsonschema:"minimum=1,maximum=10,default=3,description=Maximum number of chunks to return"`
}

// NavigationHelpOutput contains navigation-only results.
type NavigationHelpOutput struct {
	Results []SupportResult `json:"results"`
	Message string          `json:"message,omitempty"`
}

// ListTopicsInput defines the input parameters for the list_topics tool.
type ListTopicsInput struct {
	// Query is the question to summarize topics for.
	Query string `json:"query" jsonschema:"required,description=The question to list relevant documentation topics for"`
}

// ListTopicsOutput contains the distinct categories relevant to a query.
type ListTopicsOutput struct {
	Topics []string `json:"topics"`
	Count  int      `json:"count"`
}

// StatusInput defines the input for the get_corpus_status tool. It takes
// no parameters.
type StatusInput struct{}

// StatusOutput describes the current corpus snapshot.
type StatusOutput struct {
	// TotalChunks is the number of chunks in the snapshot.
	TotalChunks int `json:"total_chunks"`
	// NavigationChunks counts chunks flagged as navigation content.
	NavigationChunks int `json:"navigation_chunks"`
	// Categories is a histogram of chunk categories.
	Categories map[string]int `json:"categories"`
	// SnapshotUpdatedAt is when the snapshot was last written, RFC 3339.
	// Empty when the store cannot report it.
	SnapshotUpdatedAt string `json:"snapshot_updated_at,omitempty"`
}
