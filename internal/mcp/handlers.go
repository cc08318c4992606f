package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wovenhouse/support-rag/internal/corpus"
	"github.com/wovenhouse/support-rag/internal/retrieval"
)

// toSupportResults converts ranked chunks into the tool output shape.
func toSupportResults(chunks []corpus.ScoredChunk) []SupportResult {
	results := make([]SupportResult, 0, len(chunks))
	for _, sc := range chunks {
		results = append(results, SupportResult{
			Source:       sc.Chunk.Metadata.Source,
			Category:     sc.Chunk.Metadata.Category,
			Title:        sc.Chunk.Metadata.Extra["title"],
			Score:        sc.Similarity,
			Text:         sc.Chunk.Text,
			IsNavigation: sc.Chunk.Metadata.IsNavigation,
		})
	}
	return results
}

// assembleContext concatenates result texts with their sources into one
// block the chat feature can paste into its prompt.
func assembleContext(chunks []corpus.ScoredChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	parts := make([]string, 0, len(chunks))
	for _, sc := range chunks {
		parts = append(parts, fmt.Sprintf("[%s]\n%s", sc.Chunk.Metadata.Source, sc.Chunk.Text))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// makeSearchHandler creates the search_support tool handler. Retrieval
// failures surface as an empty result set with a message, never as a tool
// error, so the chat feature can treat "no context" as normal.
func makeSearchHandler(svc *retrieval.Service) func(
	context.Context, *mcp.CallToolRequest, SearchSupportInput,
) (*mcp.CallToolResult, SearchSupportOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchSupportInput) (
		*mcp.CallToolResult, SearchSupportOutput, error,
	) {
		chunks := svc.Retrieve(ctx, input.Query, input.MaxResults)
		if len(chunks) == 0 {
			return nil, SearchSupportOutput{
				Results: []SupportResult{},
				Message: "No matching documentation found. Try broader terms.",
			}, nil
		}

		return nil, SearchSupportOutput{
			Results: toSupportResults(chunks),
			Topics:  retrieval.MainTopics(chunks),
			Context: assembleContext(chunks),
		}, nil
	}
}

// makeNavigationHandler creates the navigation_help tool handler, which
// answers wayfinding questions from navigation chunks only.
func makeNavigationHandler(svc *retrieval.Service) func(
	context.Context, *mcp.CallToolRequest, NavigationHelpInput,
) (*mcp.CallToolResult, NavigationHelpOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input NavigationHelpInput) (
		*mcp.CallToolResult, NavigationHelpOutput, error,
	) {
		chunks := svc.RetrieveNavigation(ctx, input.Query, input.MaxResults)
		if len(chunks) == 0 {
			return nil, NavigationHelpOutput{
				Results: []SupportResult{},
				Message: "No navigation help found for this question.",
			}, nil
		}

		return nil, NavigationHelpOutput{Results: toSupportResults(chunks)}, nil
	}
}

// makeTopicsHandler creates the list_topics tool handler.
func makeTopicsHandler(svc *retrieval.Service) func(
	context.Context, *mcp.CallToolRequest, ListTopicsInput,
) (*mcp.CallToolResult, ListTopicsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListTopicsInput) (
		*mcp.CallToolResult, ListTopicsOutput, error,
	) {
		chunks := svc.Retrieve(ctx, input.Query, 0)
		topics := retrieval.MainTopics(chunks)
		if topics == nil {
			topics = []string{}
		}
		return nil, ListTopicsOutput{Topics: topics, Count: len(topics)}, nil
	}
}

// snapshotTimer is implemented by stores that can report when their
// snapshot was last written.
type snapshotTimer interface {
	ModTime() (time.Time, error)
}

// makeStatusHandler creates the get_corpus_status tool handler.
func makeStatusHandler(store corpus.Store) func(
	context.Context, *mcp.CallToolRequest, StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (
		*mcp.CallToolResult, StatusOutput, error,
	) {
		c, err := store.Load(ctx)
		if err != nil {
			// An empty status, not a tool error: the index may simply not
			// be built yet.
			return nil, StatusOutput{Categories: map[string]int{}}, nil
		}

		navigation := 0
		for _, chunk := range c.Chunks {
			if chunk.Metadata.IsNavigation {
				navigation++
			}
		}

		out := StatusOutput{
			TotalChunks:      c.Len(),
			NavigationChunks: navigation,
			Categories:       c.Categories(),
		}
		if timer, ok := store.(snapshotTimer); ok {
			if mt, err := timer.ModTime(); err == nil {
				out.SnapshotUpdatedAt = mt.UTC().Format(time.RFC3339)
			}
		}
		return nil, out, nil
	}
}
