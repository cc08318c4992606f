// Package retrieval is the online entry point: embed a query, load the
// persisted corpus and return the top ranked chunks for the chat feature's
// prompt context.
package retrieval

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wovenhouse/support-rag/internal/classify"
	"github.com/wovenhouse/support-rag/internal/corpus"
	"github.com/wovenhouse/support-rag/internal/ranker"
)

// QueryEmbedder generates the embedding vector for a query string.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// Service answers per-query retrieval requests against the persisted
// corpus, which it treats as read-only.
type Service struct {
	store    corpus.Store
	embedder QueryEmbedder
	logger   *slog.Logger
}

// NewService creates a retrieval service.
func NewService(store corpus.Store, embedder QueryEmbedder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		embedder: embedder,
		logger:   logger,
	}
}

// Retrieve returns up to topK chunks ranked by adjusted similarity to the
// query. Navigation-intent queries boost navigation chunks. A topK of 0 or
// less selects the default.
//
// Failures never propagate to the caller: a missing corpus or a failed
// embedding call degrades to an empty result with the cause logged, and
// the chat feature handles "no context found" as a normal case.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) []corpus.ScoredChunk {
	c, ok := s.loadCorpus(ctx)
	if !ok {
		return nil
	}

	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Error("query embedding failed", "error", err)
		return nil
	}

	return ranker.Rank(vec, c, topK, classify.IsNavigationQuery(query))
}

// RetrieveNavigation restricts retrieval to navigation chunks, for
// wayfinding answers. Failure handling matches Retrieve.
func (s *Service) RetrieveNavigation(ctx context.Context, query string, topK int) []corpus.ScoredChunk {
	c, ok := s.loadCorpus(ctx)
	if !ok {
		return nil
	}

	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Error("query embedding failed", "error", err)
		return nil
	}

	return ranker.RankNavigationOnly(vec, c, topK)
}

func (s *Service) loadCorpus(ctx context.Context) (*corpus.Corpus, bool) {
	c, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, corpus.ErrCorpusUnavailable) {
			s.logger.Warn("no corpus snapshot available", "error", err)
		} else {
			s.logger.Error("corpus load failed", "error", err)
		}
		return nil, false
	}
	if c.Len() == 0 {
		s.logger.Warn("corpus snapshot is empty")
		return nil, false
	}
	return c, true
}

// MainTopics returns the distinct categories of a result set in first-seen
// order, for lightweight topic summarization.
func MainTopics(chunks []corpus.ScoredChunk) []string {
	seen := make(map[string]bool, len(chunks))
	var topics []string
	for _, sc := range chunks {
		category := sc.Chunk.Metadata.Category
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		topics = append(topics, category)
	}
	return topics
}
