// Package builder runs the offline batch pass: walk the content tree,
// chunk and classify each document, embed every chunk, and persist the
// resulting corpus snapshot.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wovenhouse/support-rag/internal/chunker"
	"github.com/wovenhouse/support-rag/internal/classify"
	"github.com/wovenhouse/support-rag/internal/corpus"
	"github.com/wovenhouse/support-rag/internal/docfile"
	"github.com/wovenhouse/support-rag/internal/source"
)

// DefaultCategory is assigned to documents at the content root, which have
// no directory to derive a category from.
const DefaultCategory = "general"

// Embedder generates embedding vectors for a batch of texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// BuildResult contains statistics about one build pass.
type BuildResult struct {
	TotalDocs      int
	TotalChunks    int
	SuccessfulDocs int
	FailedDocs     []FailedDoc
	Duration       time.Duration
}

// FailedDoc records a document whose processing failed. Failures are per
// document; the build continues without their chunks.
type FailedDoc struct {
	Path   string
	Reason string
}

// Pipeline orchestrates one corpus build from source enumeration to the
// persisted snapshot.
type Pipeline struct {
	source       source.Source
	embedder     Embedder
	store        corpus.Store
	logger       *slog.Logger
	chunkSize    int
	chunkOverlap int
}

// NewPipeline creates a build pipeline with default chunking parameters.
func NewPipeline(src source.Source, embedder Embedder, store corpus.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		source:       src,
		embedder:     embedder,
		store:        store,
		logger:       logger,
		chunkSize:    chunker.DefaultSize,
		chunkOverlap: chunker.DefaultOverlap,
	}
}

// SetChunking overrides the chunk window size and overlap.
func (p *Pipeline) SetChunking(size, overlap int) {
	p.chunkSize = size
	p.chunkOverlap = overlap
}

// Build processes every document and persists the corpus wholesale,
// replacing any previous snapshot. A single document's failure is logged
// and skipped; the build itself fails only if the sources cannot be listed
// or the snapshot cannot be written.
func (p *Pipeline) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{}

	paths, err := p.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	result.TotalDocs = len(paths)
	p.logger.Info("Starting corpus build", "documents", len(paths))

	built := &corpus.Corpus{}
	for _, path := range paths {
		chunks, err := p.processDocument(ctx, path)
		if err != nil {
			p.logger.Warn("Failed to process document", "path", path, "error", err)
			result.FailedDocs = append(result.FailedDocs, FailedDoc{
				Path:   path,
				Reason: err.Error(),
			})
			continue
		}
		built.Chunks = append(built.Chunks, chunks...)
		result.SuccessfulDocs++
		result.TotalChunks += len(chunks)
	}

	if err := p.store.Save(ctx, built); err != nil {
		return nil, fmt.Errorf("persist corpus: %w", err)
	}

	result.Duration = time.Since(start)
	p.logger.Info("Corpus build complete",
		"successful", result.SuccessfulDocs,
		"failed", len(result.FailedDocs),
		"chunks", result.TotalChunks,
		"duration", result.Duration,
	)
	return result, nil
}

// processDocument handles the full pipeline for one document and returns
// its chunks.
func (p *Pipeline) processDocument(ctx context.Context, path string) ([]corpus.Chunk, error) {
	doc, err := p.source.Fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	frontMatter, body := docfile.ParseFrontMatter(doc.Content)
	if strings.TrimSpace(body) == "" {
		p.logger.Debug("Skipping empty document", "path", path)
		return nil, nil
	}

	extra := make(map[string]string, len(frontMatter)+1)
	for k, v := range frontMatter {
		extra[k] = v
	}
	if _, ok := extra["title"]; !ok {
		if outline := docfile.ExtractOutline([]byte(body)); outline.Title != "" {
			extra["title"] = outline.Title
		}
	}

	category := deriveCategory(path)

	windows := chunker.Split(body, p.chunkSize, p.chunkOverlap)
	texts := make([]string, 0, len(windows))
	for _, w := range windows {
		if strings.TrimSpace(w) != "" {
			texts = append(texts, w)
		}
	}
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embed: got %d vectors for %d chunks", len(embeddings), len(texts))
	}

	chunks := make([]corpus.Chunk, 0, len(texts))
	for i, text := range texts {
		meta := corpus.Metadata{
			Source:   path,
			Category: category,
			Extra:    extra,
		}
		meta.IsNavigation = classify.IsNavigationContent(text, meta)
		meta.Importance = classify.CalculateImportance(text, meta)

		chunks = append(chunks, corpus.Chunk{
			ID:        uuid.New().String(),
			Text:      text,
			Embedding: embeddings[i],
			Metadata:  meta,
		})
	}

	p.logger.Info("Indexed document", "path", path, "chunks", len(chunks))
	return chunks, nil
}

// deriveCategory maps a document path to its category: the first path
// segment for nested documents, DefaultCategory for root-level ones.
func deriveCategory(path string) string {
	dir, _, found := strings.Cut(path, "/")
	if !found {
		return DefaultCategory
	}
	return strings.ToLower(dir)
}
