// Package ranker scores corpus chunks against a query embedding using
// cosine similarity adjusted by the build-time classifier signals.
package ranker

import (
	"math"
	"sort"

	"github.com/wovenhouse/support-rag/internal/corpus"
)

const (
	// DefaultTopK is the result count for general queries.
	DefaultTopK = 5

	// DefaultNavigationTopK is the result count for navigation-only
	// queries.
	DefaultNavigationTopK = 3

	// NavigationBoost multiplies the similarity of navigation chunks when
	// the query itself has navigation intent.
	NavigationBoost = 1.5

	// importanceDivisor converts the importance weight into a scaling
	// factor of 1 + importance/importanceDivisor.
	importanceDivisor = 10
)

// Cosine computes the cosine similarity of two equal-length vectors,
// accumulating in float64. Zero-magnitude inputs yield 0 rather than NaN.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	sim := dot / denom
	if math.IsNaN(sim) {
		return 0
	}
	return sim
}

// Rank scores every chunk in the corpus against the query vector and
// returns up to topK results ordered by adjusted similarity, descending.
// When navigationBoost is true, navigation chunks get a 1.5x boost before
// the always-applied importance scaling. Ties keep corpus order. A topK
// of 0 or less selects DefaultTopK.
func Rank(query []float32, c *corpus.Corpus, topK int, navigationBoost bool) []corpus.ScoredChunk {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return rank(query, c, topK, navigationBoost, false)
}

// RankNavigationOnly restricts ranking to navigation chunks. The boost is
// skipped since every candidate is already navigational; importance
// scaling still applies. A topK of 0 or less selects
// DefaultNavigationTopK.
func RankNavigationOnly(query []float32, c *corpus.Corpus, topK int) []corpus.ScoredChunk {
	if topK <= 0 {
		topK = DefaultNavigationTopK
	}
	return rank(query, c, topK, false, true)
}

func rank(query []float32, c *corpus.Corpus, topK int, boost, navigationOnly bool) []corpus.ScoredChunk {
	if c.Len() == 0 {
		return nil
	}

	scored := make([]corpus.ScoredChunk, 0, c.Len())
	for _, chunk := range c.Chunks {
		if navigationOnly && !chunk.Metadata.IsNavigation {
			continue
		}
		if !wellFormed(chunk, len(query)) {
			continue
		}

		sim := Cosine(query, chunk.Embedding)
		if boost && chunk.Metadata.IsNavigation {
			sim *= NavigationBoost
		}
		sim *= 1 + chunk.Metadata.Importance/importanceDivisor

		scored = append(scored, corpus.ScoredChunk{Chunk: chunk, Similarity: sim})
	}

	// Stable keeps corpus order for exact ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// wellFormed filters malformed persisted chunks: missing required fields
// or an embedding whose dimensionality does not match the query vector.
// Such chunks are skipped rather than failing the whole query.
func wellFormed(chunk corpus.Chunk, dim int) bool {
	if chunk.Text == "" || chunk.Metadata.Source == "" {
		return false
	}
	return len(chunk.Embedding) == dim
}
