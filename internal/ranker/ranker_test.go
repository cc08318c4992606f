package ranker

import (
	"math"
	"testing"

	"github.com/wovenhouse/support-rag/internal/corpus"
)

func chunk(id, text, source string, embedding []float32, nav bool, importance float64) corpus.Chunk {
	return corpus.Chunk{
		ID:        id,
		Text:      text,
		Embedding: embedding,
		Metadata: corpus.Metadata{
			Source:       source,
			Category:     "general",
			IsNavigation: nav,
			Importance:   importance,
		},
	}
}

// TestCosine_Bounds verifies similarity stays in [-1, 1] and identical
// vectors score 1.
func TestCosine_Bounds(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.5, 0.5, 0.7},
		{-1, 2, -3},
		{0.001, 100, -0.5},
	}

	for _, v := range vectors {
		self := Cosine(v, v)
		if math.Abs(self-1) > 1e-9 {
			t.Errorf("Cosine(v, v) = %v, want 1", self)
		}
		for _, w := range vectors {
			sim := Cosine(v, w)
			if sim < -1-1e-9 || sim > 1+1e-9 {
				t.Errorf("Cosine out of bounds: %v", sim)
			}
		}
	}
}

// TestCosine_Degenerate verifies zero vectors and length mismatches yield
// 0 instead of NaN.
func TestCosine_Degenerate(t *testing.T) {
	if sim := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3}); sim != 0 {
		t.Errorf("zero vector: got %v", sim)
	}
	if sim := Cosine([]float32{1, 2}, []float32{1, 2, 3}); sim != 0 {
		t.Errorf("length mismatch: got %v", sim)
	}
	if sim := Cosine(nil, nil); sim != 0 {
		t.Errorf("nil vectors: got %v", sim)
	}
}

// TestRank_OrderAndTruncation verifies descending order and the topK cap.
func TestRank_OrderAndTruncation(t *testing.T) {
	query := []float32{1, 0}
	c := &corpus.Corpus{Chunks: []corpus.Chunk{
		chunk("low", "low", "a.md", []float32{0, 1}, false, 1),   // sim 0
		chunk("high", "high", "b.md", []float32{1, 0}, false, 1), // sim 1
		chunk("mid", "mid", "c.md", []float32{1, 1}, false, 1),   // sim ~0.707
		chunk("neg", "neg", "d.md", []float32{-1, 0}, false, 1),  // sim -1
	}}

	results := Rank(query, c, 3, false)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if results[i].Chunk.ID != want {
			t.Errorf("Position %d: got %s, want %s", i, results[i].Chunk.ID, want)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Error("Results not in descending order")
		}
	}
}

// TestRank_StableTies verifies exact ties keep corpus order.
func TestRank_StableTies(t *testing.T) {
	query := []float32{1, 0}
	c := &corpus.Corpus{Chunks: []corpus.Chunk{
		chunk("first", "t", "a.md", []float32{1, 0}, false, 1),
		chunk("second", "t", "b.md", []float32{2, 0}, false, 1), // same direction, same cosine
		chunk("third", "t", "c.md", []float32{3, 0}, false, 1),
	}}

	results := Rank(query, c, 5, false)
	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if results[i].Chunk.ID != want {
			t.Errorf("Position %d: got %s, want %s", i, results[i].Chunk.ID, want)
		}
	}
}

// TestRank_NavigationBoost verifies a navigation chunk with equal raw
// similarity ranks strictly ahead when the boost is enabled.
func TestRank_NavigationBoost(t *testing.T) {
	query := []float32{1, 0}
	c := &corpus.Corpus{Chunks: []corpus.Chunk{
		chunk("plain", "wool info", "care/wool.md", []float32{1, 0}, false, 1),
		chunk("nav", "menu info", "nav.md", []float32{1, 0}, true, 1),
	}}

	boosted := Rank(query, c, 2, true)
	if boosted[0].Chunk.ID != "nav" {
		t.Error("Navigation chunk should rank first with boost enabled")
	}
	if boosted[0].Similarity <= boosted[1].Similarity {
		t.Error("Boosted similarity should be strictly greater")
	}

	// Without the boost the tie resolves by corpus order.
	unboosted := Rank(query, c, 2, false)
	if unboosted[0].Chunk.ID != "plain" {
		t.Error("Without boost, corpus order should decide the tie")
	}
}

// TestRank_ImportanceScaling verifies the 1 + importance/10 multiplier is
// always applied.
func TestRank_ImportanceScaling(t *testing.T) {
	query := []float32{1, 0}
	c := &corpus.Corpus{Chunks: []corpus.Chunk{
		chunk("light", "t", "a.md", []float32{1, 0}, false, 1),
		chunk("heavy", "t", "b.md", []float32{1, 0}, false, 3),
	}}

	results := Rank(query, c, 2, false)
	if results[0].Chunk.ID != "heavy" {
		t.Error("Higher importance should rank first at equal cosine")
	}
	if math.Abs(results[0].Similarity-1.3) > 1e-9 {
		t.Errorf("heavy similarity: got %v, want 1.3", results[0].Similarity)
	}
	if math.Abs(results[1].Similarity-1.1) > 1e-9 {
		t.Errorf("light similarity: got %v, want 1.1", results[1].Similarity)
	}
}

// TestRank_SkipsMalformedChunks verifies chunks with missing fields or the
// wrong dimensionality are skipped, not fatal.
func TestRank_SkipsMalformedChunks(t *testing.T) {
	query := []float32{1, 0}
	c := &corpus.Corpus{Chunks: []corpus.Chunk{
		chunk("good", "t", "a.md", []float32{1, 0}, false, 1),
		chunk("wrongdim", "t", "b.md", []float32{1, 0, 0}, false, 1),
		chunk("notext", "", "c.md", []float32{1, 0}, false, 1),
		{ID: "nosource", Text: "t", Embedding: []float32{1, 0}, Metadata: corpus.Metadata{Importance: 1}},
	}}

	results := Rank(query, c, 10, false)
	if len(results) != 1 || results[0].Chunk.ID != "good" {
		t.Errorf("Expected only the well-formed chunk, got %d results", len(results))
	}
}

// TestRankNavigationOnly verifies candidate filtering, the skipped boost
// and the default topK of 3.
func TestRankNavigationOnly(t *testing.T) {
	query := []float32{1, 0}
	c := &corpus.Corpus{Chunks: []corpus.Chunk{
		chunk("nav1", "t", "a.md", []float32{1, 0}, true, 1),
		chunk("plain", "t", "b.md", []float32{1, 0}, false, 1),
		chunk("nav2", "t", "c.md", []float32{1, 1}, true, 1),
		chunk("nav3", "t", "d.md", []float32{0, 1}, true, 1),
		chunk("nav4", "t", "e.md", []float32{1, 2}, true, 1),
	}}

	results := RankNavigationOnly(query, c, 0)
	if len(results) != 3 {
		t.Fatalf("Expected default topK of 3, got %d", len(results))
	}
	for _, r := range results {
		if !r.Chunk.Metadata.IsNavigation {
			t.Errorf("Non-navigation chunk %s in navigation-only results", r.Chunk.ID)
		}
	}

	// No boost: nav1 at cosine 1, importance 1 → 1.1 exactly.
	if math.Abs(results[0].Similarity-1.1) > 1e-9 {
		t.Errorf("Boost should be skipped: got %v", results[0].Similarity)
	}
}

// TestRank_EndToEndScenario reproduces the worked scoring example: a
// navigational query over one navigation and one content chunk with equal
// raw cosine similarity.
func TestRank_EndToEndScenario(t *testing.T) {
	// Both embeddings at cosine 0.6 to the query vector.
	query := []float32{1, 0}
	emb := []float32{0.6, 0.8}

	a := chunk("A", "Find the homepage navigation menu", "nav/menu.md", emb, true, 3.5)
	b := chunk("B", "Our wool fabric is sourced from Italy", "care/wool.md", emb, false, 1.0)
	c := &corpus.Corpus{Chunks: []corpus.Chunk{b, a}}

	results := Rank(query, c, 5, true)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if results[0].Chunk.ID != "A" || results[1].Chunk.ID != "B" {
		t.Fatalf("Expected [A, B], got [%s, %s]", results[0].Chunk.ID, results[1].Chunk.ID)
	}
	if math.Abs(results[0].Similarity-1.215) > 1e-6 {
		t.Errorf("A adjusted score: got %v, want 1.215", results[0].Similarity)
	}
	if math.Abs(results[1].Similarity-0.66) > 1e-6 {
		t.Errorf("B adjusted score: got %v, want 0.66", results[1].Similarity)
	}
}

// TestRank_EmptyCorpus verifies nil and empty corpora rank to nothing.
func TestRank_EmptyCorpus(t *testing.T) {
	if results := Rank([]float32{1}, &corpus.Corpus{}, 5, false); len(results) != 0 {
		t.Error("Empty corpus should yield no results")
	}
	if results := Rank([]float32{1}, nil, 5, false); len(results) != 0 {
		t.Error("Nil corpus should yield no results")
	}
}
