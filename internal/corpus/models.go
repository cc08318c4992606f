// Package corpus defines the chunk collection model and its persisted
// snapshot stores.
package corpus

import "encoding/json"

// Chunk is a windowed slice of a source document together with its
// embedding vector and build-time metadata.
type Chunk struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
	Metadata  Metadata  `json:"metadata"`
}

// Metadata carries the derived classification fields plus any front-matter
// keys passed through from the source document. It serializes as a single
// flat JSON object so the snapshot stays readable by the storefront's
// client-side fallback.
type Metadata struct {
	Source       string  // relative path of the originating document
	Category     string  // first path segment, or "general" for root docs
	IsNavigation bool    // computed once at build time, never at query time
	Importance   float64 // >= 1 always
	Extra        map[string]string
}

// reserved metadata keys; front-matter entries with these names are
// shadowed by the derived fields.
const (
	keySource       = "source"
	keyCategory     = "category"
	keyIsNavigation = "isNavigation"
	keyImportance   = "importance"
)

// MarshalJSON flattens Extra into the same object as the derived fields.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+4)
	for k, v := range m.Extra {
		out[k] = v
	}
	out[keySource] = m.Source
	out[keyCategory] = m.Category
	out[keyIsNavigation] = m.IsNavigation
	out[keyImportance] = m.Importance
	return json.Marshal(out)
}

// UnmarshalJSON splits the flat object back into derived fields and Extra.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Metadata{}
	for key, val := range raw {
		switch key {
		case keySource:
			if err := json.Unmarshal(val, &m.Source); err != nil {
				return err
			}
		case keyCategory:
			if err := json.Unmarshal(val, &m.Category); err != nil {
				return err
			}
		case keyIsNavigation:
			if err := json.Unmarshal(val, &m.IsNavigation); err != nil {
				return err
			}
		case keyImportance:
			if err := json.Unmarshal(val, &m.Importance); err != nil {
				return err
			}
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]string)
			}
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				m.Extra[key] = s
			} else {
				// Non-string front matter is rare; keep the raw text.
				m.Extra[key] = string(val)
			}
		}
	}
	return nil
}

// Corpus is the full ordered collection of chunks built from one pass over
// the source documents. It is written wholesale by the builder and treated
// as read-only by the retrieval service.
type Corpus struct {
	Chunks []Chunk `json:"chunks"`
}

// Len returns the number of chunks in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Chunks)
}

// Categories returns a histogram of chunk categories.
func (c *Corpus) Categories() map[string]int {
	counts := make(map[string]int)
	if c == nil {
		return counts
	}
	for _, chunk := range c.Chunks {
		counts[chunk.Metadata.Category]++
	}
	return counts
}

// ScoredChunk pairs a chunk with its adjusted similarity for one query.
// Scores are transient and never persisted.
type ScoredChunk struct {
	Chunk      Chunk
	Similarity float64
}
