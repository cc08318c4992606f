package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/wovenhouse/support-rag/internal/corpus"
)

// HealthResponse is the JSON body of the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Corpus    string `json:"corpus"`
	Chunks    int    `json:"chunks"`
	Timestamp string `json:"timestamp"`
}

// NewHealthHandler creates the /health endpoint. The server is healthy
// when a corpus snapshot can be loaded; a missing snapshot is degraded but
// still serving (retrieval degrades to empty results).
func NewHealthHandler(store corpus.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		response := HealthResponse{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		w.Header().Set("Content-Type", "application/json")

		c, err := store.Load(ctx)
		if err != nil {
			response.Status = "degraded"
			response.Corpus = "unavailable"
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(response)
			return
		}

		response.Status = "healthy"
		response.Corpus = "available"
		response.Chunks = c.Len()
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}
