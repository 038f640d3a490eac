// Package retriever turns per-backend query vectors into candidate search
// results by querying the vector store once per backend.
package retriever

import (
	"fmt"
	"sort"

	"github.com/quaero-ai/quaero/internal/vectorstore"
	"github.com/quaero-ai/quaero/models"
)

// Retriever queries the store with every backend's vector and assembles
// SearchResults. Deduplication across backends is the ranker's job.
type Retriever struct {
	store   *vectorstore.Store
	damping float64
}

// New creates a retriever. damping scales relevance into per-result
// confidence and must be below 1.
func New(store *vectorstore.Store, damping float64) *Retriever {
	if damping <= 0 || damping >= 1 {
		damping = 0.9
	}
	return &Retriever{store: store, damping: damping}
}

// Retrieve runs TopKSimilar per backend vector and concatenates the
// results. Backends are visited in name order so output is deterministic
// for a fixed store. filters is threaded through for future metadata
// narrowing; it does not restrict the in-memory scan today.
func (r *Retriever) Retrieve(embeddings map[string]models.Vector, filters map[string]interface{}, k int) []models.SearchResult {
	backends := make([]string, 0, len(embeddings))
	for name := range embeddings {
		backends = append(backends, name)
	}
	sort.Strings(backends)

	_ = filters

	var results []models.SearchResult
	for _, backend := range backends {
		scores, metas := r.store.TopKSimilar(embeddings[backend], k)
		for i, score := range scores {
			meta := metas[i]
			chunkID, _ := meta["chunk_id"].(string)
			if chunkID == "" {
				chunkID = fmt.Sprintf("chunk_%s_%d", backend, i)
			}
			content, _ := meta["content"].(string)
			source, _ := meta["source"].(string)
			results = append(results, models.SearchResult{
				Content:         content,
				Source:          source,
				RelevanceScore:  score,
				ConfidenceScore: score * r.damping,
				ChunkID:         chunkID,
				Metadata:        meta,
			})
		}
	}
	return results
}
