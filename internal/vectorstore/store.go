// Package vectorstore holds the in-memory vector index. Lookups are a
// linear cosine-similarity scan, which is fine at this system's scale;
// reads run concurrently under an RWMutex while ingestion takes the write
// lock.
package vectorstore

import (
	"math"
	"sort"
	"sync"

	"github.com/quaero-ai/quaero/models"
)

// Store is an append-only collection of (vector, metadata) pairs.
type Store struct {
	mu       sync.RWMutex
	vectors  []models.Vector
	metadata []map[string]interface{}
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Add appends a vector with its metadata. No deduplication at this layer.
func (s *Store) Add(vec models.Vector, meta map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = append(s.vectors, vec)
	s.metadata = append(s.metadata, meta)
}

// Len reports the number of stored vectors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// TopKSimilar returns the k stored entries most similar to query, scores
// sorted descending. Ties keep insertion order. An empty store returns
// empty slices.
func (s *Store) TopKSimilar(query models.Vector, k int) ([]float64, []map[string]interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vectors) == 0 || k <= 0 {
		return []float64{}, []map[string]interface{}{}
	}

	type scored struct {
		idx   int
		score float64
	}
	results := make([]scored, len(s.vectors))
	for i, vec := range s.vectors {
		results[i] = scored{idx: i, score: CosineSimilarity(query, vec)}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}
	scores := make([]float64, k)
	metas := make([]map[string]interface{}, k)
	for i := 0; i < k; i++ {
		scores[i] = results[i].score
		metas[i] = s.metadata[results[i].idx]
	}
	return scores, metas
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero vectors score 0.
func CosineSimilarity(a, b models.Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
