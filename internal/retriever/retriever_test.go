package retriever

import (
	"math"
	"testing"

	"github.com/quaero-ai/quaero/internal/vectorstore"
	"github.com/quaero-ai/quaero/models"
)

func seededStore() *vectorstore.Store {
	s := vectorstore.New()
	s.Add(models.Vector{1, 0}, map[string]interface{}{
		"content":  "first document",
		"source":   "a.md",
		"chunk_id": "doc-a",
	})
	s.Add(models.Vector{0, 1}, map[string]interface{}{
		"content": "second document",
		"source":  "b.md",
	})
	return s
}

func TestRetrieveBuildsResults(t *testing.T) {
	r := New(seededStore(), 0.9)
	embeddings := map[string]models.Vector{"backend": {1, 0}}

	results := r.Retrieve(embeddings, nil, 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	top := results[0]
	if top.Content != "first document" || top.Source != "a.md" {
		t.Fatalf("unexpected top result: %+v", top)
	}
	if top.ChunkID != "doc-a" {
		t.Fatalf("expected chunk id from metadata, got %s", top.ChunkID)
	}
	if math.Abs(top.ConfidenceScore-top.RelevanceScore*0.9) > 1e-9 {
		t.Fatalf("confidence not damped: %v vs %v", top.ConfidenceScore, top.RelevanceScore)
	}
}

func TestRetrieveSynthesizesChunkID(t *testing.T) {
	r := New(seededStore(), 0.9)
	embeddings := map[string]models.Vector{"backend": {0, 1}}

	results := r.Retrieve(embeddings, nil, 10)
	// The b.md document has no chunk_id in metadata; it ranks first for
	// this query vector, so it gets the synthesized id for index 0.
	if results[0].ChunkID != "chunk_backend_0" {
		t.Fatalf("expected synthesized chunk id, got %s", results[0].ChunkID)
	}
}

func TestRetrieveConcatenatesAcrossBackends(t *testing.T) {
	r := New(seededStore(), 0.9)
	embeddings := map[string]models.Vector{
		"b2": {0, 1},
		"b1": {1, 0},
	}

	results := r.Retrieve(embeddings, nil, 1)
	if len(results) != 2 {
		t.Fatalf("expected one result per backend, got %d", len(results))
	}
	// Backends are visited in name order.
	if results[0].Content != "first document" || results[1].Content != "second document" {
		t.Fatalf("unexpected backend order: %q, %q", results[0].Content, results[1].Content)
	}
}

func TestRetrieveEmptyEmbeddings(t *testing.T) {
	r := New(seededStore(), 0.9)
	if results := r.Retrieve(nil, nil, 10); len(results) != 0 {
		t.Fatalf("expected no results without embeddings, got %d", len(results))
	}
}
