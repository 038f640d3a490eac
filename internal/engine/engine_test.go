package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/quaero-ai/quaero/config"
	"github.com/quaero-ai/quaero/internal/rcache"
	"github.com/quaero-ai/quaero/models"
	"github.com/quaero-ai/quaero/provider"
)

// newTestEngine builds a fresh engine on the deterministic static backends
// with a low confidence threshold, since feature-hash similarities sit well
// below production embedding scores.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Engine.ConfidenceThreshold = 0.05

	providers, err := provider.New(cfg.Providers)
	if err != nil {
		t.Fatalf("providers: %v", err)
	}
	cache := rcache.NewMemory(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	return New(cfg, providers, cache)
}

type downProvider struct{}

func (downProvider) Name() string { return "down" }
func (downProvider) Embed(ctx context.Context, text string) (models.Vector, error) {
	return nil, errors.New("backend down")
}
func (downProvider) GenerateAnswer(ctx context.Context, query string, chunks []string) (string, error) {
	return "", errors.New("backend down")
}

func TestSearchEmptyStore(t *testing.T) {
	eng := newTestEngine(t)
	resp := eng.Search(context.Background(), "what is anything", "u1", nil)

	if len(resp.SourceResults) != 0 {
		t.Fatalf("expected no results on empty store, got %d", len(resp.SourceResults))
	}
	if resp.ConfidenceScore != 0 {
		t.Fatalf("expected zero confidence, got %v", resp.ConfidenceScore)
	}
	if resp.FactCheckStatus != models.FactCheckInsufficientSources {
		t.Fatalf("expected insufficient_sources, got %s", resp.FactCheckStatus)
	}
	if resp.SynthesizedAnswer == "" {
		t.Fatalf("expected an apology answer, got empty string")
	}
}

func TestSearchDefinitionQueryEndToEnd(t *testing.T) {
	eng := newTestEngine(t)
	added := eng.AddDocuments(context.Background(), models.SampleDocuments())
	if added != 3 {
		t.Fatalf("expected 3 documents indexed, got %d", added)
	}

	resp := eng.Search(context.Background(), "What is machine learning?", "u1", nil)

	if resp.QueryIntent != models.IntentDefinition {
		t.Fatalf("expected definition intent, got %s", resp.QueryIntent)
	}
	if len(resp.SourceResults) < 1 {
		t.Fatalf("expected at least one source result")
	}
	switch resp.FactCheckStatus {
	case models.FactCheckVerified, models.FactCheckPartiallyVerified, models.FactCheckSingleSource:
	default:
		t.Fatalf("unexpected fact-check status %s", resp.FactCheckStatus)
	}
	if resp.SourceResults[0].Source != "ml_fundamentals.md" {
		t.Fatalf("expected the ML document ranked first, got %s", resp.SourceResults[0].Source)
	}
	if resp.ConfidenceScore <= 0 {
		t.Fatalf("expected positive confidence, got %v", resp.ConfidenceScore)
	}
	for _, res := range resp.SourceResults {
		if res.ConfidenceScore > res.RelevanceScore {
			t.Fatalf("confidence %v exceeds relevance %v", res.ConfidenceScore, res.RelevanceScore)
		}
	}
	if len(resp.FollowUpQuestions) == 0 || len(resp.FollowUpQuestions) > 3 {
		t.Fatalf("expected 1-3 follow-ups, got %d", len(resp.FollowUpQuestions))
	}
}

func TestSearchNoDuplicateFingerprints(t *testing.T) {
	eng := newTestEngine(t)
	eng.AddDocuments(context.Background(), models.SampleDocuments())

	resp := eng.Search(context.Background(), "what is machine learning", "u1", nil)
	seen := make(map[string]struct{})
	for _, res := range resp.SourceResults {
		if _, ok := seen[res.Content]; ok {
			t.Fatalf("duplicate content in source results")
		}
		seen[res.Content] = struct{}{}
	}
}

func TestSearchCacheHit(t *testing.T) {
	eng := newTestEngine(t)
	eng.AddDocuments(context.Background(), models.SampleDocuments())

	first := eng.Search(context.Background(), "What is machine learning?", "u1", nil)
	second := eng.Search(context.Background(), "What is machine learning?", "u1", nil)

	if second.SynthesizedAnswer != first.SynthesizedAnswer {
		t.Fatalf("cached response differs from original")
	}
	if second.ProcessingTimeMs != first.ProcessingTimeMs {
		t.Fatalf("cache hit should return the stored response verbatim")
	}

	metrics := eng.GetPerformanceMetrics()
	if metrics.QueriesProcessed != 2 {
		t.Fatalf("expected 2 processed queries, got %d", metrics.QueriesProcessed)
	}
	if metrics.CacheHitRate != 0.5 {
		t.Fatalf("expected cache hit rate 0.5, got %v", metrics.CacheHitRate)
	}
}

func TestSearchDistinctFiltersMissCache(t *testing.T) {
	eng := newTestEngine(t)
	eng.Search(context.Background(), "query", "u1", map[string]interface{}{"dept": "eng"})
	eng.Search(context.Background(), "query", "u1", map[string]interface{}{"dept": "sales"})

	if rate := eng.GetPerformanceMetrics().CacheHitRate; rate != 0 {
		t.Fatalf("different filters must not share cache entries, hit rate %v", rate)
	}
}

func TestAddDocumentsSkipsEmptyContent(t *testing.T) {
	eng := newTestEngine(t)
	added := eng.AddDocuments(context.Background(), []models.Document{
		{Content: "", Source: "s"},
		{Content: "   ", Source: "s"},
	})
	if added != 0 {
		t.Fatalf("expected empty documents skipped, got %d", added)
	}
	if eng.DocumentCount() != 0 {
		t.Fatalf("expected empty index, got %d", eng.DocumentCount())
	}
}

func TestConversationHistoryBounded(t *testing.T) {
	eng := newTestEngine(t)
	for i := 0; i < 15; i++ {
		eng.Search(context.Background(), fmt.Sprintf("distinct question number %d", i), "u1", nil)
	}
	if got := eng.HistoryLen("u1"); got != 10 {
		t.Fatalf("expected history bounded at 10, got %d", got)
	}
}

func TestSearchAllBackendsDownReturnsErrorResponse(t *testing.T) {
	cfg := config.Default()
	cache := rcache.NewMemory(time.Hour, 100)
	eng := New(cfg, []provider.Provider{downProvider{}}, cache)

	resp := eng.Search(context.Background(), "anything", "u1", nil)

	if resp.QueryIntent != models.IntentError {
		t.Fatalf("expected error intent, got %s", resp.QueryIntent)
	}
	if resp.ConfidenceScore != 0 {
		t.Fatalf("expected zero confidence, got %v", resp.ConfidenceScore)
	}
	if resp.FactCheckStatus != models.FactCheckError {
		t.Fatalf("expected error fact-check status, got %s", resp.FactCheckStatus)
	}
	if len(resp.FollowUpQuestions) != 2 {
		t.Fatalf("expected two retry follow-ups, got %d", len(resp.FollowUpQuestions))
	}
	if resp.ProcessingTimeMs != 0 {
		t.Fatalf("expected zero processing time on error, got %v", resp.ProcessingTimeMs)
	}
}

func TestSearchConcurrent(t *testing.T) {
	eng := newTestEngine(t)
	eng.AddDocuments(context.Background(), models.SampleDocuments())

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 5; j++ {
				eng.Search(context.Background(), fmt.Sprintf("question %d %d", i, j), fmt.Sprintf("user-%d", i), nil)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	if got := eng.GetPerformanceMetrics().QueriesProcessed; got != 40 {
		t.Fatalf("expected 40 processed queries, got %d", got)
	}
}
