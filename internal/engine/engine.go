// Package engine orchestrates the full query pipeline: cache lookup,
// intent analysis, ensemble embedding, retrieval, ranking, synthesis,
// confidence scoring and metrics. It is the only entry point presentation
// layers consume.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quaero-ai/quaero/config"
	"github.com/quaero-ai/quaero/internal/analyzer"
	"github.com/quaero-ai/quaero/internal/confidence"
	"github.com/quaero-ai/quaero/internal/conversation"
	"github.com/quaero-ai/quaero/internal/ensemble"
	"github.com/quaero-ai/quaero/internal/ranker"
	"github.com/quaero-ai/quaero/internal/rcache"
	"github.com/quaero-ai/quaero/internal/retriever"
	"github.com/quaero-ai/quaero/internal/synthesizer"
	"github.com/quaero-ai/quaero/internal/telemetry"
	"github.com/quaero-ai/quaero/internal/vectorstore"
	"github.com/quaero-ai/quaero/models"
	"github.com/quaero-ai/quaero/provider"
)

// Engine owns every piece of process-wide state (vector index,
// conversation history, cache, metrics). Construct one per process or
// one per test; nothing here is a package-level singleton.
type Engine struct {
	cfg       config.EngineConfig
	ensemble  *ensemble.Ensemble
	store     *vectorstore.Store
	history   *conversation.Store
	analyzer  *analyzer.Analyzer
	retriever *retriever.Retriever
	ranker    *ranker.Ranker
	synth     *synthesizer.Synthesizer
	cache     rcache.Cache
	tele      *telemetry.Telemetry
	logger    *log.Logger
}

// generatorChain tries each provider in order and reports unavailable only
// when none can generate.
type generatorChain []provider.Provider

func (g generatorChain) GenerateAnswer(ctx context.Context, query string, contextChunks []string) (string, error) {
	var lastErr error = provider.ErrGenerationUnavailable
	for _, p := range g {
		answer, err := p.GenerateAnswer(ctx, query, contextChunks)
		if err == nil {
			return answer, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// New wires an engine from configuration, capability providers and a
// response cache.
func New(cfg *config.Config, providers []provider.Provider, cache rcache.Cache) *Engine {
	backends := make([]ensemble.Backend, len(providers))
	for i, p := range providers {
		backends[i] = p
	}

	store := vectorstore.New()
	history := conversation.New(cfg.Conversation.MaxHistory)

	return &Engine{
		cfg:       cfg.Engine,
		ensemble:  ensemble.New(backends, cfg.Engine.EmbedTimeout),
		store:     store,
		history:   history,
		analyzer:  analyzer.New(history),
		retriever: retriever.New(store, cfg.Engine.Damping),
		ranker:    ranker.New(cfg.Engine.ConfidenceThreshold, cfg.Engine.MaxResults),
		synth:     synthesizer.New(generatorChain(providers), cfg.Engine.MaxContextChunks),
		cache:     cache,
		tele:      telemetry.New(cfg.Telemetry.Enabled),
		logger:    log.New(log.Writer(), "[ENGINE] ", log.LstdFlags),
	}
}

// Search answers one query. It always returns a well-formed Response; any
// pipeline failure is folded into an error response rather than surfaced
// as an error or panic.
func (e *Engine) Search(ctx context.Context, query, userID string, filters map[string]interface{}) (resp models.Response) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("search %q panicked: %v", query, r)
			resp = errorResponse(fmt.Sprintf("internal error: %v", r))
		}
	}()

	key := rcache.Key(query, filters)
	if cached, ok := e.cache.Get(key); ok {
		e.tele.RecordSearch(elapsedMs(start), cached.ConfidenceScore, true)
		return cached
	}

	intent := e.analyzer.ClassifyIntent(query)
	expanded := e.analyzer.ExpandQuery(query, userID)

	embeddings, err := e.ensemble.Embed(ctx, expanded)
	if err != nil {
		e.logger.Printf("search %q: %v", query, err)
		return errorResponse(fmt.Sprintf("search failed: %v", err))
	}

	candidates := e.retriever.Retrieve(embeddings, filters, e.cfg.TopK)
	ranked := e.ranker.Rank(candidates, intent)

	answer := e.synth.Synthesize(ctx, query, ranked, intent)
	score := confidence.Score(query, ranked)
	status := confidence.FactCheck(ranked)
	followUps := confidence.FollowUps(query, ranked)

	e.history.Append(userID, conversation.Entry{
		Query:      query,
		Intent:     intent,
		Confidence: score,
		Timestamp:  time.Now(),
	})

	resp = models.Response{
		SynthesizedAnswer: answer,
		SourceResults:     ranked,
		ConfidenceScore:   score,
		QueryIntent:       intent,
		FollowUpQuestions: followUps,
		FactCheckStatus:   status,
		ProcessingTimeMs:  elapsedMs(start),
	}
	e.cache.Put(key, resp)
	e.tele.RecordSearch(resp.ProcessingTimeMs, score, false)
	return resp
}

// AddDocuments embeds and indexes the given documents, skipping ones with
// empty content or failed embeddings. It returns the number actually
// added.
func (e *Engine) AddDocuments(ctx context.Context, docs []models.Document) int {
	added := 0
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		vectors, err := e.ensemble.Embed(ctx, doc.Content)
		if err != nil {
			e.logger.Printf("skipping document from %s: %v", doc.Source, err)
			continue
		}

		// The stored vector comes from the first available backend, in
		// registration order.
		var vec models.Vector
		for _, name := range e.ensemble.Backends() {
			if v, ok := vectors[name]; ok {
				vec = v
				break
			}
		}

		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}
		meta := make(map[string]interface{}, len(doc.Metadata)+3)
		for k, v := range doc.Metadata {
			meta[k] = v
		}
		meta["content"] = doc.Content
		meta["source"] = doc.Source
		meta["chunk_id"] = id

		e.store.Add(vec, meta)
		added++
	}
	return added
}

// GetPerformanceMetrics returns a point-in-time metrics snapshot, safe to
// call concurrently with Search.
func (e *Engine) GetPerformanceMetrics() models.Metrics {
	return e.tele.Snapshot()
}

// Telemetry exposes the engine's telemetry for HTTP wiring.
func (e *Engine) Telemetry() *telemetry.Telemetry {
	return e.tele
}

// HistoryLen reports the conversation history length for a user.
func (e *Engine) HistoryLen(userID string) int {
	return e.history.Len(userID)
}

// DocumentCount reports the number of indexed documents.
func (e *Engine) DocumentCount() int {
	return e.store.Len()
}

func errorResponse(message string) models.Response {
	return models.Response{
		SynthesizedAnswer: message,
		SourceResults:     []models.SearchResult{},
		ConfidenceScore:   0,
		QueryIntent:       models.IntentError,
		FollowUpQuestions: []string{
			"Please try again in a moment.",
			"Try rephrasing your question.",
		},
		FactCheckStatus:  models.FactCheckError,
		ProcessingTimeMs: 0,
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
