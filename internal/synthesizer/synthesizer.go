// Package synthesizer builds the natural-language answer from the
// top-ranked chunks, with a deterministic template fallback when the
// generation capability is unavailable.
package synthesizer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/quaero-ai/quaero/models"
)

const (
	fallbackAnswer = "I couldn't find relevant information to answer your question. Please try rephrasing it or asking about a different topic."

	maxSourceNames  = 3
	snippetLength   = 200
	defaultMaxChunk = 5
)

var intentLeadIns = map[models.Intent]string{
	models.IntentDefinition:  "here's what I found",
	models.IntentProcedural:  "here's how to approach this",
	models.IntentExplanatory: "the key reasons are",
}

// Generator is the pluggable answer-generation capability.
type Generator interface {
	GenerateAnswer(ctx context.Context, query string, contextChunks []string) (string, error)
}

// Synthesizer turns ranked results into an answer string.
type Synthesizer struct {
	gen       Generator
	maxChunks int
	logger    *log.Logger
}

// New creates a synthesizer. gen may be nil, in which case only the
// template fallback is used. maxChunks bounds how many result contents are
// passed as generation context.
func New(gen Generator, maxChunks int) *Synthesizer {
	if maxChunks <= 0 {
		maxChunks = defaultMaxChunk
	}
	return &Synthesizer{
		gen:       gen,
		maxChunks: maxChunks,
		logger:    log.New(log.Writer(), "[SYNTH] ", log.LstdFlags),
	}
}

// Synthesize builds the answer for the query from the ranked results. A
// generation failure degrades to the deterministic template, never to an
// error.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, results []models.SearchResult, intent models.Intent) string {
	if len(results) == 0 {
		return fallbackAnswer
	}

	chunks := make([]string, 0, s.maxChunks)
	for i, res := range results {
		if i >= s.maxChunks {
			break
		}
		chunks = append(chunks, res.Content)
	}

	if s.gen != nil {
		answer, err := s.gen.GenerateAnswer(ctx, query, chunks)
		if err == nil && strings.TrimSpace(answer) != "" {
			return answer
		}
		if err != nil {
			s.logger.Printf("generation failed, using template: %v", err)
		}
	}
	return s.template(results, intent)
}

// template renders the deterministic fallback answer.
func (s *Synthesizer) template(results []models.SearchResult, intent models.Intent) string {
	leadIn, ok := intentLeadIns[intent]
	if !ok {
		leadIn = "here's the most relevant information"
	}

	snippet := results[0].Content
	if len(snippet) > snippetLength {
		snippet = snippet[:snippetLength]
	}

	sources := make([]string, 0, maxSourceNames)
	seen := make(map[string]struct{})
	for _, res := range results {
		if len(sources) == maxSourceNames {
			break
		}
		if _, ok := seen[res.Source]; ok {
			continue
		}
		seen[res.Source] = struct{}{}
		sources = append(sources, res.Source)
	}

	return fmt.Sprintf("Based on %d relevant sources, %s: %s... Sources: %s",
		len(results), leadIn, snippet, strings.Join(sources, ", "))
}
