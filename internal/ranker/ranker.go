// Package ranker deduplicates, boosts and orders retrieved results. The
// pipeline order Dedup -> ApplyIntentBoost -> RankAndFilter is fixed;
// reordering the stages changes outcomes.
package ranker

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/quaero-ai/quaero/models"
)

const (
	boostPerMatch = 0.1
	boostCap      = 1.3
)

// boostKeywords mirrors the analyzer's classifier vocabulary per intent.
// Informational queries carry no boost vocabulary.
var boostKeywords = map[models.Intent][]string{
	models.IntentDefinition:     {"define", "definition", "meaning", "is", "what"},
	models.IntentProcedural:     {"how", "step", "tutorial", "guide", "process"},
	models.IntentExplanatory:    {"why", "reason", "because", "cause", "explain"},
	models.IntentLocational:     {"where", "location", "place", "region"},
	models.IntentTemporal:       {"when", "time", "date", "schedule", "period"},
	models.IntentComparative:    {"compare", "difference", "versus", "contrast"},
	models.IntentRecommendation: {"best", "recommend", "suggest", "should", "prefer"},
}

// Ranker applies the fixed dedup/boost/rank pipeline.
type Ranker struct {
	threshold  float64
	maxResults int
}

// New creates a ranker with a per-result confidence threshold and an output
// size cap.
func New(threshold float64, maxResults int) *Ranker {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Ranker{threshold: threshold, maxResults: maxResults}
}

// Rank runs the full pipeline in its mandated order.
func (r *Ranker) Rank(results []models.SearchResult, intent models.Intent) []models.SearchResult {
	return r.RankAndFilter(ApplyIntentBoost(Dedup(results), intent))
}

// Fingerprint returns the content fingerprint used for deduplication.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Dedup keeps only the first occurrence of each content fingerprint,
// preserving relative order.
func Dedup(results []models.SearchResult) []models.SearchResult {
	seen := make(map[string]struct{}, len(results))
	out := make([]models.SearchResult, 0, len(results))
	for _, res := range results {
		fp := Fingerprint(res.Content)
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, res)
	}
	return out
}

// ApplyIntentBoost multiplies each result's relevance by
// min(1 + 0.1*matches, 1.3), where matches counts intent keywords found in
// the content (case-insensitive substring match). Confidence is untouched,
// so it stays below relevance.
func ApplyIntentBoost(results []models.SearchResult, intent models.Intent) []models.SearchResult {
	keywords := boostKeywords[intent]
	if len(keywords) == 0 {
		return results
	}
	out := make([]models.SearchResult, len(results))
	copy(out, results)
	for i := range out {
		content := strings.ToLower(out[i].Content)
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				matches++
			}
		}
		multiplier := 1 + boostPerMatch*float64(matches)
		if multiplier > boostCap {
			multiplier = boostCap
		}
		out[i].RelevanceScore *= multiplier
	}
	return out
}

// RankAndFilter sorts descending by relevance (stable, ties keep prior
// order), drops results below the confidence threshold and truncates to the
// configured maximum.
func (r *Ranker) RankAndFilter(results []models.SearchResult) []models.SearchResult {
	out := make([]models.SearchResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})

	filtered := out[:0]
	for _, res := range out {
		if res.ConfidenceScore < r.threshold {
			continue
		}
		filtered = append(filtered, res)
	}
	if len(filtered) > r.maxResults {
		filtered = filtered[:r.maxResults]
	}
	return filtered
}
