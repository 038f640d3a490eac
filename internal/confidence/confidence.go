// Package confidence combines relevance, source count and query complexity
// into a single confidence value, labels fact-check status and proposes
// follow-up questions.
package confidence

import (
	"math"
	"strings"

	"github.com/quaero-ai/quaero/models"
)

const (
	weightRelevance  = 0.4
	weightSources    = 0.3
	weightConsistent = 0.2
	weightComplexity = 0.1

	// Cross-source agreement is not computed yet; a fixed factor stands in
	// until product requirements pin down a real check.
	consistencyFactor = 0.8

	verifiedConfidence = 0.8
	topRelevanceCount  = 3
	maxFollowUps       = 3
)

// Score returns a confidence value in [0, 1] for the query/result pair,
// rounded to 3 decimals. Empty results score 0.
func Score(query string, results []models.SearchResult) float64 {
	if len(results) == 0 {
		return 0
	}

	n := topRelevanceCount
	if n > len(results) {
		n = len(results)
	}
	var avgRelevance float64
	for i := 0; i < n; i++ {
		avgRelevance += results[i].RelevanceScore
	}
	avgRelevance /= float64(n)

	sourceFactor := float64(len(results)) / 5.0
	if sourceFactor > 1 {
		sourceFactor = 1
	}

	wordCount := float64(len(strings.Fields(query)))
	complexity := wordCount / 10.0
	if complexity > 1 {
		complexity = 1
	}
	complexityFactor := 1.0 - complexity*0.2

	score := weightRelevance*avgRelevance +
		weightSources*sourceFactor +
		weightConsistent*consistencyFactor +
		weightComplexity*complexityFactor
	return math.Round(score*1000) / 1000
}

// FactCheck labels how well independent high-confidence sources agree.
func FactCheck(results []models.SearchResult) models.FactCheckStatus {
	if len(results) == 0 {
		return models.FactCheckInsufficientSources
	}
	if len(results) >= 2 {
		strong := 0
		for _, res := range results {
			if res.ConfidenceScore > verifiedConfidence {
				strong++
			}
		}
		if strong >= 2 {
			return models.FactCheckVerified
		}
		return models.FactCheckPartiallyVerified
	}
	return models.FactCheckSingleSource
}

// FollowUps proposes up to 3 canned follow-up questions keyed off the query
// phrasing, plus generic source-exploration prompts when results exist.
func FollowUps(query string, results []models.SearchResult) []string {
	lower := strings.ToLower(query)
	var questions []string

	switch {
	case strings.Contains(lower, "what"):
		questions = append(questions,
			"Would you like more detail on how this works in practice?",
			"Should I look for related concepts?")
	case strings.Contains(lower, "how"):
		questions = append(questions,
			"Would you like a step-by-step breakdown?",
			"Should I find common pitfalls for this process?")
	case strings.Contains(lower, "why"):
		questions = append(questions,
			"Would you like the underlying causes explained further?",
			"Should I look for counterarguments?")
	}

	if len(results) > 0 {
		questions = append(questions,
			"Would you like to explore any of the cited sources in depth?",
			"Should I search for more recent material on this topic?")
	}

	if len(questions) > maxFollowUps {
		questions = questions[:maxFollowUps]
	}
	return questions
}
