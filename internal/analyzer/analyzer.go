// Package analyzer classifies query intent and expands queries with
// conversation context.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/quaero-ai/quaero/internal/conversation"
	"github.com/quaero-ai/quaero/models"
)

// intentRule matches a query against a keyword set; rules are evaluated in
// priority order and the first match wins.
type intentRule struct {
	intent   models.Intent
	keywords []string
}

var intentRules = []intentRule{
	{models.IntentDefinition, []string{"what", "define", "meaning", "is"}},
	{models.IntentProcedural, []string{"how", "tutorial", "guide", "steps"}},
	{models.IntentExplanatory, []string{"why", "reason", "because", "cause"}},
	{models.IntentLocational, []string{"where", "location", "place"}},
	{models.IntentTemporal, []string{"when", "time", "date", "schedule"}},
	{models.IntentComparative, []string{"compare", "difference", "vs", "versus"}},
	{models.IntentRecommendation, []string{"best", "recommend", "suggest", "should"}},
}

const (
	maxContextQueries = 3
	maxContextTerms   = 5
	minTermLength     = 5
)

// Analyzer classifies intent and expands queries using per-user history.
type Analyzer struct {
	history *conversation.Store
}

// New creates an analyzer backed by the given conversation store.
func New(history *conversation.Store) *Analyzer {
	return &Analyzer{history: history}
}

// ClassifyIntent returns the first matching intent category for the query,
// defaulting to informational. Matching is case-insensitive on whole words.
func (a *Analyzer) ClassifyIntent(query string) models.Intent {
	words := tokenize(query)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if _, ok := words[kw]; ok {
				return rule.intent
			}
		}
	}
	return models.IntentInformational
}

// ExpandQuery appends a parenthetical context hint built from the user's
// recent queries. Without history the query is returned unchanged.
func (a *Analyzer) ExpandQuery(query, userID string) string {
	recent := a.history.Recent(userID, maxContextQueries)
	if len(recent) == 0 {
		return query
	}

	seen := make(map[string]struct{})
	var terms []string
	for _, entry := range recent {
		for _, word := range strings.Fields(strings.ToLower(entry.Query)) {
			word = strings.Trim(word, ".,;:!?\"'()[]")
			if len(word) < minTermLength {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			terms = append(terms, word)
		}
	}
	if len(terms) == 0 {
		return query
	}
	if len(terms) > maxContextTerms {
		terms = terms[:maxContextTerms]
	}
	return fmt.Sprintf("%s (context: %s)", query, strings.Join(terms, " "))
}

func tokenize(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if w != "" {
			words[w] = struct{}{}
		}
	}
	return words
}
