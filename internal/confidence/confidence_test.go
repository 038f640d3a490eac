package confidence

import (
	"math"
	"testing"

	"github.com/quaero-ai/quaero/models"
)

func results(relevances ...float64) []models.SearchResult {
	out := make([]models.SearchResult, len(relevances))
	for i, r := range relevances {
		out[i] = models.SearchResult{RelevanceScore: r, ConfidenceScore: r * 0.9}
	}
	return out
}

func TestScoreEmptyResults(t *testing.T) {
	if got := Score("anything", nil); got != 0 {
		t.Fatalf("expected 0 for empty results, got %v", got)
	}
}

func TestScoreFormula(t *testing.T) {
	// Top-3 avg relevance = (0.9+0.8+0.7)/3 = 0.8; the fourth result only
	// contributes to the source factor (4/5).
	res := results(0.9, 0.8, 0.7, 0.1)
	// complexity: 2 words -> 1 - 0.2*0.2 = 0.96
	want := 0.4*0.8 + 0.3*0.8 + 0.2*0.8 + 0.1*0.96
	want = math.Round(want*1000) / 1000
	if got := Score("two words", res); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScoreLongQueryComplexity(t *testing.T) {
	res := results(1.0)
	query := "one two three four five six seven eight nine ten eleven"
	// wordCount >= 10 caps the complexity term: factor = 0.8.
	want := math.Round((0.4*1.0+0.3*0.2+0.2*0.8+0.1*0.8)*1000) / 1000
	if got := Score(query, res); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScoreIsRounded(t *testing.T) {
	got := Score("a query with some words", results(0.777, 0.333))
	if got != math.Round(got*1000)/1000 {
		t.Fatalf("score not rounded to 3 decimals: %v", got)
	}
}

func TestFactCheck(t *testing.T) {
	cases := []struct {
		name string
		res  []models.SearchResult
		want models.FactCheckStatus
	}{
		{"empty", nil, models.FactCheckInsufficientSources},
		{"single", results(0.99), models.FactCheckSingleSource},
		{"two strong", results(0.95, 0.92), models.FactCheckVerified},
		{"two weak", results(0.5, 0.4), models.FactCheckPartiallyVerified},
		{"one strong one weak", results(0.95, 0.4), models.FactCheckPartiallyVerified},
	}
	for _, tc := range cases {
		if got := FactCheck(tc.res); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestFollowUpsTruncatedAtThree(t *testing.T) {
	qs := FollowUps("what is this", results(0.9))
	if len(qs) != 3 {
		t.Fatalf("expected 3 follow-ups, got %d", len(qs))
	}
}

func TestFollowUpsNoResults(t *testing.T) {
	qs := FollowUps("how does it work", nil)
	if len(qs) != 2 {
		t.Fatalf("expected only the keyword questions, got %d", len(qs))
	}
}

func TestFollowUpsGenericOnly(t *testing.T) {
	qs := FollowUps("machine learning trends", results(0.9))
	if len(qs) != 2 {
		t.Fatalf("expected 2 source-exploration questions, got %d", len(qs))
	}
}
