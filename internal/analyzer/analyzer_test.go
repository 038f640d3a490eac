package analyzer

import (
	"strings"
	"testing"
	"time"

	"github.com/quaero-ai/quaero/internal/conversation"
	"github.com/quaero-ai/quaero/models"
)

func TestClassifyIntent(t *testing.T) {
	a := New(conversation.New(10))
	cases := []struct {
		query string
		want  models.Intent
	}{
		{"What is machine learning?", models.IntentDefinition},
		{"define polymorphism", models.IntentDefinition},
		{"How do I deploy this service", models.IntentProcedural},
		{"tutorial for beginners", models.IntentProcedural},
		{"Why does the cache expire", models.IntentExplanatory},
		{"Where can I find the docs", models.IntentLocational},
		{"When does the maintenance window start", models.IntentTemporal},
		{"redis versus memcached", models.IntentComparative},
		{"recommend a vector database", models.IntentRecommendation},
		{"machine learning trends", models.IntentInformational},
	}
	for _, tc := range cases {
		if got := a.ClassifyIntent(tc.query); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.query, tc.want, got)
		}
	}
}

func TestClassifyIntentPriorityOrder(t *testing.T) {
	a := New(conversation.New(10))
	// Contains both definition ("what") and procedural ("how") keywords;
	// definition wins because its rule comes first.
	if got := a.ClassifyIntent("what is the best how-to"); got != models.IntentDefinition {
		t.Fatalf("expected definition to win, got %s", got)
	}
}

func TestExpandQueryNoHistory(t *testing.T) {
	a := New(conversation.New(10))
	query := "what is kubernetes"
	if got := a.ExpandQuery(query, "fresh-user"); got != query {
		t.Fatalf("expected unchanged query, got %q", got)
	}
}

func TestExpandQueryWithHistory(t *testing.T) {
	history := conversation.New(10)
	history.Append("u1", conversation.Entry{Query: "kubernetes deployment strategies", Timestamp: time.Now()})
	a := New(history)

	got := a.ExpandQuery("how does scaling work", "u1")
	if !strings.HasPrefix(got, "how does scaling work (context: ") {
		t.Fatalf("expected parenthetical context hint, got %q", got)
	}
	if !strings.Contains(got, "kubernetes") {
		t.Fatalf("expected long prior-term kubernetes in hint, got %q", got)
	}
	if strings.Contains(got, " work)") || strings.Contains(got, "(context: how") {
		t.Fatalf("current query terms leaked into the hint: %q", got)
	}
}

func TestExpandQueryTermLimit(t *testing.T) {
	history := conversation.New(10)
	history.Append("u1", conversation.Entry{Query: "alpha1 bravo2 charlie3 deltas echoes foxtrots golfer"})
	a := New(history)

	got := a.ExpandQuery("q", "u1")
	idx := strings.Index(got, "(context: ")
	if idx < 0 {
		t.Fatalf("expected context hint, got %q", got)
	}
	terms := strings.Fields(strings.TrimSuffix(got[idx+len("(context: "):], ")"))
	if len(terms) != 5 {
		t.Fatalf("expected at most 5 context terms, got %d: %v", len(terms), terms)
	}
}

func TestExpandQuerySkipsShortWords(t *testing.T) {
	history := conversation.New(10)
	history.Append("u1", conversation.Entry{Query: "why is the sky blue"})
	a := New(history)

	// Every word in the prior query is 4 chars or fewer.
	if got := a.ExpandQuery("next question", "u1"); got != "next question" {
		t.Fatalf("expected unchanged query, got %q", got)
	}
}
