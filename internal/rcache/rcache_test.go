package rcache

import (
	"fmt"
	"testing"
	"time"

	"github.com/quaero-ai/quaero/models"
)

func TestKeyStableAcrossFilterOrder(t *testing.T) {
	a := Key("query", map[string]interface{}{"dept": "eng", "level": 3})
	b := Key("query", map[string]interface{}{"level": 3, "dept": "eng"})
	if a != b {
		t.Fatalf("identical filter sets produced different keys")
	}
}

func TestKeyDistinguishesInputs(t *testing.T) {
	base := Key("query", nil)
	if Key("other query", nil) == base {
		t.Fatalf("different queries share a key")
	}
	if Key("query", map[string]interface{}{"dept": "eng"}) == base {
		t.Fatalf("filtered and unfiltered queries share a key")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	c := NewMemory(time.Hour, 10)
	resp := models.Response{SynthesizedAnswer: "answer", ConfidenceScore: 0.8}
	c.Put("k", resp)

	got, ok := c.Get("k")
	if !ok {
		t.Fatalf("expected hit immediately after put")
	}
	if got.SynthesizedAnswer != "answer" || got.ConfidenceScore != 0.8 {
		t.Fatalf("cached response mangled: %+v", got)
	}
}

func TestMemoryMiss(t *testing.T) {
	c := NewMemory(time.Hour, 10)
	if _, ok := c.Get("absent"); ok {
		t.Fatalf("expected miss for absent key")
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	now := time.Now()
	c := NewMemory(time.Minute, 10)
	c.now = func() time.Time { return now }

	c.Put("k", models.Response{SynthesizedAnswer: "stale soon"})

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected logical miss after TTL")
	}
	// Expired entries are not eagerly removed.
	if c.Len() != 1 {
		t.Fatalf("expected expired entry to remain resident, len=%d", c.Len())
	}
}

func TestMemoryEvictsOldest(t *testing.T) {
	now := time.Now()
	c := NewMemory(24*time.Hour, 1000)
	c.now = func() time.Time { return now }

	for i := 0; i <= 1000; i++ {
		c.Put(fmt.Sprintf("k%d", i), models.Response{SynthesizedAnswer: fmt.Sprintf("a%d", i)})
		now = now.Add(time.Millisecond)
	}

	if c.Len() != 1000 {
		t.Fatalf("expected cache capped at 1000, len=%d", c.Len())
	}
	if _, ok := c.Get("k0"); ok {
		t.Fatalf("expected oldest entry evicted")
	}
	if _, ok := c.Get("k1000"); !ok {
		t.Fatalf("expected newest entry retained")
	}
}

func TestMemoryOverwriteRefreshesTimestamp(t *testing.T) {
	now := time.Now()
	c := NewMemory(time.Hour, 2)
	c.now = func() time.Time { return now }

	c.Put("a", models.Response{})
	now = now.Add(time.Second)
	c.Put("b", models.Response{})
	now = now.Add(time.Second)
	c.Put("a", models.Response{}) // refreshed, b is now oldest
	now = now.Add(time.Second)
	c.Put("c", models.Response{})

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b evicted as oldest")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected refreshed a retained")
	}
}
