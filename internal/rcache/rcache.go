// Package rcache is the bounded response cache. The default backend keeps
// entries in memory with TTL expiry and oldest-first eviction; a redis
// backend can be swapped in without touching the pipeline.
package rcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/quaero-ai/quaero/models"
)

// Cache stores complete responses keyed by a query fingerprint. Entries
// older than the backend's TTL are treated as absent.
type Cache interface {
	Get(key string) (models.Response, bool)
	Put(key string, resp models.Response)
	Len() int
}

// Key builds a stable cache key from the query and its filters. Filters
// are serialised in sorted-key order so identical sets hash identically
// regardless of map iteration order.
func Key(query string, filters map[string]interface{}) string {
	var sb strings.Builder
	sb.WriteString(query)
	if len(filters) > 0 {
		keys := make([]string, 0, len(filters))
		for k := range filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "|%s=%v", k, filters[k])
		}
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
