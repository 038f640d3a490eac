// Package static_provider provides a deterministic, offline capability
// backend. Vectors are feature-hashed bags of words, so embedding the same
// text always yields the same vector and texts sharing vocabulary land
// near each other. It has no generation capability.
package static_provider

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"

	"github.com/quaero-ai/quaero/models"
)

// ErrUnavailable is returned by GenerateAnswer: static backends only embed.
var ErrUnavailable = errors.New("generation capability unavailable")

type client struct {
	name string
	dims int
}

// New creates a static backend with the given name and vector dimensions.
// The name salts the token hashing, so differently named backends embed
// into independent spaces.
func New(name string, dims int) *client {
	return &client{name: name, dims: dims}
}

func (c *client) Name() string { return c.name }

// Embed returns a unit-normalised feature-hash vector of the text's
// tokens, deterministic across calls within a process run.
func (c *client) Embed(ctx context.Context, text string) (models.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make(models.Vector, c.dims)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,;:!?\"'()[]")
		if token == "" {
			continue
		}
		h := fnv.New64a()
		h.Write([]byte(c.name))
		h.Write([]byte{0})
		h.Write([]byte(token))
		sum := h.Sum64()
		idx := int(sum % uint64(c.dims))
		if sum&(1<<63) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

// GenerateAnswer always reports the capability as unavailable.
func (c *client) GenerateAnswer(ctx context.Context, query string, contextChunks []string) (string, error) {
	return "", ErrUnavailable
}
