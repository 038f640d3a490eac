package rcache

import (
	"context"
	"fmt"

	"github.com/quaero-ai/quaero/config"
)

// FromConfig builds the configured cache backend.
func FromConfig(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case "redis":
		cache, err := NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache, nil
	case "memory", "":
		return NewMemory(cfg.TTL, cfg.MaxEntries), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
