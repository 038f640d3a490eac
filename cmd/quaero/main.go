package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quaero-ai/quaero/config"
	"github.com/quaero-ai/quaero/internal/engine"
	"github.com/quaero-ai/quaero/internal/rcache"
	"github.com/quaero-ai/quaero/provider"
)

func main() {
	var root = &cobra.Command{Use: "quaero"}

	root.AddCommand(serveCMD(), askCMD(), ingestCMD())
	_ = root.Execute()
}

// buildEngine wires providers, cache and engine from configuration.
func buildEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, error) {
	providers, err := provider.New(cfg.Providers)
	if err != nil {
		return nil, fmt.Errorf("providers: %w", err)
	}
	cache, err := rcache.FromConfig(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return engine.New(cfg, providers, cache), nil
}
