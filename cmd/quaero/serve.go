package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quaero-ai/quaero/config"
	srv "github.com/quaero-ai/quaero/internal/server"
)

func serveCMD() *cobra.Command {
	var cfgPath string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			eng, err := buildEngine(context.Background(), cfg)
			if err != nil {
				return err
			}
			return srv.Run(cfg, eng)
		},
	}
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return serve
}
