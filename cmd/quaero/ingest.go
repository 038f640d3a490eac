package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quaero-ai/quaero/config"
	srv "github.com/quaero-ai/quaero/internal/server"
	"github.com/quaero-ai/quaero/models"
)

// ingestCMD bulk-loads a JSON array of documents. The index is in-memory,
// so --serve keeps the process alive to query what was just loaded.
func ingestCMD() *cobra.Command {
	var cfgPath string
	var serveAfter bool
	var ingest = &cobra.Command{
		Use:   "ingest [file.json]",
		Short: "Index documents from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			ctx := context.Background()
			eng, err := buildEngine(ctx, cfg)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			var docs []models.Document
			if err := json.Unmarshal(data, &docs); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			added := eng.AddDocuments(ctx, docs)
			fmt.Fprintf(os.Stdout, "indexed %d of %d documents\n", added, len(docs))

			if serveAfter {
				return srv.Run(cfg, eng)
			}
			return nil
		},
	}
	ingest.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	ingest.Flags().BoolVar(&serveAfter, "serve", false, "start the API server after indexing")

	return ingest
}
