package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quaero-ai/quaero/config"
	"github.com/quaero-ai/quaero/models"
)

func askCMD() *cobra.Command {
	var cfgPath string
	var userID string
	var demo bool
	var ask = &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question against the indexed corpus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			ctx := context.Background()
			eng, err := buildEngine(ctx, cfg)
			if err != nil {
				return err
			}
			if demo {
				eng.AddDocuments(ctx, models.SampleDocuments())
			}

			resp := eng.Search(ctx, strings.Join(args, " "), userID, nil)

			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(out))
			return nil
		},
	}
	ask.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	ask.Flags().StringVar(&userID, "user", "cli", "user id for conversation context")
	ask.Flags().BoolVar(&demo, "demo", false, "seed the index with the bundled sample corpus")

	return ask
}
