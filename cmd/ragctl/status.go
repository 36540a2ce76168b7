package main

import (
	"context"
	"fmt"

	"github.com/gdg-menorca/resort-assistant/internal/builder"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show corpus status and information",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cfg, log, err := builder.BuildManager(envFlag, nil)
		if err != nil {
			return err
		}
		defer log.Sync()

		corpus, status := manager.GetStatus(context.Background())
		p := status.Presentation()

		fmt.Printf("Corpus Status: %s — %s\n\n", p.Label, p.Message)

		md := manager.Metadata()
		fmt.Printf("Display Name:    %s\n", cfg.CorpusDisplayName)
		fmt.Printf("Local Documents: %d\n", manager.LocalDocumentCount())
		if corpus != nil {
			fmt.Printf("Corpus Name:     %s\n", corpus.Name)
		}
		fmt.Printf("Recorded Count:  %d\n", md.DocumentCount)
		fmt.Printf("Last Updated:    %s\n", orNever(md.LastUpdated))
		fmt.Printf("Created At:      %s\n", orDefault(md.CreatedAt, "Not created"))

		return nil
	},
}

func orNever(value string) string {
	return orDefault(value, "Never")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
