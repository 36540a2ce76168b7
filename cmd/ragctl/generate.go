package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-menorca/resort-assistant/internal/builder"
	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/spf13/cobra"
)

var (
	genInteractive bool
	genUpload      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate documents and create/update the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, _, log, err := builder.BuildManager(envFlag, confirm)
		if err != nil {
			return err
		}
		defer log.Sync()
		ctx := context.Background()

		report, err := manager.GenerateDocuments(ctx, genInteractive)
		if err != nil {
			if errors.Is(err, entity.ErrGenerationAborted) {
				fmt.Println("Generation cancelled")
				return nil
			}
			return err
		}

		printBatchReport("Generation Results", report)
		if !report.OK() {
			fmt.Println("Document generation failed")
			return nil
		}

		if !genUpload {
			return nil
		}

		corpus, err := manager.CreateCorpus(ctx)
		if err != nil {
			return fmt.Errorf("failed to create corpus: %w", err)
		}

		uploadReport, err := manager.UploadDocuments(ctx, corpus)
		if err != nil {
			if errors.Is(err, entity.ErrNoDocuments) {
				fmt.Println("No documents found to upload")
				return nil
			}
			return err
		}
		printBatchReport("Upload Results", uploadReport)

		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&genInteractive, "interactive", true, "ask for confirmation before generating")
	generateCmd.Flags().BoolVar(&genUpload, "upload", true, "upload documents after generation")
}

func printBatchReport(title string, report *entity.BatchReport) {
	fmt.Printf("\n%s\n", title)
	fmt.Printf("  Successful: %d\n", report.Successful)
	fmt.Printf("  Failed:     %d\n", report.Failed)
	if report.Skipped > 0 {
		fmt.Printf("  Skipped:    %d\n", report.Skipped)
	}
	for _, res := range report.Results {
		if res.Err != nil {
			fmt.Printf("  - %s: %v\n", res.Title, res.Err)
		}
	}
}
