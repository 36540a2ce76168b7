package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdg-menorca/resort-assistant/internal/builder"
	"github.com/gdg-menorca/resort-assistant/internal/entity"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/formatter"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Bundle the generated documents into a single reviewable file",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, _, log, err := builder.BuildManager(envFlag, nil)
		if err != nil {
			return err
		}
		defer log.Sync()

		f, err := formatter.NewFactory().Create(exportFormat)
		if err != nil {
			return err
		}

		bundle, err := manager.ExportBundle()
		if err != nil {
			if errors.Is(err, entity.ErrNoDocuments) {
				fmt.Println("No generated documents found to export")
				return nil
			}
			return err
		}

		data, err := f.Format(bundle)
		if err != nil {
			return fmt.Errorf("format bundle: %w", err)
		}

		output := exportOutput
		if output == "" {
			output = "corpus_export" + f.FileExtension()
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}

		fmt.Printf("Exported %d documents to %s\n", len(bundle.Documents), output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "markdown", "export format: markdown, pdf or docx")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output path (default corpus_export.<ext>)")
}
