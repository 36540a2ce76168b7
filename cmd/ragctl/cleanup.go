package main

import (
	"context"
	"fmt"

	"github.com/gdg-menorca/resort-assistant/internal/builder"
	"github.com/spf13/cobra"
)

var cleanupDryRun bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Clean up local files and remote corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, _, log, err := builder.BuildManager(envFlag, confirm)
		if err != nil {
			return err
		}
		defer log.Sync()

		if cleanupDryRun {
			fmt.Println("DRY RUN - no files will be deleted")
		}

		report, err := manager.Cleanup(context.Background(), cleanupDryRun)
		if err != nil {
			return err
		}

		if report.LocalFiles == 0 {
			fmt.Println("No local files to clean up")
			return nil
		}

		fmt.Printf("Found %d local files\n", report.LocalFiles)
		if report.LocalDeleted {
			fmt.Println("Local cleanup completed")
		}
		if report.CorpusDeleted {
			fmt.Println("Corpus deleted successfully")
		}

		return nil
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", true, "show what would be deleted without deleting")
}
