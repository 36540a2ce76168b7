package main

import (
	"fmt"

	"github.com/gdg-menorca/resort-assistant/internal/config"
	"github.com/gdg-menorca/resort-assistant/internal/pkg/logger"
	"github.com/spf13/cobra"
)

const recentLogLines = 50

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfigForEnv(envFlag)
		if err != nil {
			return err
		}

		lines, err := logger.ReadRecent(cfg.LogFile, recentLogLines)
		if err != nil {
			return fmt.Errorf("read log file: %w", err)
		}
		if len(lines) == 0 {
			fmt.Println("No logs available")
			return nil
		}

		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	},
}
