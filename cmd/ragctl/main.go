package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var envFlag string

var rootCmd = &cobra.Command{
	Use:   "ragctl",
	Short: "GDG Menorca Resort corpus management",
	Long:  `ragctl generates the hotel documentation, manages the remote RAG corpus and inspects its status.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "local", "environment to run (local, prod, or custom)")
	rootCmd.AddCommand(generateCmd, statusCmd, cleanupCmd, logsCmd, exportCmd)
}

// confirm asks the operator a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
