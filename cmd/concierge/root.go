package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Concierge is a tool-calling restaurant assistant",
	Long: `Concierge answers restaurant questions over a local database: it searches,
recommends with progressive fallback, and books tables, all through an LLM
that calls typed tools.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("db", "concierge.db", "Path to the SQLite database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
