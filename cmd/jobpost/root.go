package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobpost",
	Short: "Job posting REST service",
	Long: `jobpost stores job postings in Postgres and serves them over HTTP.
Run "jobpost serve" for the API, "jobpost migrate" to apply schema migrations
or "jobpost seed" to load sample postings.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
