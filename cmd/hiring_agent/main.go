// Package main provides the entry point for the hiring agent service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiring_agent",
	Short: "LLM-assisted hiring pipeline",
	Long:  "Hiring agent runs a human-in-the-loop recruitment pipeline: drafting job descriptions, screening applicants, preparing interview kits, and managing offers through durable, resumable workflows.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
