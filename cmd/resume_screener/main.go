// Package main provides the entry point for the resume screener CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_screener",
	Short: "AI resume screening pipeline",
	Long:  "Resume Screener evaluates a candidate resume against a job description through a multi-stage agent pipeline with ranked provider fallback, always resolving to a screening verdict.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
