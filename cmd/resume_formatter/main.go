// Package main provides the entry point for the Resume Formatter CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_formatter",
	Short: "Resume Formatter CLI",
	Long:  "Resume Formatter rebuilds raw resume text into a normalized resume.json artifact and a Markdown companion, enriched through a judgment-service pipeline.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
