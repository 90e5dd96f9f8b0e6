package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvforge",
	Short: "CVForge backend",
	Long:  "CVForge serves the capture, resume builder, document verification and interview coach panels over HTTP.",
	// no subcommand means serve
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
