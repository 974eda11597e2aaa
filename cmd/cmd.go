// Package cmd provides CLI commands for Concierge.
//
// Commands:
//   - serve: HTTP API server exposing the chat agent (default)
//   - version: build information
//
// Signal handling and graceful shutdown are implemented via context
// cancellation.
package cmd

import (
	"fmt"
	"os"
)

// Execute is the main entry point for the Concierge application.
// With no arguments it starts the HTTP server.
func Execute() error {
	if len(os.Args) < 2 {
		return runServe()
	}

	switch os.Args[1] {
	case "serve":
		return runServe()
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("Concierge - AI assistant HTTP service")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  concierge [serve]      Start the HTTP API server (default)")
	fmt.Println("  concierge version      Show version information")
	fmt.Println("  concierge help         Show this help")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  OPENROUTER_API_KEY     Required: OpenRouter API key")
	fmt.Println("  OPENROUTER_BASE_URL    Optional: OpenAI-compatible endpoint")
	fmt.Println("  MODEL_NAME             Optional: model identifier")
	fmt.Println("  PORT                   Optional: listen port (default 8000)")
	fmt.Println("  DEBUG                  Optional: enable debug mode")
	fmt.Println()
	fmt.Println("All settings can also be provided via config.yaml; run with")
	fmt.Println("DEBUG=true to expose GET /api/config.")
}
