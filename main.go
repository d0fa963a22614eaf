package main

import (
	"os"
	"path/filepath"

	"trip-audit/cmd/export"
	"trip-audit/cmd/process"
	"trip-audit/cmd/root"

	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables before any configuration is read.
	loadEnvSilently()

	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// Try to find .env in parent directory (project root)
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
