package loadcheck

import (
	"os"
)

// ShowHelp prints usage information for the load check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Roster Load Check Tool
======================

A concurrent tool for exercising a running roster instance and verifying
its record-store semantics.

Usage:
  go run cmd/load-check/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8090")
  -users int
        Number of user records to create (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -updates int
        Number of records to update after the load phase (default 100)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Check with default settings
  go run cmd/load-check/main.go

  # Check with custom parameters
  go run cmd/load-check/main.go -users 5000 -workers 16 -url http://localhost:8080
`)
}
