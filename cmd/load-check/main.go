package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/roster/internal/loadcheck"
	"github.com/okian/roster/pkg/logger"
)

// Default configuration constants.
const (
	defaultUsers      = 1000
	defaultUpdates    = 100
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8090", "Base URL of the service")
		users   = flag.Int("users", defaultUsers, "Number of user records to create")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		updates = flag.Int("updates", defaultUpdates, "Number of records to update after the load phase")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadcheck.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &loadcheck.Config{
		BaseURL: *baseURL,
		Users:   *users,
		Workers: *workers,
		Updates: *updates,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if err := loadcheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("load check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
