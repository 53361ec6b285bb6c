// cmd/storefront/main.go
//
// Entry point for the storefront client.
//
// Flow:
// 1. Ensure the .storefront directory exists in the user's home directory
// 2. Load config, open the diagnostics log, restore a persisted token
// 3. Launch the TUI

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/VanceeBassem/ecommerce-frontend/internal/api"
	"github.com/VanceeBassem/ecommerce-frontend/internal/config"
	"github.com/VanceeBassem/ecommerce-frontend/internal/logging"
	"github.com/VanceeBassem/ecommerce-frontend/internal/session"
	"github.com/VanceeBassem/ecommerce-frontend/internal/tui"
)

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitAppDir(home); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .storefront directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.New(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogsDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}

	// The configured timeout applies to every request; zero keeps the
	// transport default, meaning no client-imposed deadline.
	httpClient := &http.Client{}
	if secs := cfg.HTTPTimeoutSeconds(); secs > 0 {
		httpClient.Timeout = time.Duration(secs) * time.Second
	}

	client := api.NewClient(cfg.BaseURL(), api.WithHTTPClient(httpClient), api.WithLogger(logger))
	sess := session.NewManager(client, cfg.TokenPath())
	if sess.Restore() {
		logger.Info("main: restored persisted session token")
	}

	p := tea.NewProgram(
		tui.NewApp(cfg, logger, client, sess),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
