// assist TUI - terminal client for the internal AI assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assist-tui/internal/app"
	"github.com/jeranaias/assist-tui/internal/config"
	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/session"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	serverURL := flag.String("server", "", "backend origin, e.g. http://127.0.0.1:5000 (overrides config)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("assist-tui %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.BaseURL = *serverURL
	}

	setupLogging()

	sessionDir, err := session.DefaultDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store := session.NewStore(sessionDir)
	client := gateway.NewClient(cfg.Server.BaseURL).WithTimeout(cfg.Timeout())
	theme := styles.NewTheme()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(app.New(cfg, client, store, theme), opts...)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to a file next to the config;
// the TUI owns the terminal. Logging is best effort and silently dropped
// when the file cannot be opened.
func setupLogging() {
	dir, err := config.Dir()
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	if _, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "assist"); err != nil {
		log.SetOutput(io.Discard)
	}
}
