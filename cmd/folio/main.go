// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// folio is a terminal client for the Folio notes backend: a dashboard
// of projects, a per-project card grid with category clustering, and a
// document panel with rendered markdown.
//
// Authentication happens in the browser (the backend's GitHub OAuth
// flow); folio stores the resulting session cookie in a local jar and
// sends it with every request. Run it with --server pointing at the
// backend, or set server_url in a config file.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/folionotes/folio/lib/api"
	"github.com/folionotes/folio/lib/appui"
	"github.com/folionotes/folio/lib/config"
	"github.com/folionotes/folio/lib/session"
	"github.com/folionotes/folio/lib/tui"
	"github.com/folionotes/folio/lib/version"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var serverURL string
	var logOutput string
	var projectID int64

	flagSet := pflag.NewFlagSet("folio", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $FOLIO_CONFIG)")
	flagSet.StringVar(&serverURL, "server", "", "backend base URL (overrides config and FOLIO_SERVER)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.Int64Var(&projectID, "project", 0, "open this project directly after sign-in")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works regardless of
	// other arguments.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("folio")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	// Ad-hoc overrides from a local .env (FOLIO_SERVER, FOLIO_CONFIG).
	// Missing file is the normal case.
	_ = godotenv.Load()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if env := os.Getenv("FOLIO_SERVER"); env != "" && serverURL == "" {
		serverURL = env
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if cfg.ServerURL == "" {
		return fmt.Errorf("no server URL: pass --server, set FOLIO_SERVER, or set server_url in the config file")
	}
	if logOutput != "" {
		cfg.LogFile = logOutput
	}

	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	jar, err := session.Open(cfg.SessionFile, cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("opening session jar: %w", err)
	}

	client, err := api.NewClient(api.Config{
		ServerURL:  cfg.ServerURL,
		HTTPClient: &http.Client{Jar: jar},
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	model := appui.New(client, jar, tui.DefaultTheme, logger, projectID)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// openLogger builds the JSON file logger, or a discard logger when no
// file is configured. Stderr is never used: the alt-screen TUI owns it.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Folio, a terminal client for the Folio notes backend.

Sign-in happens in your browser: the login screen shows the backend's
GitHub OAuth URL (press o to open it), and r re-checks the session
once you are done. The session cookie is stored locally, so later runs
go straight to the dashboard.

Usage:
  folio [flags]

Examples:
  # Connect to a backend
  folio --server https://folio.example.net

  # Jump straight into a project
  folio --server https://folio.example.net --project 42

  # Use a config file with per-environment overrides
  folio --config ~/.config/folio/config.yaml

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
