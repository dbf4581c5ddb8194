package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var configPath string
	var serverURL string

	rootCmd := &cobra.Command{
		Use:     "taskdeck",
		Short:   "taskdeck - terminal client for your task service",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, serverURL)
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.Flags().StringVar(&serverURL, "server", "", "server URL, overrides the config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, serverURL string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	// The terminal belongs to the TUI, so logs go to a file.
	if err := logger.Init(cfg.LogFile, cfg.Development); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	st, err := state.Open()
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer st.Close()

	// Cancelled once the program exits; in-flight calls die with it.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sess *session.Session
	client := api.NewClient(cfg.ServerURL,
		api.WithTokenSource(func() string { return sess.Token() }),
		api.WithUnauthorizedHook(func() { sess.HandleUnauthorized() }),
	)
	sess = session.New(client, st)

	logger.Info("starting taskdeck")

	app := ui.NewApp(ctx, client, sess, st)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
