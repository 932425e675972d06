package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/marquee/internal/config"
	"github.com/vadimtrunov/marquee/internal/ui/screen"
	"github.com/vadimtrunov/marquee/internal/ui/shell"
)

// newBrowseCmd returns the "browse" subcommand, the same as running marquee with no arguments.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the movie screen",
		Long: "Open the interactive movie screen.\n" +
			"tab cycles focus, ← → move within genres and trending, enter selects a genre,\n" +
			"pgup/pgdown scroll, esc or ctrl+c quits.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd.Context())
		},
	}
}

// runBrowse loads configuration and runs the shell until the user quits.
func runBrowse(parent context.Context) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logFile, err := config.OpenLogFile(cfg.App.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := config.SetupLogger(cfg.App.LogLevel, logFile)

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s := screen.New(ctx, initLoader(cfg, logger), logger)
	p := tea.NewProgram(shell.New(s), tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Bridge OS signal cancellation into the Bubble Tea event loop.
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run screen: %w", err)
	}
	return nil
}
