package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/marquee/internal/catalog"
	"github.com/vadimtrunov/marquee/internal/config"
	"github.com/vadimtrunov/marquee/internal/ui/shell"
)

const (
	defaultSnapshotWidth   = 100
	defaultSnapshotTimeout = 15 * time.Second
)

// newSnapshotCmd returns the "snapshot" subcommand that prints the screen once.
func newSnapshotCmd() *cobra.Command {
	var (
		width   int
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the movie screen once and exit",
		Long: "Fetch all three listings, render the screen to stdout and exit.\n" +
			"Failed listings render empty; failures are logged to stderr.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd.Context(), width, timeout)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", defaultSnapshotWidth, "render width in columns")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultSnapshotTimeout, "deadline for all fetches")
	return cmd
}

func runSnapshot(parent context.Context, width int, timeout time.Duration) error {
	if width < 20 {
		return fmt.Errorf("width must be at least 20, got %d", width)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := config.SetupLogger(cfg.App.LogLevel, os.Stderr)

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	state, errs := catalog.LoadAll(ctx, initLoader(cfg, logger), logger)
	fmt.Println(shell.Snapshot(state, width))
	if len(errs) > 0 {
		fmt.Fprintln(os.Stderr, styleDim.Render(fmt.Sprintf("%d of 3 listings failed to load", len(errs))))
	}
	return nil
}
