package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/marquee/internal/config"
	mcpserver "github.com/vadimtrunov/marquee/internal/mcp"
)

// newMCPServeCmd returns the hidden "mcp-serve" subcommand.
// It serves the listings as MCP tools over stdin/stdout; logs go to stderr.
func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "mcp-serve",
		Short:  "Start MCP server over stdio",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := config.SetupLogger(cfg.App.LogLevel, os.Stderr)

			srv := mcpserver.NewServer(mcpserver.Deps{
				Catalog: initLoader(cfg, logger),
				Version: version,
			}, logger)
			return srv.ServeStdio(cmd.Context())
		},
	}
}
