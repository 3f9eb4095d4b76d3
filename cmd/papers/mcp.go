package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/the-papers-must-flow/internal/mcptools"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tool set over MCP on stdio",
		Long:  `Run an MCP (Model Context Protocol) server on stdin/stdout exposing file scanning, pattern management, and rename tools, so an LLM agent can drive renaming sessions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ex, st, err := openExecutor()
			if err != nil {
				return err
			}

			ix, err := openScanIndex(cmd.Context())
			if err != nil {
				slog.Warn("scan index unavailable, listings will not be cached", "error", err)
				ix = nil
			} else {
				defer ix.Close()
			}

			slog.Info("starting MCP server on stdio", "data_dir", st.DataDir())

			s := mcptools.NewServer(version, mcptools.Deps{
				Store:    st,
				Executor: ex,
				Index:    ix,
			})
			if err := mcptools.ServeStdio(s); err != nil {
				return fmt.Errorf("MCP server failed: %w", err)
			}
			return nil
		},
	}
}
