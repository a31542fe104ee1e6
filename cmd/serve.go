package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/desktop-annotator/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the annotator as tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes element resolution,
annotation and export as tools. AI agents can call tools directly without
shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  desktop-annotator serve
  desktop-annotator serve --transport streamable-http --port 8080
  desktop-annotator serve --cache-ttl 0 --persist`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 250, "Point query cache TTL in milliseconds (0 to disable)")
	serveCmd.Flags().Bool("persist", false, "Save the session after every change so CLI commands see it")
	addInspectFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	persist, _ := cmd.Flags().GetBool("persist")

	provider, err := newProvider()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	icfg := inspectorConfig(cmd)
	icfg.CacheTTL = time.Duration(cacheTTLMs) * time.Millisecond

	cfg := server.Config{
		Transport: transport,
		Port:      port,
		Inspector: icfg,
	}
	if persist {
		cfg.Sessions = sessionRepository()
	}
	return server.New(provider, cfg).Serve(cfg)
}
