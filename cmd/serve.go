package cmd

import (
	"github.com/mj1618/fontproject/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing fontproject tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes project tools:
inspect_project, restore_plan, preview_project and convert_project.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  fontproject serve
  fontproject serve --transport streamable-http --port 8080
  fontproject serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Duration("cache-ttl", 0, "Project cache TTL, 0 disables (default from FONTPROJECT_MCP_CACHE_TTL)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	ttl := cfg.MCP.CacheTTL
	if cmd.Flags().Changed("cache-ttl") {
		ttl, _ = cmd.Flags().GetDuration("cache-ttl")
	}

	srv := server.New(server.Config{
		Transport:    transport,
		Port:         port,
		CacheTTL:     ttl,
		PreviewWidth: cfg.Preview.Width,
	}, logger)
	return srv.Serve()
}
