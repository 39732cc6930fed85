package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/axcore/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing axcore element tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the element
operations as tools. AI agents can call tools directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  axcore serve
  axcore serve --transport streamable-http --port 8080
  axcore serve --cache-ttl 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Element tree cache TTL in milliseconds (0 to disable)")
}

func serveConfig(cmd *cobra.Command) (server.Config, error) {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	if cacheTTLMs < 0 {
		return server.Config{}, fmt.Errorf("--cache-ttl must not be negative: %d", cacheTTLMs)
	}
	target, err := targetFromFlags()
	if err != nil {
		return server.Config{}, err
	}
	return server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Timeout:   target.Timeout,
	}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	srvCfg, err := serveConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer client.Close()
	return server.New(client, srvCfg, logger).Serve(srvCfg)
}
