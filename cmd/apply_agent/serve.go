package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-agent/internal/config"
	"github.com/jonathan/apply-agent/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes endpoints for creating runs, streaming their events, and continuing paused runs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if servePort != 0 {
		cfg.Port = servePort
	}

	orch, cleanup, err := buildOrchestrator(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to wire orchestrator: %w", err)
	}
	defer cleanup()

	srv := server.New(server.Config{Port: cfg.Port, FilesDir: cfg.FilesDir}, orch)
	return srv.Start()
}
