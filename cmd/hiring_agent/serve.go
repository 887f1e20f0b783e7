package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/affan/hiring-agent/internal/server"
	"github.com/affan/hiring-agent/internal/workflow"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the workflow API, the approval endpoints, and the candidate webhooks.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8000)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := context.Background()

	notifier, err := buildNotifier(cfg)
	if err != nil {
		return err
	}
	stages, closeLLM, err := buildStages(ctx, cfg, notifier)
	if err != nil {
		return err
	}
	defer closeLLM()

	store, database, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	graph, err := workflow.NewHiringGraph(stages)
	if err != nil {
		return fmt.Errorf("failed to build workflow graph: %w", err)
	}

	serverCfg := server.Config{
		Port:                 cfg.Port,
		Scheduler:            workflow.NewScheduler(graph, store),
		OperatorEmail:        os.Getenv("HR_EMAIL"),
		OperatorPasswordHash: os.Getenv("HR_PASSWORD_HASH"),
	}
	if database != nil {
		serverCfg.Users = database
	}

	srv, err := server.New(serverCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
