package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/affan/hiring-agent/internal/db"
	"github.com/affan/hiring-agent/internal/observability"
	"github.com/affan/hiring-agent/internal/workflow"
)

var statusConfigPath string

var statusCmd = &cobra.Command{
	Use:   "status <job_id>",
	Short: "Show the state of a stored workflow",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var (
	listStatus     string
	listLimit      int
	listConfigPath string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored workflows",
	RunE:  runList,
}

func init() {
	statusCmd.Flags().StringVar(&statusConfigPath, "config", "", "Path to JSON config file")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (running, paused, complete, failed)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of workflows to show (default 50)")
	listCmd.Flags().StringVar(&listConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
}

func connectDatabase(ctx context.Context, configPath string) (*db.DB, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

func runStatus(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	database, err := connectDatabase(ctx, statusConfigPath)
	if err != nil {
		return err
	}
	defer database.Close()

	store := workflow.NewPostgresStore(database)
	snap, err := store.Load(ctx, args[0])
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintWorkflowStatus(snap.State, snap.NextNode)
	printer.PrintOfferBoard(snap.State)

	history, err := store.History(ctx, args[0])
	if err != nil {
		return err
	}
	if len(history) > 0 {
		fmt.Println("\nCheckpoints:")
		for _, entry := range history {
			fmt.Printf("  %3d  %-25s %s\n", entry.Seq, entry.Node, entry.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

func runList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	database, err := connectDatabase(ctx, listConfigPath)
	if err != nil {
		return err
	}
	defer database.Close()

	workflows, err := database.ListWorkflows(ctx, listStatus, listLimit)
	if err != nil {
		return err
	}
	if len(workflows) == 0 {
		fmt.Println("No workflows found.")
		return nil
	}

	fmt.Printf("%-38s %-10s %-25s %s\n", "JOB ID", "STATUS", "WAITING AT", "UPDATED")
	for _, w := range workflows {
		fmt.Printf("%-38s %-10s %-25s %s\n", w.JobID, w.Status, w.NextNode, w.UpdatedAt)
	}
	return nil
}
