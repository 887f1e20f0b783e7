package main

import (
	"context"
	"fmt"
	"log"

	"github.com/affan/hiring-agent/internal/agents"
	"github.com/affan/hiring-agent/internal/config"
	"github.com/affan/hiring-agent/internal/db"
	"github.com/affan/hiring-agent/internal/email"
	"github.com/affan/hiring-agent/internal/llm"
	"github.com/affan/hiring-agent/internal/workflow"
)

// loadConfig merges environment configuration with an optional config file.
// CLI flags are applied by the individual commands after this returns.
func loadConfig(configPath string) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	} else {
		merged := cfg.MergeWithDefaults(config.Config{})
		cfg = &merged
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

// buildNotifier returns an SMTP notifier when delivery is configured,
// otherwise a dry-run notifier that logs instead of sending.
func buildNotifier(cfg config.Config) (email.Notifier, error) {
	if cfg.SMTPHost == "" {
		log.Println("SMTP not configured, emails will be logged instead of sent")
		return email.LogNotifier{}, nil
	}
	return email.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
}

// buildStages wires the LLM agents and the notifier into workflow stages.
// The returned close function releases the LLM client.
func buildStages(ctx context.Context, cfg config.Config, notifier email.Notifier) (*workflow.Stages, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	client, err := llm.NewGeminiClient(ctx, cfg.APIKey, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	stages := &workflow.Stages{
		Analyst:     agents.NewAnalyst(client),
		Screener:    agents.NewScreener(client),
		Interviewer: agents.NewInterviewer(client),
		Decision:    agents.NewDecisionMaker(client),
		Notifier:    notifier,
		FormBaseURL: cfg.FormBaseURL,
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Printf("failed to close LLM client: %v", err)
		}
	}
	return stages, closeFn, nil
}

// openStore returns a Postgres-backed store when a database is configured,
// otherwise an in-memory store that does not survive restarts.
func openStore(ctx context.Context, cfg config.Config) (workflow.Store, *db.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, workflow state is held in memory only")
		return workflow.NewMemoryStore(), nil, nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return workflow.NewPostgresStore(database), database, nil
}
