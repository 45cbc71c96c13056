package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentcouncil/agent"
	"github.com/hupe1980/agentcouncil/config"
	"github.com/hupe1980/agentcouncil/core"
	"github.com/hupe1980/agentcouncil/logging"
	"github.com/hupe1980/agentcouncil/model"
	"github.com/hupe1980/agentcouncil/model/anthropic"
	"github.com/hupe1980/agentcouncil/model/openai"
	"github.com/hupe1980/agentcouncil/orchestrator"
	"github.com/hupe1980/agentcouncil/server"
	"github.com/hupe1980/agentcouncil/store"
	"github.com/hupe1980/agentcouncil/store/postgres"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(logging.Config{
		Level: logLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})

	gateway, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	registry := agent.NewRegistry(func(o *agent.RegistryOptions) {
		o.Logger = logger
		o.ArchitectModel = func() model.Model {
			return anthropic.NewModel(func(ao *anthropic.Options) {
				ao.Model = anthropicsdk.Model(cfg.ArchitectModel)
				ao.Temperature = cfg.Temperature
			})
		}
		o.ReviewerModel = func() model.Model {
			return openai.NewModel(func(oo *openai.Options) {
				oo.Model = cfg.ReviewerModel
				oo.Temperature = cfg.Temperature
			})
		}
		o.CriticModel = func() model.Model {
			return openai.NewModel(func(oo *openai.Options) {
				oo.Model = cfg.CriticModel
				oo.Temperature = cfg.Temperature
			})
		}
	})

	orch := orchestrator.New(gateway, registry, func(o *orchestrator.Options) {
		o.Logger = logger
		o.HistoryLimit = cfg.HistoryLimit
		o.RunBudget = cfg.RunBudget
		o.HeartbeatInterval = cfg.HeartbeatInterval
	})

	srv := server.New(gateway, orch, func(o *server.Options) {
		o.Addr = cfg.Addr
		o.Logger = logger
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// openStore selects the persistence gateway: postgres when a database URL is
// configured (migrating the schema first), the volatile in-memory gateway
// otherwise.
func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (core.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("no database_url configured, using in-memory storage; data is lost on restart")
		return store.NewInMemoryStore(), func() {}, nil
	}

	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return pg, pg.Close, nil
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
