package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/handler"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/metrics"
	"github.com/MKhiriev/crimewatch-access/internal/server"
	"github.com/MKhiriev/crimewatch-access/internal/service"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/internal/workers"
	"github.com/MKhiriev/crimewatch-access/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(info)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("accessd").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.Version
	}

	log := logger.NewLogger("accessd").WithLevel(cfg.App.LogLevel)
	log.Debug().
		Str("driver", cfg.Storage.DB.Driver).
		Str("address", cfg.Server.HTTPAddress).
		Str("timezone", cfg.App.Timezone).
		Bool("reap_sessions", cfg.Workers.ReapStaleSessions).
		Bool("enforce_retention", cfg.Workers.EnforceRetention).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("accessd stopped with error")
	}
}

func run(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	recorder := metrics.NewRecorder()

	services, err := service.NewServices(db, *cfg, recorder, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	if cfg.App.SeedDefaultUsers {
		if _, err := services.Credentials.EnsureDefaultUsers(ctx); err != nil {
			return fmt.Errorf("error seeding default users: %w", err)
		}
	}

	handlers, err := handler.NewHandlers(services, recorder, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	bg := workers.NewWorkers(services.Sessions, services.Audit, services.Settings, cfg.Workers, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return bg.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
