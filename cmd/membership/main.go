package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/membership/internal/config"
	"github.com/deppfellow/membership/internal/database"
	"github.com/deppfellow/membership/internal/handler"
	"github.com/deppfellow/membership/internal/logger"
	"github.com/deppfellow/membership/internal/repository"
	"github.com/deppfellow/membership/internal/router"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, &log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	services, err := service.NewService(srv, repository.NewRepositories(srv))
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	srv.SetupHTTPServer(router.NewRouter(srv, handler.NewHandlers(srv, services), services))

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with errors")
		return
	}
	log.Info().Msg("server exited properly")
}
