// Package server holds the application container shared by every layer:
// configuration, logging, Postgres, Redis, the asynq job service and the
// HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/membership/internal/config"
	"github.com/deppfellow/membership/internal/database"
	"github.com/deppfellow/membership/internal/lib/email"
	"github.com/deppfellow/membership/internal/lib/job"
	loggerPkg "github.com/deppfellow/membership/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const redisPingTimeout = 5 * time.Second

type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService

	httpServer *http.Server
}

// New connects to Postgres and Redis and registers the task handlers.
//
// Postgres must be reachable. A Redis outage at boot is only logged: the
// meeting pages still work, while flash messages and queued emails fail
// until it comes back.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("redis unreachable at startup")
	}

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(email.NewClient(cfg, logger))

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           jobService,
	}, nil
}

func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:              ":" + s.Config.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: s.Config.Server.ReadTimeout,
		ReadTimeout:       s.Config.Server.ReadTimeout,
		WriteTimeout:      s.Config.Server.WriteTimeout,
		IdleTimeout:       s.Config.Server.IdleTimeout,
	}
}

// Run starts the job workers and serves HTTP until ctx is cancelled, then
// shuts everything down within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	if err := s.Job.Start(); err != nil {
		return fmt.Errorf("failed to start job workers: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		s.Logger.Info().
			Str("port", s.Config.Server.Port).
			Str("env", s.Config.Primary.Env).
			Msg("starting server")
		serveErr <- s.httpServer.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-ctx.Done():
		s.Logger.Info().Msg("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
	defer cancel()

	return errors.Join(runErr, s.Shutdown(shutdownCtx))
}

// Shutdown drains in-flight requests, then stops the workers and closes
// the database and Redis connections. Every step runs even if an earlier
// one fails.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing redis: %w", err))
		}
	}

	return errors.Join(errs...)
}
