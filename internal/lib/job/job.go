// Package job runs background work on asynq: RSVP confirmation emails and
// Meetup RSVP imports. Tasks are enqueued through Client and processed by
// the worker pool started with Start.
package job

import (
	"context"
	"time"

	"github.com/deppfellow/membership/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Queues, highest priority first.
const (
	QueueEmails = "emails"
	QueueSync   = "sync"
)

type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	emailClient EmailSender
	handlers    map[string]asynq.Handler
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	j := &JobService{
		Client:   asynq.NewClient(redisOpt),
		logger:   logger,
		handlers: make(map[string]asynq.Handler),
	}

	j.server = asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueEmails: 3,
			QueueSync:   1,
		},
		Logger:       newAsynqLogger(logger),
		ErrorHandler: asynq.ErrorHandlerFunc(j.reportFailure),
	})

	return j
}

// RegisterHandler adds a handler for taskType. It must be called before Start.
func (j *JobService) RegisterHandler(taskType string, handler asynq.HandlerFunc) {
	j.handlers[taskType] = handler
}

// Start builds the task mux and starts the worker pool without blocking.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.Use(j.logTask)

	if j.emailClient != nil {
		mux.HandleFunc(TaskRSVPConfirmation, j.handleRSVPConfirmationTask)
	}
	for taskType, handler := range j.handlers {
		mux.Handle(taskType, handler)
	}

	j.logger.Info().Int("handlers", len(j.handlers)).Msg("starting background job server")
	return j.server.Start(mux)
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("closing job client")
	}
}

func (j *JobService) logTask(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		start := time.Now()
		err := next.ProcessTask(ctx, t)
		j.logger.Debug().
			Str("task", t.Type()).
			Dur("duration", time.Since(start)).
			Bool("ok", err == nil).
			Msg("task processed")
		return err
	})
}

// reportFailure logs every failed attempt, at error level once retries
// are exhausted.
func (j *JobService) reportFailure(ctx context.Context, t *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	event := j.logger.Warn()
	if retried >= maxRetry {
		event = j.logger.Error()
	}
	event.
		Err(err).
		Str("task", t.Type()).
		Int("retried", retried).
		Int("max_retry", maxRetry).
		Msg("task failed")
}
