package queue

import (
	"context"

	"github.com/hibiken/asynq"

	"meetgrid/core/config"
	"meetgrid/core/constants"
	"meetgrid/core/logger"
)

// Queue wraps the asynq server and scheduler used for background maintenance
type Queue struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func NewQueue(cfg config.RedisConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 1,
	})
	scheduler := asynq.NewScheduler(redisOpt, nil)

	return &Queue{
		server:    server,
		scheduler: scheduler,
		mux:       asynq.NewServeMux(),
	}
}

// RegisterSweep wires the expired-event sweep task on the given cron schedule
func (q *Queue) RegisterSweep(schedule string, handler func(ctx context.Context) error) error {
	q.mux.HandleFunc(constants.TaskSweepExpiredEvents, func(ctx context.Context, _ *asynq.Task) error {
		return handler(ctx)
	})

	task := asynq.NewTask(constants.TaskSweepExpiredEvents, nil)
	if _, err := q.scheduler.Register(schedule, task); err != nil {
		return err
	}

	logger.Info("Registered expired-event sweep", "schedule", schedule)
	return nil
}

// Start runs the worker and scheduler in the background
func (q *Queue) Start() error {
	if err := q.server.Start(q.mux); err != nil {
		return err
	}
	if err := q.scheduler.Start(); err != nil {
		q.server.Shutdown()
		return err
	}
	return nil
}

func (q *Queue) Shutdown() {
	q.scheduler.Shutdown()
	q.server.Shutdown()
}
