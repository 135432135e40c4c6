package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

type AsynqPeriodicTask struct {
	Cronspec string
	Task     *asynq.Task
}

type AsynqScheduler struct {
	RedisUsername string
	RedisPassword string
	RedisAddress  string
	RedisDB       int
}

// Run registers periodic tasks and enqueues them until ctx is cancelled.
// Tasks with an empty cronspec are skipped.
func (s AsynqScheduler) Run(
	ctx context.Context,
	g *errgroup.Group,
	tasks ...AsynqPeriodicTask,
) {
	g.Go(func() error {
		redisConnection := asynq.RedisClientOpt{
			Addr:     s.RedisAddress,
			Username: s.RedisUsername,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		}

		scheduler := asynq.NewScheduler(redisConnection, nil)

		registered := 0

		for _, t := range tasks {
			if t.Cronspec == "" {
				continue
			}

			id, err := scheduler.Register(t.Cronspec, t.Task)
			if err != nil {
				return fmt.Errorf("scheduler.Register(%s): %w", t.Task.Type(), err)
			}

			registered++

			logger(ctx).Info(
				"periodic task registered",
				slog.String("task", t.Task.Type()),
				slog.String("cron", t.Cronspec),
				slog.String("entry-id", id),
			)
		}

		if registered == 0 {
			return nil
		}

		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("scheduler.Start: %w", err)
		}

		logger(ctx).Info("asynq scheduler started", slog.String("redis-address", s.RedisAddress))

		<-ctx.Done()

		scheduler.Shutdown()

		logger(ctx).Info("asynq scheduler stopped", slog.String("redis-address", s.RedisAddress))

		return nil
	})
}
