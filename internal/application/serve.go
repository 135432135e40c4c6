package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"flat_price/internal/domain"
	"flat_price/internal/domain/service/dataset"
	"flat_price/internal/domain/service/dedup"
	"flat_price/internal/domain/service/estimator"
	"flat_price/internal/domain/service/price"
	"flat_price/internal/domain/service/training"
	"flat_price/internal/infrastructure/modelstore"
	"flat_price/internal/infrastructure/modelsync"
	"flat_price/internal/server"
	"flat_price/internal/worker"
	"flat_price/pkg/application/modules"
	"flat_price/pkg/logx"
)

const httpServerReadHeaderTimeout = 5 * time.Second

// Serve запускает HTTP API вместе с воркером фоновых задач и подпиской на
// перезагрузку модели. Возвращается после отмены ctx и остановки всех модулей.
func (a *Application) Serve(ctx context.Context) error {
	store := modelstore.NewFileStore(a.cfg.Model.Path)
	est := estimator.New()

	reload := func(ctx context.Context, _ string) error {
		m, err := store.Load(ctx)
		if err != nil {
			return fmt.Errorf("store.Load: %w", err)
		}

		if err := est.Load(m, m.Version); err != nil {
			return fmt.Errorf("est.Load: %w", err)
		}

		return nil
	}

	if err := reload(ctx, ""); err != nil {
		if !errors.Is(err, domain.ErrModelNotLoaded) {
			return err
		}
		logger(ctx).Warn("model file not found, serving without model", slog.String("path", store.Path()))
	} else {
		version, _ := est.Version()
		logger(ctx).Info("model loaded", slog.String(logx.FieldModelVersion, version))
	}

	listings, err := a.Listings(ctx)
	if err != nil {
		return err
	}

	params, err := a.TrainingParams(ctx)
	if err != nil {
		return err
	}

	redisClient := a.redis.Client(ctx)

	trainer := training.NewService(listings, dataset.NewBuilder(dedup.New()), store, params)
	publisher := modelsync.NewPublisher(redisClient, a.cfg.Model.ReloadChannel)
	subscriber := modelsync.NewSubscriber(redisClient, a.cfg.Model.ReloadChannel, reload)

	handlers := worker.NewHandlers(trainer, est, publisher).
		WithScraper(a.newScraper(), listings)

	priceService := price.NewService(est).WithCacheTTL(a.cfg.Model.CacheTTL)

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr: a.cfg.HTTP.ListenAddress,
		Handler: server.NewHandler(
			server.NewServer(server.NewPriceServer(priceService)),
			logx.NewSensitiveDataMasker(),
			a.cfg.Log.FieldMaxLen,
		),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	retrainTask, err := worker.NewRetrainTask("schedule")
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: a.cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)

	modules.ProbeServer{
		Name:          a.cfg.App.Name,
		Version:       a.cfg.App.Version,
		ListenAddress: a.cfg.HTTP.ProbeListenAddress,
		Ready: func() bool {
			_, ok := est.Version()
			return ok
		},
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: a.cfg.HTTP.MetricsListenAddress}.Run(ctx, g)

	g.Go(func() error {
		return subscriber.Run(ctx)
	})

	modules.AsynqServer{
		RedisUsername: a.cfg.Redis.Username,
		RedisPassword: a.cfg.Redis.Password,
		RedisAddress:  a.cfg.Redis.Address,
		RedisDB:       a.cfg.Redis.DatabaseNumber,
		Concurrency:   a.cfg.Worker.Concurrency,
	}.Run(
		ctx,
		g,
		modules.AsynqQueues{worker.QueueDefault: 1},
		modules.AsynqHandler{Pattern: worker.TypeModelRetrain, Handle: handlers.Retrain},
		modules.AsynqHandler{Pattern: worker.TypeListingsScrape, Handle: handlers.Scrape},
	)

	modules.AsynqScheduler{
		RedisUsername: a.cfg.Redis.Username,
		RedisPassword: a.cfg.Redis.Password,
		RedisAddress:  a.cfg.Redis.Address,
		RedisDB:       a.cfg.Redis.DatabaseNumber,
	}.Run(
		ctx,
		g,
		modules.AsynqPeriodicTask{Cronspec: a.cfg.Worker.RetrainCron, Task: retrainTask},
		modules.AsynqPeriodicTask{Cronspec: a.cfg.Worker.ScrapeCron, Task: worker.NewScrapeTask()},
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// EnqueueRetrain ставит задачу переобучения в очередь работающего сервиса.
func (a *Application) EnqueueRetrain(ctx context.Context, reason string) error {
	task, err := worker.NewRetrainTask(reason)
	if err != nil {
		return err
	}

	client := asynq.NewClientFromRedisClient(a.redis.Client(ctx))

	info, err := client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Info("retrain enqueued", slog.String("task-id", info.ID), slog.String("queue", info.Queue))

	return nil
}
