// Package modelsync рассылает по Redis уведомления о новой версии модели,
// чтобы все реплики перечитали файл модели.
package modelsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"flat_price/pkg/contextx"
	"flat_price/pkg/logx"
)

const DefaultChannel = "flat_price:model:reload"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Publisher struct {
	client  *redis.Client
	channel string
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// Publish сообщает подписчикам версию только что сохранённой модели.
func (p *Publisher) Publish(ctx context.Context, version string) error {
	if err := p.client.Publish(ctx, p.channel, version).Err(); err != nil {
		return fmt.Errorf("redis.Publish: %w", err)
	}

	logger(ctx).Info("model reload published", slog.String(logx.FieldModelVersion, version))

	return nil
}

// ReloadFunc перечитывает модель. Версия из уведомления используется только
// для логов: источником истины остаётся файл.
type ReloadFunc func(ctx context.Context, version string) error

type Subscriber struct {
	client  *redis.Client
	channel string
	reload  ReloadFunc
}

func NewSubscriber(client *redis.Client, channel string, reload ReloadFunc) *Subscriber {
	return &Subscriber{client: client, channel: channel, reload: reload}
}

// Run слушает канал до отмены ctx. Ошибка перезагрузки не останавливает
// подписку: реплика продолжает работать на предыдущей модели.
func (s *Subscriber) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("pubsub.Receive: %w", err)
	}

	logger(ctx).Info("model reload subscription started", slog.String("channel", s.channel))

	messages := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("model reload subscription stopped", slog.String("channel", s.channel))
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			if err := s.reload(ctx, msg.Payload); err != nil {
				logger(ctx).Error(
					"model reload failed",
					slog.String(logx.FieldModelVersion, msg.Payload),
					logx.Error(err),
				)
				continue
			}

			logger(ctx).Info("model reloaded", slog.String(logx.FieldModelVersion, msg.Payload))
		}
	}
}
