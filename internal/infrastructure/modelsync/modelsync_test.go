package modelsync_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"flat_price/internal/infrastructure/modelsync"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr}) //nolint:exhaustruct
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())

	return client
}

func TestPublishSubscribe(t *testing.T) {
	rq := require.New(t)

	client := redisClient(t)
	channel := "test:model:" + xid.New().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	versions := make(chan string, 2)

	sub := modelsync.NewSubscriber(client, channel, func(_ context.Context, version string) error {
		versions <- version
		if version == "bad" {
			return errors.New("schema mismatch")
		}
		return nil
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sub.Run(gctx) })

	pub := modelsync.NewPublisher(client, channel)

	rq.Eventually(func() bool {
		n, err := client.PubSubNumSub(ctx, channel).Result()
		return err == nil && n[channel] == 1
	}, 5*time.Second, 50*time.Millisecond)

	rq.NoError(pub.Publish(ctx, "bad"))
	rq.NoError(pub.Publish(ctx, "v2"))

	rq.Equal("bad", <-versions)
	rq.Equal("v2", <-versions)

	cancel()
	rq.NoError(g.Wait())
}
