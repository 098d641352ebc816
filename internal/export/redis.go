package export

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisChannel is a work queue on a Redis list: producers RPUSH, consumers
// BLPOP, so each job reaches exactly one worker.
type RedisChannel struct {
	rdb     *redis.Client
	logger  *zap.Logger
	block   time.Duration
	backoff time.Duration
}

func NewRedisChannel(rdb *redis.Client, logger *zap.Logger) *RedisChannel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisChannel{rdb: rdb, logger: logger, block: 5 * time.Second, backoff: time.Second}
}

func listKey(queue string) string { return "queue:" + queue }

func (c *RedisChannel) Publish(ctx context.Context, queue string, payload []byte) error {
	return c.rdb.RPush(ctx, listKey(queue), payload).Err()
}

func (c *RedisChannel) Consume(ctx context.Context, queue string, handle Handler) error {
	key := listKey(queue)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		res, err := c.rdb.BLPop(ctx, c.block, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Warn("queue read failed", zap.String("queue", queue), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}

		// res is [key, value]
		if err := handle(ctx, []byte(res[1])); err != nil {
			c.logger.Error("export job failed", zap.String("queue", queue), zap.Error(err))
		}
	}
}
