// Package export hands playlist export requests to an external channel and
// delivers them by email from a separate worker.
package export

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Queue is the channel name export jobs are published on.
const Queue = "export:songs"

// Publisher sends a payload to a named queue. A nil error means the channel
// accepted the message; delivery is the consumer's business.
type Publisher interface {
	Publish(ctx context.Context, queue string, payload []byte) error
}

// Handler processes one message. Returning an error leaves the message
// unacknowledged where the channel supports it.
type Handler func(ctx context.Context, payload []byte) error

// Consumer blocks, feeding messages from queue to handle until ctx is done.
type Consumer interface {
	Consume(ctx context.Context, queue string, handle Handler) error
}

// Channel is a queue transport usable from both sides.
type Channel interface {
	Publisher
	Consumer
}

// OpenChannel picks the transport by driver name ("redis" or "kafka"). The
// returned close func releases transport resources owned by the channel; the
// Redis client stays with the caller.
func OpenChannel(driver string, rdb *redis.Client, brokers []string, groupID string, logger *zap.Logger) (Channel, func() error, error) {
	switch driver {
	case "redis":
		return NewRedisChannel(rdb, logger), func() error { return nil }, nil
	case "kafka":
		ch := NewKafkaChannel(brokers, groupID, logger)
		return ch, ch.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown channel driver %q", driver)
	}
}
