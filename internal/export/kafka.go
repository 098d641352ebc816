package export

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaChannel maps queues onto topics. Topic names cannot contain ':', so
// "export:songs" becomes "export.songs".
type KafkaChannel struct {
	brokers []string
	groupID string
	writer  *kafka.Writer
	logger  *zap.Logger
	retry   time.Duration
}

// messageReader is the part of *kafka.Reader the consume loop needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

func NewKafkaChannel(brokers []string, groupID string, logger *zap.Logger) *KafkaChannel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaChannel{
		brokers: brokers,
		groupID: groupID,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
		logger: logger,
		retry:  time.Second,
	}
}

func TopicName(queue string) string {
	return strings.ReplaceAll(queue, ":", ".")
}

func (c *KafkaChannel) Publish(ctx context.Context, queue string, payload []byte) error {
	return c.writer.WriteMessages(ctx, kafka.Message{
		Topic: TopicName(queue),
		Value: payload,
	})
}

func (c *KafkaChannel) Consume(ctx context.Context, queue string, handle Handler) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.brokers,
		GroupID: c.groupID,
		Topic:   TopicName(queue),
	})
	defer reader.Close()
	return c.consume(ctx, reader, handle)
}

// consume commits a message only after handle succeeds. A failing message is
// retried before the next one is fetched, so a later commit never moves the
// group offset past it.
func (c *KafkaChannel) consume(ctx context.Context, reader messageReader, handle Handler) error {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Warn("kafka fetch failed", zap.Error(err))
			if !c.wait(ctx) {
				return nil
			}
			continue
		}

		for attempt := 1; ; attempt++ {
			err := handle(ctx, msg.Value)
			if err == nil {
				break
			}
			c.logger.Error("export job failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if !c.wait(ctx) {
				return nil
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warn("kafka commit failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func (c *KafkaChannel) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.retry):
		return true
	}
}

func (c *KafkaChannel) Close() error {
	return c.writer.Close()
}
