package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/runners"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaNotifier struct {
	writer messageWriter
}

func NewKafkaNotifier(brokers []string, topic string) runners.Notifier {
	return &kafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (n *kafkaNotifier) NotifyAvailableJobs(ctx context.Context) error {
	msg, err := newPing(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal ping: %w", err)
	}
	if err := n.writer.WriteMessages(ctx, kafka.Message{Key: []byte("available-jobs"), Value: msg}); err != nil {
		return fmt.Errorf("failed to write ping: %w", err)
	}
	return nil
}

func (n *kafkaNotifier) Close() error {
	return n.writer.Close()
}
