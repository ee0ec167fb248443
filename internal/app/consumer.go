package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-elms/internal/events"
	"go-elms/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer delivers notifications for decision and password-reset events
// until interrupted. One reader per topic, same consumer group.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	notifier := consumer.NewLogNotifier(logger)

	topics := []string{
		events.LeaveDecidedTopic,
		events.PasswordResetTopic,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	readers := make([]*kafkago.Reader, 0, len(topics))

	for _, topic := range topics {
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        "go-elms-notifications",
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
		readers = append(readers, reader)

		wg.Add(1)
		go func() {
			defer wg.Done()
			consumer.ConsumeNotifications(ctx, reader, notifier, logger)
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	for _, reader := range readers {
		_ = reader.Close()
	}
	wg.Wait()

	return nil
}
