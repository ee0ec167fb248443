package consumer

import (
	"context"
	"encoding/json"

	"go-elms/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeNotifications reads decision and password-reset events and hands
// them to the notifier. Undecodable messages are committed and dropped;
// delivery failures leave the message uncommitted for redelivery.
func ConsumeNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notifications")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		if err := dispatch(ctx, notifier, msg); err != nil {
			log.Error("deliver notification failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
		}
	}
}

func dispatch(ctx context.Context, notifier Notifier, msg kafkago.Message) error {
	switch msg.Topic {
	case events.LeaveDecidedTopic:
		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return nil
		}
		return notifier.NotifyLeaveDecided(ctx, event)

	case events.PasswordResetTopic:
		var event events.PasswordResetRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return nil
		}
		return notifier.NotifyPasswordReset(ctx, event)
	}

	return nil
}
