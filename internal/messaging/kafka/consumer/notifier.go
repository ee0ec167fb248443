package consumer

import (
	"context"

	"go-elms/internal/events"

	"go.uber.org/zap"
)

// Notifier delivers user-facing notifications. The default implementation
// only logs; a mail or chat integration satisfies the same interface.
type Notifier interface {
	NotifyLeaveDecided(ctx context.Context, event events.LeaveDecidedEvent) error
	NotifyPasswordReset(ctx context.Context, event events.PasswordResetRequestedEvent) error
}

type logNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{logger: logger.Named("notifier")}
}

func (n *logNotifier) NotifyLeaveDecided(_ context.Context, event events.LeaveDecidedEvent) error {
	n.logger.Info("leave decision notification",
		zap.String("leave_id", event.LeaveID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("decision", event.Decision),
		zap.String("decided_by", event.DecidedBy),
	)
	return nil
}

func (n *logNotifier) NotifyPasswordReset(_ context.Context, event events.PasswordResetRequestedEvent) error {
	n.logger.Info("password reset notification",
		zap.String("user_id", event.UserID),
		zap.Time("expires_at", event.ExpiresAt),
	)
	return nil
}
