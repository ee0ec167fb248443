package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_recorder.go -destination=mock/audit_recorder_mock.go -package=mock
type Recorder interface {
	// Record appends one immutable entry stamped with the current time.
	// Callers decide whether a failure here is fatal for their operation.
	Record(ctx context.Context, action string, actorID *uuid.UUID, metadata *string) error
}

type recorder struct {
	repo   Repository
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("audit.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.recorder")
	}
	return &recorder{repo: repo, logger: l}
}

func (r *recorder) Record(ctx context.Context, action string, actorID *uuid.UUID, metadata *string) error {
	entry := &AuditLogEntry{
		ID:       uuid.New(),
		ActorID:  actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error("audit record failed",
			zap.String("action", action),
			zap.Error(err),
		)
		return err
	}

	fields := []zap.Field{
		zap.String("audit_id", entry.ID.String()),
		zap.String("action", action),
	}
	if actorID != nil {
		fields = append(fields, zap.String("actor_id", actorID.String()))
	}
	if metadata != nil {
		fields = append(fields, zap.String("metadata", *metadata))
	}
	r.logger.Info("audit event", fields...)

	return nil
}
