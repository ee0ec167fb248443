package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-elms/internal/audit"
	"go-elms/internal/events"
	leaveerrors "go-elms/internal/leave/errors"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Audit trail action labels.
const (
	ActionAppliedForLeave = "Applied for leave"
	ActionEditedLeave     = "Edited leave request"
	ActionCancelledLeave  = "Cancelled leave request"
)

type operation string

const (
	opCreate operation = "create"
	opEdit   operation = "edit"
	opCancel operation = "cancel"
	opDecide operation = "decide"
)

// auditRequired states, per operation, whether a failed audit write fails
// the whole call. Decide only logs a warning: the decision is already
// committed and the caller is told it succeeded.
var auditRequired = map[operation]bool{
	opCreate: true,
	opEdit:   true,
	opCancel: true,
	opDecide: false,
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	Edit(ctx context.Context, actorID, id string, req EditLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Decide(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, actorID string, canReadAll bool, id string) (LeaveResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	auditor audit.Recorder
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

// NewService wires the leave workflow. outbox may be nil when no broker is
// configured; decisions then simply skip event publication.
func NewService(
	db *sql.DB,
	repo Repository,
	auditor audit.Recorder,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		auditor: auditor,
		outbox:  outbox,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.LockEmployee(ctx, employeeID); err != nil {
		logger.Error("employee lock failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, startDate, endDate, nil)
	if err != nil {
		logger.Error("overlap check failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays(startDate, endDate),
		Reason:     reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		logger.Error("create leave failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		logger.Error("commit failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	meta := fmt.Sprintf("LeaveRequest ID: %s", l.ID)
	if err := s.recordAudit(ctx, opCreate, ActionAppliedForLeave, employeeID, meta); err != nil {
		return LeaveResponse{}, err
	}

	logger.Info("leave request created",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID.String()),
	)
	return mapToResponse(l), nil
}

func (s *service) Edit(ctx context.Context, actorID, id string, req EditLeaveRequest) (LeaveResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapFindError(logger, err)
	}
	if l.EmployeeID != employeeID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	if err := qtx.LockEmployee(ctx, employeeID); err != nil {
		logger.Error("employee lock failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, startDate, endDate, &leaveID)
	if err != nil {
		logger.Error("overlap check failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l.LeaveType = req.LeaveType
	l.StartDate = startDate
	l.EndDate = endDate
	l.TotalDays = totalDays(startDate, endDate)
	l.Reason = reason

	if err := qtx.Update(ctx, l); err != nil {
		logger.Error("update leave failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		logger.Error("commit failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	meta := fmt.Sprintf("LeaveRequest ID: %s", l.ID)
	if err := s.recordAudit(ctx, opEdit, ActionEditedLeave, employeeID, meta); err != nil {
		return LeaveResponse{}, err
	}

	logger.Info("leave request edited", zap.String("leave_id", l.ID.String()))
	return mapToResponse(l), nil
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapFindError(logger, err)
	}
	if l.EmployeeID != employeeID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	l.Status = StatusCancelled

	if err := qtx.Update(ctx, l); err != nil {
		logger.Error("cancel leave failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		logger.Error("commit failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	meta := fmt.Sprintf("LeaveRequest ID: %s", l.ID)
	if err := s.recordAudit(ctx, opCancel, ActionCancelledLeave, employeeID, meta); err != nil {
		return LeaveResponse{}, err
	}

	logger.Info("leave request cancelled", zap.String("leave_id", l.ID.String()))
	return mapToResponse(l), nil
}

func (s *service) Decide(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	managerID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapFindError(logger, err)
	}

	// Decisions apply regardless of current status, so a manager can still
	// override a request the employee raced to cancel.
	now := time.Now().UTC()
	l.Status = req.Decision
	l.ManagerID = &managerID
	l.DecidedAt = &now
	if comment := strings.TrimSpace(req.Comment); comment != "" {
		l.ManagerComment = &comment
	}

	if err := qtx.Update(ctx, l); err != nil {
		logger.Error("decide leave failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	if s.outbox != nil {
		if err := s.enqueueDecidedEvent(ctx, tx, l, req.Decision, managerID, now); err != nil {
			logger.Error("enqueue decision event failed", zap.Error(err))
			return LeaveResponse{}, apperror.ErrInternal
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("commit failed", zap.Error(err))
		return LeaveResponse{}, apperror.ErrInternal
	}

	// A Caser keeps internal state, so build one per call instead of
	// sharing it across concurrent decisions.
	action := cases.Title(language.English).String(strings.ToLower(req.Decision)) + " leave request"
	meta := fmt.Sprintf("Leave ID: %s, Employee ID: %s", l.ID, l.EmployeeID)
	if err := s.recordAudit(ctx, opDecide, action, managerID, meta); err != nil {
		return LeaveResponse{}, err
	}

	logger.Info("leave request decided",
		zap.String("leave_id", l.ID.String()),
		zap.String("decision", req.Decision),
		zap.String("manager_id", managerID.String()),
	)
	return mapToResponse(l), nil
}

func (s *service) GetByID(ctx context.Context, actorID string, canReadAll bool, id string) (LeaveResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapFindError(logger, err)
	}
	if !canReadAll && l.EmployeeID != employeeID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}

	return mapToResponse(l), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}

	var leaves []LeaveRequest
	if canReadAll {
		leaves, err = s.repo.FindAll(ctx)
	} else {
		leaves, err = s.repo.FindAllByEmployee(ctx, employeeID)
	}
	if err != nil {
		logger.Error("list leaves failed", zap.Error(err))
		return nil, apperror.ErrInternal
	}

	resp := make([]LeaveResponse, len(leaves))
	for i := range leaves {
		resp[i] = mapToResponse(&leaves[i])
	}
	return resp, nil
}

func (s *service) recordAudit(ctx context.Context, op operation, action string, actorID uuid.UUID, metadata string) error {
	err := s.auditor.Record(ctx, action, &actorID, &metadata)
	if err == nil {
		return nil
	}
	if auditRequired[op] {
		return err
	}
	contextutil.GetLogger(ctx, s.logger).Warn("audit record failed after commit",
		zap.String("action", action),
		zap.Error(err),
	)
	return nil
}

func (s *service) enqueueDecidedEvent(
	ctx context.Context,
	tx *sql.Tx,
	l *LeaveRequest,
	decision string,
	managerID uuid.UUID,
	occurredAt time.Time,
) error {
	event := events.LeaveDecidedEvent{
		EventType:  events.EventTypeLeaveDecided,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		Decision:   decision,
		DecidedBy:  managerID.String(),
		OccurredAt: occurredAt,
	}
	if l.ManagerComment != nil {
		event.Comment = *l.ManagerComment
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     events.EventTypeLeaveDecided,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapFindError(logger *zap.Logger, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	logger.Error("find leave failed", zap.Error(err))
	return apperror.ErrInternal
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func totalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func mapToResponse(l *LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status,
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.Name
	}
	if l.ManagerID != nil {
		id := l.ManagerID.String()
		resp.ManagerID = &id
	}
	if l.ManagerComment != nil {
		resp.ManagerComment = l.ManagerComment
	}
	if l.DecidedAt != nil {
		ts := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &ts
	}
	return resp
}
