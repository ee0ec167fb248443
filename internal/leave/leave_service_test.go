package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"go-elms/internal/leave"
	leaveerrors "go-elms/internal/leave/errors"
	"go-elms/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	lockEmployeeFn         func(ctx context.Context, employeeID uuid.UUID) error
	createFn               func(ctx context.Context, l *leave.LeaveRequest) error
	findByIDFn             func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error)
	findAllByEmployeeFn    func(ctx context.Context, employeeID uuid.UUID) ([]leave.LeaveRequest, error)
	findAllFn              func(ctx context.Context) ([]leave.LeaveRequest, error)
	updateFn               func(ctx context.Context, l *leave.LeaveRequest) error
	hasOverlappingPeriodFn func(ctx context.Context, employeeID uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) LockEmployee(ctx context.Context, employeeID uuid.UUID) error {
	if f.lockEmployeeFn != nil {
		return f.lockEmployeeFn(ctx, employeeID)
	}
	return nil
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByEmployee(ctx context.Context, employeeID uuid.UUID) ([]leave.LeaveRequest, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, employeeID uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

type fakeRecorder struct {
	recordFn func(ctx context.Context, action string, actorID *uuid.UUID, metadata *string) error
}

func (f *fakeRecorder) Record(ctx context.Context, action string, actorID *uuid.UUID, metadata *string) error {
	if f.recordFn != nil {
		return f.recordFn(ctx, action, actorID, metadata)
	}
	return nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type leaveServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	recorder *fakeRecorder
	outbox   *fakeOutboxRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	recorder := &fakeRecorder{}
	outbox := &fakeOutboxRepository{}
	svc := leave.NewService(db, repo, recorder, outbox)

	return &leaveServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		recorder: recorder,
		outbox:   outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Reason:    "Family event",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, eid uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
			assert.Equal(t, actorID, eid.String())
			assert.Nil(t, excludeID)
			assert.Equal(t, "2026-03-01", startDate.Format("2006-01-02"))
			assert.Equal(t, "2026-03-03", endDate.Format("2006-01-02"))
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, actorID, l.EmployeeID.String())
			assert.Equal(t, leave.TypeCasual, l.LeaveType)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		var auditedAction string
		var auditedMeta string
		deps.recorder.recordFn = func(ctx context.Context, action string, aid *uuid.UUID, metadata *string) error {
			auditedAction = action
			assert.Equal(t, actorID, aid.String())
			if metadata != nil {
				auditedMeta = *metadata
			}
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, actorID, resp.EmployeeID)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, leave.ActionAppliedForLeave, auditedAction)
		assert.Contains(t, auditedMeta, "LeaveRequest ID: "+resp.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlapping period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			LeaveType: leave.TypeSick,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
			Reason:    "Flu",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, eid uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative end before start rejected before overlap check", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			LeaveType: leave.TypeEarned,
			StartDate: "2026-03-05",
			EndDate:   "2026-03-01",
			Reason:    "Trip",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, eid uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
			t.Fatal("overlap check must not run for an invalid range")
			return false, nil
		}

		_, err := deps.service.Create(ctx, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative blank reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			LeaveType: leave.TypeSick,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
			Reason:    "   ",
		}

		_, err := deps.service.Create(ctx, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrReasonRequired)
	})

	t.Run("success employee lock is held before the overlap check", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
			Reason:    "Family event",
		}

		locked := false
		deps.repo.lockEmployeeFn = func(ctx context.Context, eid uuid.UUID) error {
			assert.Equal(t, actorID, eid.String())
			locked = true
			return nil
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, eid uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
			assert.True(t, locked, "overlap check must run with the employee lock held")
			return false, nil
		}

		_, err := deps.service.Create(ctx, actorID, req)

		assert.NoError(t, err)
		assert.True(t, locked)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee lock failure rolls back", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.lockEmployeeFn = func(ctx context.Context, eid uuid.UUID) error {
			return errors.New("lock timeout")
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, eid uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
			t.Fatal("overlap check must not run without the employee lock")
			return false, nil
		}

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveType: leave.TypeSick,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
			Reason:    "Flu",
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative audit failure fails the creation", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-03-01",
			EndDate:   "2026-03-01",
			Reason:    "Errand",
		}

		auditErr := errors.New("audit store down")
		deps.recorder.recordFn = func(ctx context.Context, action string, aid *uuid.UUID, metadata *string) error {
			return auditErr
		}

		_, err := deps.service.Create(ctx, actorID, req)

		assert.ErrorIs(t, err, auditErr)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Edit(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	leaveID := uuid.New().String()

	pendingOwnedBy := func(owner string) *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:         uuid.MustParse(leaveID),
			EmployeeID: uuid.MustParse(owner),
			LeaveType:  leave.TypeCasual,
			StartDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
			TotalDays:  2,
			Reason:     "Old reason",
			Status:     leave.StatusPending,
		}
	}

	t.Run("success excludes own request from overlap check", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.EditLeaveRequest{
			LeaveType: leave.TypeEarned,
			StartDate: "2026-06-10",
			EndDate:   "2026-06-12",
			Reason:    "New reason",
		}

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			return pendingOwnedBy(actorID), nil
		}
		locked := false
		deps.repo.lockEmployeeFn = func(ctx context.Context, eid uuid.UUID) error {
			assert.Equal(t, actorID, eid.String())
			locked = true
			return nil
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, eid uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
			assert.True(t, locked, "overlap check must run with the employee lock held")
			assert.NotNil(t, excludeID)
			assert.Equal(t, leaveID, excludeID.String())
			return false, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.TypeEarned, l.LeaveType)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, "New reason", l.Reason)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		var auditedAction string
		deps.recorder.recordFn = func(ctx context.Context, action string, aid *uuid.UUID, metadata *string) error {
			auditedAction = action
			return nil
		}

		resp, err := deps.service.Edit(ctx, actorID, leaveID, req)

		assert.NoError(t, err)
		assert.Equal(t, leave.TypeEarned, resp.LeaveType)
		assert.Equal(t, leave.ActionEditedLeave, auditedAction)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not the owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			return pendingOwnedBy(uuid.New().String()), nil
		}

		_, err := deps.service.Edit(ctx, actorID, leaveID, leave.EditLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-06-10",
			EndDate:   "2026-06-12",
			Reason:    "New reason",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			l := pendingOwnedBy(actorID)
			l.Status = leave.StatusApproved
			return l, nil
		}

		_, err := deps.service.Edit(ctx, actorID, leaveID, leave.EditLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-06-10",
			EndDate:   "2026-06-12",
			Reason:    "New reason",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	leaveID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:         uuid.MustParse(leaveID),
				EmployeeID: uuid.MustParse(actorID),
				Status:     leave.StatusPending,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusCancelled, l.Status)
			return nil
		}

		var auditedAction string
		deps.recorder.recordFn = func(ctx context.Context, action string, aid *uuid.UUID, metadata *string) error {
			auditedAction = action
			return nil
		}

		resp, err := deps.service.Cancel(ctx, actorID, leaveID)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.Equal(t, leave.ActionCancelledLeave, auditedAction)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative cancelling twice", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:         uuid.MustParse(leaveID),
				EmployeeID: uuid.MustParse(actorID),
				Status:     leave.StatusCancelled,
			}, nil
		}

		_, err := deps.service.Cancel(ctx, actorID, leaveID)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()
	managerID := uuid.New().String()
	employeeID := uuid.New()
	leaveID := uuid.New().String()

	pending := func() *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:         uuid.MustParse(leaveID),
			EmployeeID: employeeID,
			Status:     leave.StatusPending,
		}
	}

	t.Run("success approval records decision and queues event", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			return pending(), nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusApproved, l.Status)
			assert.NotNil(t, l.ManagerID)
			assert.Equal(t, managerID, l.ManagerID.String())
			assert.NotNil(t, l.ManagerComment)
			assert.Equal(t, "Enjoy", *l.ManagerComment)
			assert.NotNil(t, l.DecidedAt)
			return nil
		}

		var queued kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = event
			return nil
		}

		var auditedAction, auditedMeta string
		deps.recorder.recordFn = func(ctx context.Context, action string, aid *uuid.UUID, metadata *string) error {
			auditedAction = action
			assert.Equal(t, managerID, aid.String())
			if metadata != nil {
				auditedMeta = *metadata
			}
			return nil
		}

		resp, err := deps.service.Decide(ctx, managerID, leaveID, leave.DecideLeaveRequest{
			Decision: leave.StatusApproved,
			Comment:  "Enjoy",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, "Approved leave request", auditedAction)
		assert.Contains(t, auditedMeta, "Leave ID: "+leaveID)
		assert.Contains(t, auditedMeta, "Employee ID: "+employeeID.String())
		assert.Equal(t, leaveID, queued.AggregateID)
		assert.Contains(t, string(queued.Payload), leave.StatusApproved)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success rejection of a non-pending request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			l := pending()
			l.Status = leave.StatusCancelled
			return l, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusRejected, l.Status)
			return nil
		}

		resp, err := deps.service.Decide(ctx, managerID, leaveID, leave.DecideLeaveRequest{
			Decision: leave.StatusRejected,
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success concurrent decisions title their audit actions", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		const workers = 8
		deps.sqlMock.MatchExpectationsInOrder(false)
		for i := 0; i < workers; i++ {
			deps.sqlMock.ExpectBegin()
			deps.sqlMock.ExpectCommit()
		}

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			return pending(), nil
		}

		var mu sync.Mutex
		actions := make(map[string]int)
		deps.recorder.recordFn = func(ctx context.Context, action string, aid *uuid.UUID, metadata *string) error {
			mu.Lock()
			actions[action]++
			mu.Unlock()
			return nil
		}

		var wg sync.WaitGroup
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			decision := leave.StatusApproved
			if i%2 == 1 {
				decision = leave.StatusRejected
			}
			wg.Add(1)
			go func(i int, decision string) {
				defer wg.Done()
				_, errs[i] = deps.service.Decide(ctx, managerID, leaveID, leave.DecideLeaveRequest{
					Decision: decision,
				})
			}(i, decision)
		}
		wg.Wait()

		for i := range errs {
			assert.NoError(t, errs[i])
		}
		assert.Equal(t, workers/2, actions["Approved leave request"])
		assert.Equal(t, workers/2, actions["Rejected leave request"])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success even when the audit write fails", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			return pending(), nil
		}
		deps.recorder.recordFn = func(ctx context.Context, action string, aid *uuid.UUID, metadata *string) error {
			return errors.New("audit store down")
		}

		resp, err := deps.service.Decide(ctx, managerID, leaveID, leave.DecideLeaveRequest{
			Decision: leave.StatusApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("success own requests only", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByEmployeeFn = func(ctx context.Context, employeeID uuid.UUID) ([]leave.LeaveRequest, error) {
			assert.Equal(t, actorID, employeeID.String())
			return []leave.LeaveRequest{
				{
					ID:         uuid.New(),
					EmployeeID: employeeID,
					LeaveType:  leave.TypeSick,
					StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
					EndDate:    time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
					TotalDays:  2,
					Status:     leave.StatusPending,
				},
			}, nil
		}
		deps.repo.findAllFn = func(ctx context.Context) ([]leave.LeaveRequest, error) {
			t.Fatal("must not list everyone's requests without read_all")
			return nil, nil
		}

		resp, err := deps.service.GetAll(ctx, actorID, false)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, actorID, resp[0].EmployeeID)
	})

	t.Run("success read all", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]leave.LeaveRequest, error) {
			return []leave.LeaveRequest{{ID: uuid.New()}, {ID: uuid.New()}}, nil
		}

		resp, err := deps.service.GetAll(ctx, actorID, true)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]leave.LeaveRequest, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.GetAll(ctx, actorID, true)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	leaveID := uuid.New().String()

	t.Run("negative another employee's request without read_all", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:         uuid.MustParse(leaveID),
				EmployeeID: uuid.New(),
				Status:     leave.StatusPending,
			}, nil
		}

		_, err := deps.service.GetByID(ctx, actorID, false, leaveID)

		assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
	})

	t.Run("success with read_all", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:         uuid.MustParse(leaveID),
				EmployeeID: uuid.New(),
				Status:     leave.StatusApproved,
			}, nil
		}

		resp, err := deps.service.GetByID(ctx, actorID, true, leaveID)

		assert.NoError(t, err)
		assert.Equal(t, leaveID, resp.ID)
	})
}
