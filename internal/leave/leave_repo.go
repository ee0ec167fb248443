package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockEmployee(ctx context.Context, employeeID uuid.UUID) error
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	HasOverlappingPeriod(ctx context.Context, employeeID uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// session returns a gorm handle bound to ctx, routed through the caller's
// transaction when one was attached with WithTx.
func (r *repository) session(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
		db.Statement.ConnPool = r.tx
	}
	return db
}

// LockEmployee serializes writers for one employee's leave requests. The
// advisory lock is transaction scoped, so it is released at commit or
// rollback; under READ COMMITTED this is what keeps two concurrent
// submissions from both passing the overlap check.
func (r *repository) LockEmployee(ctx context.Context, employeeID uuid.UUID) error {
	return r.session(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", employeeID.String()).Error
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.session(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.session(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.session(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.session(ctx).
		Preload("Employee").
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.session(ctx).Omit("Employee").Save(l).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
	db := r.session(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusCancelled).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
