package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *AuditLogEntry) error
	FindAll(ctx context.Context, actorID string, limit, offset int) ([]AuditLogEntry, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindAll(ctx context.Context, actorID string, limit, offset int) ([]AuditLogEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&AuditLogEntry{})
	if actorID != "" {
		q = q.Where("actor_id = ?", actorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []AuditLogEntry
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error

	return entries, total, err
}
