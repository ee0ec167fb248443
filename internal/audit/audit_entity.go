package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry is append-only: no update or delete path exists anywhere in
// the codebase. ActorID is nullable for system actions.
type AuditLogEntry struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorID  *uuid.UUID `gorm:"column:actor_id;type:uuid;index"`
	Action   string     `gorm:"column:action;type:varchar(255);not null"`
	Metadata *string    `gorm:"column:metadata;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AuditLogEntry) TableName() string {
	return "audit_logs"
}
