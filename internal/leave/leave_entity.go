package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	TypeSick   = "SICK"
	TypeCasual = "CASUAL"
	TypeEarned = "EARNED"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveType string    `gorm:"column:leave_type;type:varchar(30);not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays int       `gorm:"column:total_days;type:int;not null;default:1"`
	Reason    string    `gorm:"column:reason;type:text;not null"`

	Status         string     `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index"`
	ManagerID      *uuid.UUID `gorm:"column:manager_id;type:uuid"`
	ManagerComment *string    `gorm:"column:manager_comment;type:text"`
	DecidedAt      *time.Time `gorm:"column:decided_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Joined for denormalized listings
	Employee *LeaveEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveEmployee is the minimal join projection of the owning user
type LeaveEmployee struct {
	ID   uuid.UUID `gorm:"primaryKey"`
	Name string    `gorm:"column:name"`
}

func (LeaveEmployee) TableName() string {
	return "users"
}
