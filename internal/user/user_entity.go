package user

import (
	"time"

	"go-elms/internal/authz"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string     `gorm:"column:name;type:varchar(120);not null"`
	Email    string     `gorm:"column:email;type:text;not null;uniqueIndex:uq_user_email"`
	Password string     `gorm:"column:password;type:text;not null"`
	Role     authz.Role `gorm:"column:role;type:varchar(20);not null;default:'EMPLOYEE'"`
	IsActive bool       `gorm:"column:is_active;default:true"`

	// Users are the one entity that is hard-deleted (admin action), so no
	// gorm soft-delete column here.
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
