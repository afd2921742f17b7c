package user

import (
	"time"

	"github.com/faresbyte/tawseel-task-system/internal/role"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeAdmin = "admin"
	TypeUser  = "user"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(150);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`

	UserType string     `gorm:"type:varchar(20);not null;default:'user';index:idx_users_type"`
	RoleID   *uuid.UUID `gorm:"type:uuid"`
	Role     *role.Role `gorm:"foreignKey:RoleID"`

	Disabled bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
}
