package role

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a job-title label. Names are unique by convention only, and
// deleting a role leaves existing user references dangling on purpose.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null;index:idx_roles_name"`
	Description string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_roles_deleted_at"`
}
