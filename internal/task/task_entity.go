package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubTask is a checklist item embedded in the task definition. Subtasks
// have no lifecycle of their own, so they live in a JSONB column instead
// of a separate table.
type SubTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`

	Subtasks datatypes.JSONSlice[SubTask] `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_tasks_deleted_at"`
}
