package assignment

import (
	"time"

	"github.com/faresbyte/tawseel-task-system/internal/task"
	"github.com/faresbyte/tawseel-task-system/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusDone      = "done"
	StatusRejected  = "rejected"
	StatusDeficient = "deficient"
)

type Assignment struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TaskID uuid.UUID `gorm:"type:uuid;not null;index:idx_assignments_task_day;uniqueIndex:ux_assignments_task_user_day,priority:1"`
	Task   *task.Task
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_assignments_user_day;uniqueIndex:ux_assignments_task_user_day,priority:2"`
	User   *user.User

	// AssignedBy is the admin for one-off instances and the routine
	// creator for materialized ones.
	AssignedBy uuid.UUID `gorm:"type:uuid;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index:idx_assignments_status"`

	// Submitted marks that the employee has responded. A submitted
	// assignment is read-only for the employee until an auditor flags
	// it deficient.
	Submitted bool `gorm:"not null;default:false"`

	EmployeeNotes string `gorm:"type:text"`
	AdminNotes    string `gorm:"type:text"`

	AssignedAt  time.Time  `gorm:"not null;index:idx_assignments_user_day,priority:2;index:idx_assignments_task_day,priority:2"`
	DueDate     *time.Time `gorm:"type:date"`
	CompletedAt *time.Time

	// AssignedOn is the org-local day a routine materialized this row,
	// null for one-off admin instances. Null values never collide, so
	// ux_assignments_task_user_day guards exactly the routine-derived
	// rows: the loser of a concurrent insert race gets 23505.
	AssignedOn *time.Time `gorm:"type:date;uniqueIndex:ux_assignments_task_user_day,priority:3"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_assignments_deleted_at"`
}

// EditableBy reports whether the employee may still act on the
// assignment. Deficient rows are the one reopen path after submission.
func (a Assignment) EditableBy(userID string) bool {
	if a.UserID.String() != userID {
		return false
	}
	return !a.Submitted || a.Status == StatusDeficient
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusPending, StatusDeficient:
		return targetStatus == StatusDone || targetStatus == StatusRejected
	case StatusDone:
		return targetStatus == StatusDeficient
	default:
		return false
	}
}
