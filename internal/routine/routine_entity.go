package routine

import (
	"time"

	"github.com/faresbyte/tawseel-task-system/internal/task"
	"github.com/faresbyte/tawseel-task-system/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CadenceDaily   = "daily"
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
)

type Routine struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TaskID uuid.UUID `gorm:"type:uuid;not null;index:idx_routines_task_user"`
	Task   *task.Task
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_routines_task_user"`
	User   *user.User

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	Cadence string `gorm:"type:varchar(20);not null;default:'daily'"`
	Active  bool   `gorm:"not null;default:true;index:idx_routines_active"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_routines_deleted_at"`
}

// DueOn reports whether the routine should materialize an assignment on
// the given day. The day is evaluated in now's location.
//
// Daily routines are due every day. Weekly routines fire on the weekday
// the routine was created. Monthly routines fire on the creation day of
// month, clamped to the last day of shorter months so a routine created
// on the 31st still fires in February.
func (r Routine) DueOn(now time.Time) bool {
	switch r.Cadence {
	case CadenceDaily:
		return true
	case CadenceWeekly:
		return now.Weekday() == r.CreatedAt.In(now.Location()).Weekday()
	case CadenceMonthly:
		created := r.CreatedAt.In(now.Location())
		day := created.Day()
		if last := lastDayOfMonth(now); day > last {
			day = last
		}
		return now.Day() == day
	default:
		return false
	}
}

func lastDayOfMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
