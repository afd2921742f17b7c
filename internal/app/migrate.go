package app

import (
	"database/sql"

	"github.com/faresbyte/tawseel-task-system/internal/assignment"
	"github.com/faresbyte/tawseel-task-system/internal/role"
	"github.com/faresbyte/tawseel-task-system/internal/routine"
	"github.com/faresbyte/tawseel-task-system/internal/task"
	"github.com/faresbyte/tawseel-task-system/internal/user"

	"gorm.io/gorm"
)

var outboxSchema = []string{
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id uuid PRIMARY KEY,
		request_id text,
		aggregate_type text NOT NULL,
		aggregate_id uuid NOT NULL,
		event_type text NOT NULL,
		topic text NOT NULL,
		payload jsonb NOT NULL,
		status varchar(20) NOT NULL DEFAULT 'pending',
		retry_count int NOT NULL DEFAULT 0,
		error_message text,
		next_retry_at timestamptz,
		processed_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT NOW(),
		updated_at timestamptz NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status
		ON outbox_events (status, created_at)`,
}

// migrate declares the schema the repositories rely on. The assignment
// entity carries ux_assignments_task_user_day, which the materializer's
// duplicate-insert tolerance depends on; without it two concurrent
// dashboard reads could each persist the same routine instance.
func migrate(gormDB *gorm.DB, db *sql.DB) error {
	if err := gormDB.AutoMigrate(
		&role.Role{},
		&user.User{},
		&task.Task{},
		&routine.Routine{},
		&assignment.Assignment{},
	); err != nil {
		return err
	}

	for _, stmt := range outboxSchema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
