package events

import "time"

const AssignmentLifecycleTopic = "tasks.assignment.lifecycle.v1"

const (
	TypeAssignmentCreated       = "assignment_created"
	TypeAssignmentStatusChanged = "assignment_status_changed"
)

type AssignmentLifecycleEvent struct {
	EventType    string    `json:"event_type"`
	AssignmentID string    `json:"assignment_id"`
	UserID       string    `json:"user_id"`
	OldStatus    string    `json:"old_status,omitempty"`
	NewStatus    string    `json:"new_status"`
	OccurredAt   time.Time `json:"occurred_at"`
}
