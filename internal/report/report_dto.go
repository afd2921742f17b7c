package report

import "time"

type EmployeeStats struct {
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	Deficient      int    `json:"deficient"`
	Pending        int    `json:"pending"`
	Rejected       int    `json:"rejected"`
	CompletionRate int    `json:"completion_rate"`
}

type GlobalStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Deficient      int `json:"deficient"`
	Pending        int `json:"pending"`
	Rejected       int `json:"rejected"`
	CompletionRate int `json:"completion_rate"`
}

type DeficiencyRecord struct {
	AssignmentID string    `json:"assignment_id"`
	TaskTitle    string    `json:"task_title"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	Reason       string    `json:"reason"`
	FlaggedAt    time.Time `json:"flagged_at"`
}

type Overview struct {
	GeneratedAt  time.Time          `json:"generated_at"`
	Global       GlobalStats        `json:"global"`
	PerUser      []EmployeeStats    `json:"per_user"`
	Deficiencies []DeficiencyRecord `json:"deficiencies"`
}
