package assignment

type AssignBatchRequest struct {
	TaskIDs []string `json:"task_ids" binding:"required,min=1"`
	UserIDs []string `json:"user_ids" binding:"required,min=1"`
	DueDate *string  `json:"due_date"`
}

type CompleteRequest struct {
	Notes string `json:"notes"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type DeficiencyRequest struct {
	Note string `json:"note" binding:"required"`
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	TaskID        string  `json:"task_id"`
	TaskTitle     *string `json:"task_title,omitempty"`
	UserID        string  `json:"user_id"`
	UserName      *string `json:"user_name,omitempty"`
	AssignedBy    string  `json:"assigned_by"`
	Status        string  `json:"status"`
	Submitted     bool    `json:"submitted"`
	EmployeeNotes string  `json:"employee_notes"`
	AdminNotes    string  `json:"admin_notes"`
	AssignedAt    string  `json:"assigned_at"`
	DueDate       *string `json:"due_date,omitempty"`
	CompletedAt   *string `json:"completed_at,omitempty"`
}
