package task

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Subtasks    []string `json:"subtasks"`
}

type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type AddSubtaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type SubTaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CreatedBy   string            `json:"created_by"`
	Subtasks    []SubTaskResponse `json:"subtasks"`
}
