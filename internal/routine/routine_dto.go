package routine

type CreateRoutinesRequest struct {
	TaskIDs []string `json:"task_ids" binding:"required,min=1"`
	UserIDs []string `json:"user_ids" binding:"required,min=1"`
	Cadence string   `json:"cadence" binding:"required,oneof=daily weekly monthly"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type RoutineResponse struct {
	ID        string  `json:"id"`
	TaskID    string  `json:"task_id"`
	TaskTitle *string `json:"task_title,omitempty"`
	UserID    string  `json:"user_id"`
	UserName  *string `json:"user_name,omitempty"`
	CreatedBy string  `json:"created_by"`
	Cadence   string  `json:"cadence"`
	Active    bool    `json:"active"`
}
