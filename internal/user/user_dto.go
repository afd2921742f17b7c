package user

type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	UserType string  `json:"user_type" binding:"required,oneof=admin user"`
	RoleID   *string `json:"role_id"`
}

type UpdateUserRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	UserType string  `json:"user_type" binding:"required,oneof=admin user"`
	RoleID   *string `json:"role_id"`
}

type SetDisabledRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	UserType string  `json:"user_type"`
	RoleID   *string `json:"role_id,omitempty"`
	RoleName *string `json:"role_name,omitempty"`
	Disabled bool    `json:"disabled"`
}
