package request_models

type ListUsersRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

type UpdateUserRequest struct {
	Role     *string `json:"role"` // super_admin only
	Plan     *string `json:"plan"`
	IsActive *bool   `json:"is_active"`
}
