package response_models

import "github.com/google/uuid"

type AccountResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Plan     string    `json:"plan"`
	IsActive bool      `json:"is_active"`
	JoinedAt int64     `json:"joined_at"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
