package transport

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=12"`
	FullName string   `json:"fullName" validate:"required,min=2,max=120"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=admin recruiter hiring-manager"`
}

type LoginResponse struct {
	AccessToken string          `json:"accessToken"`
	Profile     ProfileResponse `json:"profile"`
}

type ProfileResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Roles       []string   `json:"roles"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
