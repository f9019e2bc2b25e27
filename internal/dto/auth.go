package dto

import (
	"time"

	"kariyer_backend/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone" validate:"omitempty,phone-tr"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=120"`
	Phone *string `json:"phone" validate:"omitempty,phone-tr"`
}

type UserResponse struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Email              string               `json:"email"`
	Phone              string               `json:"phone,omitempty"`
	Role               models.UserRole      `json:"role"`
	Credits            int                  `json:"credits"`
	Tokens             int                  `json:"tokens"`
	IsActive           bool                 `json:"is_active"`
	IsPremium          bool                 `json:"is_premium"`
	ActiveSubscription *models.Subscription `json:"active_subscription,omitempty"`
	LastLoginAt        *time.Time           `json:"last_login_at,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		Credits:     u.Credits,
		Tokens:      u.Tokens,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
