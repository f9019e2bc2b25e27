package dto

import "kariyer_backend/internal/models"

type UserListQuery struct {
	Query    string          `form:"q" json:"q"`
	Role     models.UserRole `form:"role" json:"role" validate:"omitempty,is-user-role"`
	Page     int             `form:"page" json:"page"`
	PageSize int             `form:"page_size" json:"page_size"`
}

type AdminUpdateUserRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Phone    *string          `json:"phone" validate:"omitempty,phone-tr"`
	Role     *models.UserRole `json:"role" validate:"omitempty,is-user-role"`
	Credits  *int             `json:"credits" validate:"omitempty,min=0"`
	Tokens   *int             `json:"tokens" validate:"omitempty,min=0"`
	IsActive *bool            `json:"is_active"`
}

type BalanceAdjustRequest struct {
	CreditsDelta int    `json:"credits_delta"`
	TokensDelta  int    `json:"tokens_delta"`
	Reason       string `json:"reason" validate:"required,max=255"`
}
