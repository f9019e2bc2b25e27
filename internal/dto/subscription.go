package dto

import "kariyer_backend/internal/models"

// Plan is one purchasable package; the list lives in the "plans" setting.
type Plan struct {
	ID           string   `json:"id" validate:"required,max=64"`
	Name         string   `json:"name" validate:"required,max=120"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price" validate:"min=0"`
	Currency     string   `json:"currency" validate:"required,len=3"`
	DurationDays int      `json:"duration_days" validate:"required,min=1"`
	Credits      int      `json:"credits" validate:"min=0"`
	Tokens       int      `json:"tokens" validate:"min=0"`
	IsPremium    bool     `json:"is_premium"`
	IsActive     bool     `json:"is_active"`
	Features     []string `json:"features"`
}

type UpdatePlansRequest struct {
	Plans []Plan `json:"plans" validate:"required,dive"`
}

// PaymentInfo holds the bank transfer details shown to buyers.
type PaymentInfo struct {
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
	IBAN          string `json:"iban"`
	Branch        string `json:"branch,omitempty"`
	Instructions  string `json:"instructions,omitempty"`
}

type CreateSubscriptionRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

type CreateSubscriptionResponse struct {
	Subscription *models.Subscription `json:"subscription"`
	PaymentInfo  *PaymentInfo         `json:"payment_info"`
}

type MySubscriptionsResponse struct {
	Active  *models.Subscription  `json:"active,omitempty"`
	History []models.Subscription `json:"history"`
}

type SubscriptionListQuery struct {
	Status   models.SubscriptionStatus `form:"status" validate:"omitempty,is-subscription-status"`
	Query    string                    `form:"q"`
	Page     int                       `form:"page"`
	PageSize int                       `form:"page_size"`
}

type RejectSubscriptionRequest struct {
	Note string `json:"note" validate:"max=500"`
}

type ExtendSubscriptionRequest struct {
	Days int `json:"days" validate:"required,min=1,max=3650"`
}
