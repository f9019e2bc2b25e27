package dto

import (
	"time"

	"kariyer_backend/internal/models"
)

type AdminLogQuery struct {
	AdminID    string `form:"admin_id"`
	Action     string `form:"action"`
	EntityType string `form:"entity_type"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type SalesQuery struct {
	From     time.Time
	To       time.Time
	Page     int
	PageSize int
}

type SalesStats struct {
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	TotalAmount float64            `json:"total_amount"`
	TotalCount  int64              `json:"total_count"`
	ByPlan      []SalesBucket      `json:"by_plan"`
	ByMonth     []SalesBucket      `json:"by_month"`
	ByCurrency  map[string]float64 `json:"by_currency"`
}

type SalesBucket struct {
	Key    string  `json:"key"`
	Label  string  `json:"label,omitempty"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type DashboardStats struct {
	Users                 int64   `json:"users"`
	NewUsersThisMonth     int64   `json:"new_users_this_month"`
	PremiumUsers          int64   `json:"premium_users"`
	PendingSubscriptions  int64   `json:"pending_subscriptions"`
	ActiveSubscriptions   int64   `json:"active_subscriptions"`
	ActiveChatRooms       int64   `json:"active_chat_rooms"`
	ActiveJobs            int64   `json:"active_jobs"`
	CVs                   int64   `json:"cvs"`
	RevenueThisMonth      float64 `json:"revenue_this_month"`
	RevenueTotal          float64 `json:"revenue_total"`
	WhatsAppFailedLast24h int64   `json:"whatsapp_failed_last_24h"`
}

// Actor identifies who performs a back-office operation.
type Actor struct {
	UserID string
	Role   models.UserRole
	IP     string
}
