package models

import (
	"time"
)

type Subscription struct {
	BaseModel
	UserID       string             `gorm:"type:varchar(36);not null;index" json:"user_id"`
	PlanID       string             `gorm:"size:64;not null" json:"plan_id"`
	PlanName     string             `gorm:"size:120;not null" json:"plan_name"`
	Amount       float64            `gorm:"not null" json:"amount"`
	Currency     string             `gorm:"size:8;not null;default:TRY" json:"currency"`
	IsPremium    bool               `gorm:"not null;default:false" json:"is_premium"`
	Credits      int                `gorm:"not null;default:0" json:"credits"`
	Tokens       int                `gorm:"not null;default:0" json:"tokens"`
	DurationDays int                `gorm:"not null" json:"duration_days"`
	Status       SubscriptionStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	OrderCode    string             `gorm:"size:32;uniqueIndex;not null" json:"order_code"`
	StartsAt     *time.Time         `json:"starts_at,omitempty"`
	ExpiresAt    *time.Time         `gorm:"index" json:"expires_at,omitempty"`
	ApprovedBy   *string            `gorm:"type:varchar(36)" json:"approved_by,omitempty"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
	Note         string             `gorm:"type:text" json:"note,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// IsCurrent reports whether the subscription grants access at t. An ACTIVE
// subscription queued behind another one is not current before StartsAt.
func (s *Subscription) IsCurrent(t time.Time) bool {
	if s.Status != SubscriptionStatusActive || s.ExpiresAt == nil || !s.ExpiresAt.After(t) {
		return false
	}
	return s.StartsAt == nil || !s.StartsAt.After(t)
}

// Covers reports whether s grants at least the entitlements of other.
func (s *Subscription) Covers(other *Subscription) bool {
	return s.IsPremium || !other.IsPremium
}
