package models

import "gorm.io/datatypes"

type AdminLog struct {
	BaseModel
	AdminID    string         `gorm:"type:varchar(36);not null;index" json:"admin_id"`
	Action     string         `gorm:"size:80;not null;index" json:"action"`
	EntityType string         `gorm:"size:60;index" json:"entity_type"`
	EntityID   string         `gorm:"size:120" json:"entity_id,omitempty"`
	Details    datatypes.JSON `json:"details,omitempty"`
	IP         string         `gorm:"size:64" json:"ip,omitempty"`
}

type SalesRecord struct {
	BaseModel
	UserID         string        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	SubscriptionID string        `gorm:"type:varchar(36);not null;uniqueIndex" json:"subscription_id"`
	PlanID         string        `gorm:"size:64;not null;index" json:"plan_id"`
	PlanName       string        `gorm:"size:120;not null" json:"plan_name"`
	Amount         float64       `gorm:"not null" json:"amount"`
	Currency       string        `gorm:"size:8;not null" json:"currency"`
	OrderCode      string        `gorm:"size:32;not null" json:"order_code"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	RecordedBy     string        `gorm:"type:varchar(36)" json:"recorded_by"`
}

type WhatsAppLog struct {
	BaseModel
	UserID  *string           `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	Phone   string            `gorm:"size:20;not null;index" json:"phone"`
	Message string            `gorm:"type:text;not null" json:"message"`
	Kind    string            `gorm:"size:60;index" json:"kind"`
	Status  WhatsAppLogStatus `gorm:"type:varchar(10);not null;index" json:"status"`
	Error   string            `gorm:"type:text" json:"error,omitempty"`
}

func (WhatsAppLog) TableName() string {
	return "whatsapp_logs"
}
