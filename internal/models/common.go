package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the uuid primary key and timestamps shared by every table.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All lists every model for AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Subscription{},
		&Consultant{},
		&ChatRoom{},
		&ChatMessage{},
		&CV{},
		&JobListing{},
		&MediaCategory{},
		&Media{},
		&SiteSetting{},
		&AdminLog{},
		&SalesRecord{},
		&WhatsAppLog{},
	}
}
