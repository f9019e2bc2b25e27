package models

import "time"

type ChatRoom struct {
	BaseModel
	UserID        string         `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ConsultantID  string         `gorm:"type:varchar(36);not null;index" json:"consultant_id"`
	Subject       string         `gorm:"size:200" json:"subject"`
	Status        ChatRoomStatus `gorm:"type:varchar(20);not null;default:ACTIVE;index" json:"status"`
	LastMessageAt *time.Time     `json:"last_message_at,omitempty"`
	ClosedAt      *time.Time     `json:"closed_at,omitempty"`
	ClosedBy      *string        `gorm:"type:varchar(36)" json:"closed_by,omitempty"`

	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Consultant *Consultant `gorm:"foreignKey:ConsultantID;constraint:OnDelete:CASCADE" json:"consultant,omitempty"`
}

type ChatMessage struct {
	BaseModel
	RoomID     string     `gorm:"type:varchar(36);not null;index" json:"room_id"`
	SenderID   string     `gorm:"type:varchar(36);not null" json:"sender_id"`
	SenderType SenderType `gorm:"type:varchar(20);not null" json:"sender_type"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	ReadAt     *time.Time `json:"read_at,omitempty"`

	Room *ChatRoom `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}
