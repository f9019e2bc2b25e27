package dto

import (
	"time"

	"kariyer_backend/internal/models"
)

type CreateChatRoomRequest struct {
	ConsultantID string `json:"consultant_id" validate:"required"`
	Subject      string `json:"subject" validate:"required,min=2,max=200"`
	Message      string `json:"message" validate:"max=5000"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type ChatRoomListQuery struct {
	Status   models.ChatRoomStatus `form:"status" validate:"omitempty,is-chat-status"`
	Page     int                   `form:"page"`
	PageSize int                   `form:"page_size"`
}

type MessageListQuery struct {
	Before *time.Time
	Limit  int
}

// ChatEvent is pushed to websocket clients.
type ChatEvent struct {
	Type    string              `json:"type"`
	RoomID  string              `json:"room_id"`
	Message *models.ChatMessage `json:"message,omitempty"`
}

const (
	ChatEventMessage    = "message"
	ChatEventRoomClosed = "room_closed"
	ChatEventRead       = "read"
)
