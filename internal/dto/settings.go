package dto

import (
	"encoding/json"
	"time"
)

type SettingValueRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}

// Page is the content stored under "pages.<slug>".
type Page struct {
	Title     string    `json:"title" validate:"required,max=200"`
	Content   string    `json:"content" validate:"required"`
	UpdatedAt time.Time `json:"updated_at"`
}
