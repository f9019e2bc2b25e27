package dto

import "encoding/json"

type CVRequest struct {
	Title    string          `json:"title" validate:"required,min=1,max=160"`
	Template string          `json:"template" validate:"omitempty,oneof=classic modern minimal"`
	Data     json.RawMessage `json:"data" validate:"required"`
}

type ImproveTextRequest struct {
	Section  string `json:"section" validate:"required,max=60"`
	Text     string `json:"text" validate:"required,min=3,max=4000"`
	Language string `json:"language" validate:"omitempty,oneof=tr en"`
}

type ImproveTextResponse struct {
	Improved string `json:"improved"`
}
