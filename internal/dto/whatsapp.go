package dto

type WhatsAppStatus struct {
	Enabled   bool   `json:"enabled"`
	Connected bool   `json:"connected"`
	LoggedIn  bool   `json:"logged_in"`
	Phone     string `json:"phone,omitempty"`
	PushName  string `json:"push_name,omitempty"`
	HasQR     bool   `json:"has_qr"`
}

type WhatsAppSendRequest struct {
	Phone   string `json:"phone" validate:"required,phone-tr"`
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

type WhatsAppLogQuery struct {
	Status   string `form:"status" validate:"omitempty,oneof=SENT FAILED"`
	Phone    string `form:"phone"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
