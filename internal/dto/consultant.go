package dto

type ConsultantRequest struct {
	UserID    *string  `json:"user_id" validate:"omitempty,uuid"`
	Name      string   `json:"name" validate:"required,min=2,max=120"`
	Title     string   `json:"title" validate:"max=160"`
	Bio       string   `json:"bio" validate:"max=5000"`
	Expertise []string `json:"expertise" validate:"max=20,dive,max=60"`
	AvatarURL string   `json:"avatar_url" validate:"omitempty,url"`
	IsActive  *bool    `json:"is_active"`
	SortOrder int      `json:"sort_order"`
}
