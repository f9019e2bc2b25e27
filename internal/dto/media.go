package dto

type MediaCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Slug        string `json:"slug" validate:"omitempty,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

type MediaListQuery struct {
	CategoryID string `form:"category_id"`
	MimePrefix string `form:"type"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type UpdateMediaRequest struct {
	Alt        *string `json:"alt" validate:"omitempty,max=255"`
	CategoryID *string `json:"category_id"`
}

// UploadInput is what the handler extracts from a multipart upload.
type UploadInput struct {
	FileName     string
	MimeType     string
	DeclaredType string
	Size         int64
	Data         []byte
	CategoryID   *string
	Alt          string
}
