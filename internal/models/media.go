package models

type MediaCategory struct {
	BaseModel
	Name        string `gorm:"size:120;not null" json:"name"`
	Slug        string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

type Media struct {
	BaseModel
	CategoryID    *string `gorm:"type:varchar(36);index" json:"category_id,omitempty"`
	UploaderID    string  `gorm:"type:varchar(36);not null" json:"uploader_id"`
	OriginalName  string  `gorm:"size:255" json:"original_name"`
	Path          string  `gorm:"size:512;not null" json:"path"`
	URL           string  `gorm:"size:1024" json:"url"`
	ThumbnailPath string  `gorm:"size:512" json:"-"`
	ThumbnailURL  string  `gorm:"size:1024" json:"thumbnail_url,omitempty"`
	MimeType      string  `gorm:"size:120;not null" json:"mime_type"`
	Size          int64   `gorm:"not null" json:"size"`
	Width         int     `json:"width,omitempty"`
	Height        int     `json:"height,omitempty"`
	Alt           string  `gorm:"size:255" json:"alt,omitempty"`

	Category *MediaCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}
