package models

import "time"

type JobListing struct {
	BaseModel
	ExternalID   string     `gorm:"size:80;uniqueIndex;not null" json:"external_id"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Institution  string     `gorm:"size:200;not null" json:"institution"`
	City         string     `gorm:"size:80;index" json:"city"`
	Sector       JobSector  `gorm:"type:varchar(20);not null;index" json:"sector"`
	Type         JobType    `gorm:"type:varchar(20);not null" json:"type"`
	Category     string     `gorm:"size:80;index" json:"category"`
	Description  string     `gorm:"type:text" json:"description"`
	Requirements string     `gorm:"type:text" json:"requirements"`
	Education    string     `gorm:"size:80" json:"education"`
	Positions    int        `gorm:"not null;default:1" json:"positions"`
	Salary       string     `gorm:"size:80" json:"salary,omitempty"`
	Source       string     `gorm:"size:80" json:"source"`
	SourceURL    string     `gorm:"size:512" json:"source_url,omitempty"`
	PostedAt     time.Time  `gorm:"index" json:"posted_at"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	IsActive     bool       `gorm:"not null;index" json:"is_active"`
}
