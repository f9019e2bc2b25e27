package models

import "time"

type User struct {
	BaseModel
	Name          string     `gorm:"size:120;not null" json:"name"`
	Email         string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	Phone         string     `gorm:"size:20" json:"phone,omitempty"`
	Role          UserRole   `gorm:"type:varchar(20);not null;default:USER;index" json:"role"`
	Credits       int        `gorm:"not null;default:0" json:"credits"`
	Tokens        int        `gorm:"not null;default:0" json:"tokens"`
	IsActive      bool       `gorm:"not null" json:"is_active"`
	ResetToken    string     `gorm:"size:128;index" json:"-"`
	ResetTokenExp *time.Time `json:"-"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}
