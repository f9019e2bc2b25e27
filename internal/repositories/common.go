package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrStatusChanged         = errors.New("status changed concurrently")
	ErrConsultantNotFound    = errors.New("consultant not found")
	ErrChatRoomNotFound      = errors.New("chat room not found")
	ErrCVNotFound            = errors.New("cv not found")
	ErrJobNotFound           = errors.New("job listing not found")
	ErrMediaNotFound         = errors.New("media not found")
	ErrMediaCategoryNotFound = errors.New("media category not found")
	ErrSlugAlreadyExists     = errors.New("slug already exists")
	ErrSettingNotFound       = errors.New("setting not found")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePage clamps page/pageSize and returns the offset.
func normalizePage(page, pageSize int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		_, size, offset := normalizePage(page, pageSize)
		return db.Offset(offset).Limit(size)
	}
}

// likePattern builds a case-insensitive LIKE pattern for LOWER(column) comparisons.
func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// isDuplicateKey recognises unique-constraint violations across postgres, mysql and sqlite.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry")
}
