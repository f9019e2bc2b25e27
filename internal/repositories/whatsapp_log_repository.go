package repositories

import (
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/models"
)

type WhatsAppLogFilter struct {
	Status   models.WhatsAppLogStatus
	Phone    string
	Page     int
	PageSize int
}

type WhatsAppLogRepository interface {
	Create(db *gorm.DB, entry *models.WhatsAppLog) error
	List(db *gorm.DB, filter WhatsAppLogFilter) ([]models.WhatsAppLog, int64, error)
	CountFailedSince(db *gorm.DB, since time.Time) (int64, error)
}

type WhatsAppLogRepositoryImpl struct{}

func NewWhatsAppLogRepository() WhatsAppLogRepository {
	return &WhatsAppLogRepositoryImpl{}
}

func (r *WhatsAppLogRepositoryImpl) Create(db *gorm.DB, entry *models.WhatsAppLog) error {
	return db.Create(entry).Error
}

func (r *WhatsAppLogRepositoryImpl) List(db *gorm.DB, filter WhatsAppLogFilter) ([]models.WhatsAppLog, int64, error) {
	query := db.Model(&models.WhatsAppLog{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Phone != "" {
		query = query.Where("phone LIKE ?", "%"+filter.Phone+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.WhatsAppLog
	err := query.Scopes(paginate(filter.Page, filter.PageSize)).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, total, err
}

func (r *WhatsAppLogRepositoryImpl) CountFailedSince(db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.WhatsAppLog{}).
		Where("status = ? AND created_at >= ?", models.WhatsAppLogFailed, since).
		Count(&count).Error
	return count, err
}
