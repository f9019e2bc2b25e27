package repositories

import (
	"gorm.io/gorm"

	"kariyer_backend/internal/models"
)

type AdminLogFilter struct {
	AdminID    string
	Action     string
	EntityType string
	Page       int
	PageSize   int
}

type AdminLogRepository interface {
	Create(db *gorm.DB, entry *models.AdminLog) error
	List(db *gorm.DB, filter AdminLogFilter) ([]models.AdminLog, int64, error)
}

type AdminLogRepositoryImpl struct{}

func NewAdminLogRepository() AdminLogRepository {
	return &AdminLogRepositoryImpl{}
}

func (r *AdminLogRepositoryImpl) Create(db *gorm.DB, entry *models.AdminLog) error {
	return db.Create(entry).Error
}

func (r *AdminLogRepositoryImpl) List(db *gorm.DB, filter AdminLogFilter) ([]models.AdminLog, int64, error) {
	query := db.Model(&models.AdminLog{})
	if filter.AdminID != "" {
		query = query.Where("admin_id = ?", filter.AdminID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AdminLog
	err := query.Scopes(paginate(filter.Page, filter.PageSize)).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, total, err
}
