package repositories

import (
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/models"
)

type SalesRepository interface {
	Create(db *gorm.DB, rec *models.SalesRecord) error
	List(db *gorm.DB, from, to time.Time, page, pageSize int) ([]models.SalesRecord, int64, error)
	ListRange(db *gorm.DB, from, to time.Time) ([]models.SalesRecord, error)
	SumAmount(db *gorm.DB, from, to *time.Time) (float64, error)
}

type SalesRepositoryImpl struct{}

func NewSalesRepository() SalesRepository {
	return &SalesRepositoryImpl{}
}

func (r *SalesRepositoryImpl) Create(db *gorm.DB, rec *models.SalesRecord) error {
	return db.Create(rec).Error
}

func (r *SalesRepositoryImpl) List(db *gorm.DB, from, to time.Time, page, pageSize int) ([]models.SalesRecord, int64, error) {
	query := db.Model(&models.SalesRecord{}).Where("created_at >= ? AND created_at <= ?", from, to)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.SalesRecord
	err := query.Scopes(paginate(page, pageSize)).Order("created_at DESC").Find(&records).Error
	return records, total, err
}

func (r *SalesRepositoryImpl) ListRange(db *gorm.DB, from, to time.Time) ([]models.SalesRecord, error) {
	var records []models.SalesRecord
	err := db.Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *SalesRepositoryImpl) SumAmount(db *gorm.DB, from, to *time.Time) (float64, error) {
	query := db.Model(&models.SalesRecord{})
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	var sum float64
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error
	return sum, err
}
