package repositories

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kariyer_backend/internal/models"
)

type SettingsRepository interface {
	Get(db *gorm.DB, key string) (*models.SiteSetting, error)
	List(db *gorm.DB, prefix string) ([]models.SiteSetting, error)
	Upsert(db *gorm.DB, key string, value datatypes.JSON, updatedBy *string) (*models.SiteSetting, error)
	Delete(db *gorm.DB, key string) error
}

type SettingsRepositoryImpl struct{}

func NewSettingsRepository() SettingsRepository {
	return &SettingsRepositoryImpl{}
}

// keyColumn quotes "key", which is reserved in mysql.
var keyColumn = clause.Column{Name: "key"}

func (r *SettingsRepositoryImpl) Get(db *gorm.DB, key string) (*models.SiteSetting, error) {
	var s models.SiteSetting
	if err := db.Where(clause.Eq{Column: keyColumn, Value: key}).First(&s).Error; err != nil {
		return nil, notFound(err, ErrSettingNotFound)
	}
	return &s, nil
}

func (r *SettingsRepositoryImpl) List(db *gorm.DB, prefix string) ([]models.SiteSetting, error) {
	query := db.Model(&models.SiteSetting{})
	if prefix != "" {
		query = query.Where(clause.Like{Column: keyColumn, Value: prefix + "%"})
	}
	var list []models.SiteSetting
	err := query.Order(clause.OrderByColumn{Column: keyColumn}).Find(&list).Error
	return list, err
}

func (r *SettingsRepositoryImpl) Upsert(db *gorm.DB, key string, value datatypes.JSON, updatedBy *string) (*models.SiteSetting, error) {
	setting := &models.SiteSetting{Key: key, Value: value, UpdatedBy: updatedBy}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{keyColumn},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_by": updatedBy,
			"updated_at": time.Now(),
		}),
	}).Create(setting).Error
	if err != nil {
		return nil, err
	}
	return r.Get(db, key)
}

func (r *SettingsRepositoryImpl) Delete(db *gorm.DB, key string) error {
	result := db.Where(clause.Eq{Column: keyColumn, Value: key}).Delete(&models.SiteSetting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}
