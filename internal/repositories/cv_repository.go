package repositories

import (
	"gorm.io/gorm"

	"kariyer_backend/internal/models"
)

type CVRepository interface {
	Create(db *gorm.DB, cv *models.CV) error
	FindByID(db *gorm.DB, id string) (*models.CV, error)
	ListByUser(db *gorm.DB, userID string) ([]models.CV, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
	Update(db *gorm.DB, cv *models.CV) error
	SetPrimary(db *gorm.DB, userID, cvID string) error
	PromoteLatest(db *gorm.DB, userID string) error
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)
}

type CVRepositoryImpl struct{}

func NewCVRepository() CVRepository {
	return &CVRepositoryImpl{}
}

func (r *CVRepositoryImpl) Create(db *gorm.DB, cv *models.CV) error {
	return db.Create(cv).Error
}

func (r *CVRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.CV, error) {
	var cv models.CV
	if err := db.First(&cv, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCVNotFound)
	}
	return &cv, nil
}

func (r *CVRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.CV, error) {
	var cvs []models.CV
	err := db.Where("user_id = ?", userID).
		Order("is_primary DESC").
		Order("updated_at DESC").
		Find(&cvs).Error
	return cvs, err
}

func (r *CVRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.CV{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *CVRepositoryImpl) Update(db *gorm.DB, cv *models.CV) error {
	return db.Save(cv).Error
}

// SetPrimary makes cvID the user's only primary CV. Run inside a transaction.
func (r *CVRepositoryImpl) SetPrimary(db *gorm.DB, userID, cvID string) error {
	if err := db.Model(&models.CV{}).
		Where("user_id = ? AND id <> ?", userID, cvID).
		Update("is_primary", false).Error; err != nil {
		return err
	}
	result := db.Model(&models.CV{}).
		Where("user_id = ? AND id = ?", userID, cvID).
		Update("is_primary", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCVNotFound
	}
	return nil
}

// PromoteLatest marks the most recently updated CV primary when none is.
func (r *CVRepositoryImpl) PromoteLatest(db *gorm.DB, userID string) error {
	var primaries int64
	if err := db.Model(&models.CV{}).Where("user_id = ? AND is_primary = ?", userID, true).Count(&primaries).Error; err != nil {
		return err
	}
	if primaries > 0 {
		return nil
	}

	var latest models.CV
	err := db.Where("user_id = ?", userID).Order("updated_at DESC").First(&latest).Error
	if err != nil {
		if notFound(err, ErrCVNotFound) == ErrCVNotFound {
			return nil
		}
		return err
	}
	return db.Model(&latest).Update("is_primary", true).Error
}

func (r *CVRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.CV{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCVNotFound
	}
	return nil
}

func (r *CVRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.CV{}).Count(&count).Error
	return count, err
}
