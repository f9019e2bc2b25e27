package repositories

import (
	"gorm.io/gorm"

	"kariyer_backend/internal/models"
)

type ConsultantRepository interface {
	Create(db *gorm.DB, c *models.Consultant) error
	FindByID(db *gorm.DB, id string) (*models.Consultant, error)
	FindIDsByUser(db *gorm.DB, userID string) ([]string, error)
	List(db *gorm.DB, activeOnly bool) ([]models.Consultant, error)
	Update(db *gorm.DB, c *models.Consultant) error
	Delete(db *gorm.DB, id string) error
}

type ConsultantRepositoryImpl struct{}

func NewConsultantRepository() ConsultantRepository {
	return &ConsultantRepositoryImpl{}
}

func (r *ConsultantRepositoryImpl) Create(db *gorm.DB, c *models.Consultant) error {
	return db.Create(c).Error
}

func (r *ConsultantRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Consultant, error) {
	var c models.Consultant
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrConsultantNotFound)
	}
	return &c, nil
}

// FindIDsByUser lists consultant profiles linked to a user account.
func (r *ConsultantRepositoryImpl) FindIDsByUser(db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.Consultant{}).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

func (r *ConsultantRepositoryImpl) List(db *gorm.DB, activeOnly bool) ([]models.Consultant, error) {
	query := db.Model(&models.Consultant{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var list []models.Consultant
	err := query.Order("sort_order ASC").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *ConsultantRepositoryImpl) Update(db *gorm.DB, c *models.Consultant) error {
	return db.Save(c).Error
}

// Delete removes the consultant together with its chat rooms and messages.
func (r *ConsultantRepositoryImpl) Delete(db *gorm.DB, id string) error {
	roomIDs := db.Model(&models.ChatRoom{}).Select("id").Where("consultant_id = ?", id)
	if err := db.Where("room_id IN (?)", roomIDs).Delete(&models.ChatMessage{}).Error; err != nil {
		return err
	}
	if err := db.Where("consultant_id = ?", id).Delete(&models.ChatRoom{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Consultant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConsultantNotFound
	}
	return nil
}
