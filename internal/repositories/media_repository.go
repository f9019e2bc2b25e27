package repositories

import (
	"gorm.io/gorm"

	"kariyer_backend/internal/models"
)

type MediaFilter struct {
	CategoryID string
	MimePrefix string
	Page       int
	PageSize   int
}

type MediaRepository interface {
	CreateCategory(db *gorm.DB, cat *models.MediaCategory) error
	FindCategoryByID(db *gorm.DB, id string) (*models.MediaCategory, error)
	SlugExists(db *gorm.DB, slug, exceptID string) (bool, error)
	ListCategories(db *gorm.DB) ([]models.MediaCategory, error)
	UpdateCategory(db *gorm.DB, cat *models.MediaCategory) error
	DeleteCategory(db *gorm.DB, id string) error

	Create(db *gorm.DB, m *models.Media) error
	FindByID(db *gorm.DB, id string) (*models.Media, error)
	List(db *gorm.DB, filter MediaFilter) ([]models.Media, int64, error)
	Update(db *gorm.DB, m *models.Media) error
	Delete(db *gorm.DB, id string) error
}

type MediaRepositoryImpl struct{}

func NewMediaRepository() MediaRepository {
	return &MediaRepositoryImpl{}
}

func (r *MediaRepositoryImpl) CreateCategory(db *gorm.DB, cat *models.MediaCategory) error {
	if err := db.Create(cat).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrSlugAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MediaRepositoryImpl) FindCategoryByID(db *gorm.DB, id string) (*models.MediaCategory, error) {
	var cat models.MediaCategory
	if err := db.First(&cat, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrMediaCategoryNotFound)
	}
	return &cat, nil
}

func (r *MediaRepositoryImpl) SlugExists(db *gorm.DB, slug, exceptID string) (bool, error) {
	query := db.Model(&models.MediaCategory{}).Where("slug = ?", slug)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *MediaRepositoryImpl) ListCategories(db *gorm.DB) ([]models.MediaCategory, error) {
	var cats []models.MediaCategory
	err := db.Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *MediaRepositoryImpl) UpdateCategory(db *gorm.DB, cat *models.MediaCategory) error {
	if err := db.Save(cat).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrSlugAlreadyExists
		}
		return err
	}
	return nil
}

// DeleteCategory detaches the category's media before removing it. Run inside a transaction.
func (r *MediaRepositoryImpl) DeleteCategory(db *gorm.DB, id string) error {
	if err := db.Model(&models.Media{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
		return err
	}
	result := db.Delete(&models.MediaCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMediaCategoryNotFound
	}
	return nil
}

func (r *MediaRepositoryImpl) Create(db *gorm.DB, m *models.Media) error {
	return db.Create(m).Error
}

func (r *MediaRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Media, error) {
	var m models.Media
	if err := db.Preload("Category").First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrMediaNotFound)
	}
	return &m, nil
}

func (r *MediaRepositoryImpl) List(db *gorm.DB, filter MediaFilter) ([]models.Media, int64, error) {
	query := db.Model(&models.Media{})
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MimePrefix != "" {
		query = query.Where("mime_type LIKE ?", filter.MimePrefix+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Media
	err := query.Preload("Category").
		Scopes(paginate(filter.Page, filter.PageSize)).
		Order("created_at DESC").
		Find(&items).Error
	return items, total, err
}

func (r *MediaRepositoryImpl) Update(db *gorm.DB, m *models.Media) error {
	return db.Omit("Category").Save(m).Error
}

func (r *MediaRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Media{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMediaNotFound
	}
	return nil
}
