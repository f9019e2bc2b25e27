package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kariyer_backend/internal/models"
)

type JobFilter struct {
	Query           string
	City            string
	Category        string
	Sector          models.JobSector
	Type            models.JobType
	IncludeInactive bool
	Page            int
	PageSize        int
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.JobListing) error
	FindByID(db *gorm.DB, id string) (*models.JobListing, error)
	List(db *gorm.DB, filter JobFilter) ([]models.JobListing, int64, error)
	Update(db *gorm.DB, job *models.JobListing) error
	Delete(db *gorm.DB, id string) error
	UpsertByExternalID(db *gorm.DB, jobs []models.JobListing) (int64, error)
	DistinctValues(db *gorm.DB, column string) ([]string, error)
	DeactivateExpired(db *gorm.DB, now time.Time) (int64, error)
	CountActive(db *gorm.DB) (int64, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.JobListing) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobListing, error) {
	var job models.JobListing
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrJobNotFound)
	}
	return &job, nil
}

func (r *JobRepositoryImpl) List(db *gorm.DB, filter JobFilter) ([]models.JobListing, int64, error) {
	query := db.Model(&models.JobListing{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(institution) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Sector != "" {
		query = query.Where("sector = ?", filter.Sector)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.JobListing
	err := query.Scopes(paginate(filter.Page, filter.PageSize)).
		Order("posted_at DESC").
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.JobListing) error {
	return db.Save(job).Error
}

func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.JobListing{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// UpsertByExternalID inserts new listings and refreshes existing ones matched by external_id.
func (r *JobRepositoryImpl) UpsertByExternalID(db *gorm.DB, jobs []models.JobListing) (int64, error) {
	if len(jobs) == 0 {
		return 0, nil
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "institution", "city", "sector", "type", "category",
			"description", "requirements", "education", "positions", "salary",
			"source", "source_url", "deadline", "is_active", "updated_at",
		}),
	}).CreateInBatches(jobs, 100)
	return result.RowsAffected, result.Error
}

// DistinctValues lists non-empty distinct values of column among active listings.
func (r *JobRepositoryImpl) DistinctValues(db *gorm.DB, column string) ([]string, error) {
	var values []string
	err := db.Model(&models.JobListing{}).
		Where("is_active = ?", true).
		Where(clause.Neq{Column: clause.Column{Name: column}, Value: ""}).
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	return values, err
}

func (r *JobRepositoryImpl) DeactivateExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.JobListing{}).
		Where("is_active = ? AND deadline IS NOT NULL AND deadline < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *JobRepositoryImpl) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.JobListing{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
