package repositories

import (
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/models"
)

type SubscriptionFilter struct {
	Status   models.SubscriptionStatus
	Query    string
	Page     int
	PageSize int
}

type SubscriptionRepository interface {
	Create(db *gorm.DB, sub *models.Subscription) error
	FindByID(db *gorm.DB, id string) (*models.Subscription, error)
	FindPendingByUser(db *gorm.DB, userID string) (*models.Subscription, error)
	FindActiveByUser(db *gorm.DB, userID string, now time.Time) (*models.Subscription, error)
	FindLastActiveByUser(db *gorm.DB, userID string, now time.Time) (*models.Subscription, error)
	ListByUser(db *gorm.DB, userID string) ([]models.Subscription, error)
	List(db *gorm.DB, filter SubscriptionFilter) ([]models.Subscription, int64, error)
	OrderCodeExists(db *gorm.DB, code string) (bool, error)
	TransitionStatus(db *gorm.DB, id string, from, to models.SubscriptionStatus, fields map[string]interface{}) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	FindExpired(db *gorm.DB, now time.Time) ([]models.Subscription, error)
	CountByStatus(db *gorm.DB, status models.SubscriptionStatus) (int64, error)
	CountPremiumUsers(db *gorm.DB, now time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, sub *models.Subscription) error {
	return db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := db.Preload("User").First(&sub, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrSubscriptionNotFound)
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindPendingByUser(db *gorm.DB, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusPending).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, notFound(err, ErrSubscriptionNotFound)
	}
	return &sub, nil
}

// FindActiveByUser returns the ACTIVE subscription in effect at now. When
// several overlap, a premium one wins, then the one that expires last.
func (r *SubscriptionRepositoryImpl) FindActiveByUser(db *gorm.DB, userID string, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.Where("user_id = ? AND status = ? AND expires_at > ? AND (starts_at IS NULL OR starts_at <= ?)",
		userID, models.SubscriptionStatusActive, now, now).
		Order("is_premium DESC").
		Order("expires_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, notFound(err, ErrSubscriptionNotFound)
	}
	return &sub, nil
}

// FindLastActiveByUser returns the ACTIVE subscription that expires last,
// including one queued to start later.
func (r *SubscriptionRepositoryImpl) FindLastActiveByUser(db *gorm.DB, userID string, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.Where("user_id = ? AND status = ? AND expires_at > ?", userID, models.SubscriptionStatusActive, now).
		Order("expires_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, notFound(err, ErrSubscriptionNotFound)
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepositoryImpl) List(db *gorm.DB, filter SubscriptionFilter) ([]models.Subscription, int64, error) {
	query := db.Model(&models.Subscription{})
	if filter.Status != "" {
		query = query.Where("subscriptions.status = ?", filter.Status)
	}
	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		query = query.Joins("JOIN users ON users.id = subscriptions.user_id").
			Where("LOWER(subscriptions.order_code) LIKE ? OR LOWER(users.email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []models.Subscription
	err := query.Preload("User").
		Scopes(paginate(filter.Page, filter.PageSize)).
		Order("subscriptions.created_at DESC").
		Find(&subs).Error
	return subs, total, err
}

func (r *SubscriptionRepositoryImpl) OrderCodeExists(db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.Model(&models.Subscription{}).Where("order_code = ?", code).Count(&count).Error
	return count > 0, err
}

// TransitionStatus moves id from one status to another only if it is still in from.
func (r *SubscriptionRepositoryImpl) TransitionStatus(db *gorm.DB, id string, from, to models.SubscriptionStatus, fields map[string]interface{}) error {
	updates := map[string]interface{}{"status": to}
	for k, v := range fields {
		updates[k] = v
	}

	result := db.Model(&models.Subscription{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Subscription{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) FindExpired(db *gorm.DB, now time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := db.Preload("User").
		Where("status = ? AND expires_at <= ?", models.SubscriptionStatusActive, now).
		Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepositoryImpl) CountByStatus(db *gorm.DB, status models.SubscriptionStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Subscription{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *SubscriptionRepositoryImpl) CountPremiumUsers(db *gorm.DB, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Subscription{}).
		Where("status = ? AND is_premium = ? AND expires_at > ? AND (starts_at IS NULL OR starts_at <= ?)",
			models.SubscriptionStatusActive, true, now, now).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
