package repositories

import (
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/models"
)

type UserFilter struct {
	Query    string
	Role     models.UserRole
	Page     int
	PageSize int
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByResetToken(db *gorm.DB, digest string) (*models.User, error)
	Update(db *gorm.DB, user *models.User) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	AdjustBalance(db *gorm.DB, id string, creditsDelta, tokensDelta int) error
	TouchLastLogin(db *gorm.DB, id string, at time.Time) error
	DeleteWithRelations(db *gorm.DB, id string) error
	List(db *gorm.DB, filter UserFilter) ([]models.User, int64, error)
	Count(db *gorm.DB) (int64, error)
	CountSince(db *gorm.DB, since time.Time) (int64, error)
	CountByRole(db *gorm.DB, role models.UserRole) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}
	if err := db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByResetToken(db *gorm.DB, digest string) (*models.User, error) {
	if digest == "" {
		return nil, ErrUserNotFound
	}
	var user models.User
	if err := db.First(&user, "reset_token = ?", digest).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AdjustBalance applies both deltas in one conditional UPDATE so balances never go negative.
func (r *UserRepositoryImpl) AdjustBalance(db *gorm.DB, id string, creditsDelta, tokensDelta int) error {
	result := db.Model(&models.User{}).
		Where("id = ? AND credits + ? >= 0 AND tokens + ? >= 0", id, creditsDelta, tokensDelta).
		Updates(map[string]interface{}{
			"credits": gorm.Expr("credits + ?", creditsDelta),
			"tokens":  gorm.Expr("tokens + ?", tokensDelta),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(db, id); err != nil {
			return err
		}
		return ErrInsufficientBalance
	}
	return nil
}

func (r *UserRepositoryImpl) TouchLastLogin(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login_at", at).Error
}

// DeleteWithRelations removes the user and everything owned by them. Run inside a transaction.
func (r *UserRepositoryImpl) DeleteWithRelations(db *gorm.DB, id string) error {
	roomIDs := db.Model(&models.ChatRoom{}).Select("id").Where("user_id = ?", id)
	if err := db.Where("room_id IN (?)", roomIDs).Delete(&models.ChatMessage{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", id).Delete(&models.ChatRoom{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", id).Delete(&models.CV{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", id).Delete(&models.Subscription{}).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Consultant{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
		return err
	}

	result := db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) List(db *gorm.DB, filter UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{})
	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.Scopes(paginate(filter.Page, filter.PageSize)).
		Order("created_at DESC").
		Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountSince(db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
