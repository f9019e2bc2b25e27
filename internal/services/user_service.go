package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/internal/validator"
	"kariyer_backend/pkg/apperrors"
)

// UserService covers the back-office user screens.
type UserService interface {
	List(db *gorm.DB, query dto.UserListQuery) (*dto.PaginatedResponse, error)
	Get(db *gorm.DB, userID string) (*dto.UserResponse, error)
	Update(db *gorm.DB, actor dto.Actor, userID string, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error)
	AdjustBalance(db *gorm.DB, actor dto.Actor, userID string, req *dto.BalanceAdjustRequest) (*dto.UserResponse, error)
	Delete(db *gorm.DB, actor dto.Actor, userID string) error
}

type userService struct {
	userRepo         repositories.UserRepository
	subscriptionRepo repositories.SubscriptionRepository
	audit            AuditService
}

func NewUserService(userRepo repositories.UserRepository, subscriptionRepo repositories.SubscriptionRepository, audit AuditService) UserService {
	return &userService{userRepo: userRepo, subscriptionRepo: subscriptionRepo, audit: audit}
}

func (s *userService) List(db *gorm.DB, query dto.UserListQuery) (*dto.PaginatedResponse, error) {
	users, total, err := s.userRepo.List(db, repositories.UserFilter{
		Query:    query.Query,
		Role:     query.Role,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	items := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	page, size := pageOrDefault(query.Page, query.PageSize)
	return dto.NewPaginatedResponse(items, total, page, size), nil
}

func (s *userService) Get(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	return userResponseWithSubscription(db, s.subscriptionRepo, user)
}

func (s *userService) Update(db *gorm.DB, actor dto.Actor, userID string, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	if userID == actor.UserID && ((req.Role != nil && *req.Role != actor.Role) || (req.IsActive != nil && !*req.IsActive)) {
		return nil, apperrors.ErrCannotModifySelf
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
		changes["name"] = user.Name
	}
	if req.Phone != nil {
		user.Phone = validator.NormalizeTurkishPhone(*req.Phone)
		changes["phone"] = user.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
		changes["role"] = user.Role
	}
	if req.Credits != nil {
		user.Credits = *req.Credits
		changes["credits"] = user.Credits
	}
	if req.Tokens != nil {
		user.Tokens = *req.Tokens
		changes["tokens"] = user.Tokens
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
		changes["is_active"] = user.IsActive
	}

	if len(changes) > 0 {
		if err := s.userRepo.UpdateFields(tx, userID, changes); err != nil {
			return nil, handleUserError(err)
		}
		if err := s.audit.Record(tx, actor, ActionUserUpdate, "user", userID, changes); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return userResponseWithSubscription(db, s.subscriptionRepo, user)
}

// AdjustBalance applies signed deltas; the result may not be negative.
func (s *userService) AdjustBalance(db *gorm.DB, actor dto.Actor, userID string, req *dto.BalanceAdjustRequest) (*dto.UserResponse, error) {
	if req.CreditsDelta == 0 && req.TokensDelta == 0 {
		return nil, apperrors.NewBadRequestError("At least one delta must be non-zero")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.AdjustBalance(tx, userID, req.CreditsDelta, req.TokensDelta); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, apperrors.ErrNegativeBalance
		}
		return nil, handleUserError(err)
	}
	if err := s.audit.Record(tx, actor, ActionUserBalance, "user", userID, map[string]interface{}{
		"credits_delta": req.CreditsDelta,
		"tokens_delta":  req.TokensDelta,
		"reason":        req.Reason,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.Get(db, userID)
}

func (s *userService) Delete(db *gorm.DB, actor dto.Actor, userID string) error {
	if userID == actor.UserID {
		return apperrors.ErrCannotModifySelf
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return handleUserError(err)
	}
	if err := s.userRepo.DeleteWithRelations(tx, userID); err != nil {
		return handleUserError(err)
	}
	if err := s.audit.Record(tx, actor, ActionUserDelete, "user", userID, map[string]string{
		"email": user.Email,
		"role":  string(user.Role),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// requireActiveUser loads a user and rejects deactivated accounts.
func requireActiveUser(db *gorm.DB, repo repositories.UserRepository, userID string) (*models.User, error) {
	user, err := repo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	return user, nil
}
