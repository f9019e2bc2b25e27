package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/email"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/internal/validator"
	"kariyer_backend/pkg/apperrors"
)

const resetTokenTTL = time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
	ForgotPassword(db *gorm.DB, req *dto.ForgotPasswordRequest) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	subscriptionRepo repositories.SubscriptionRepository
	tokens           *auth.TokenManager
	notifier         NotificationService
	signupTokens     int
	siteURL          string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	tokens *auth.TokenManager,
	notifier NotificationService,
	signupTokens int,
	siteURL string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		tokens:           tokens,
		notifier:         notifier,
		signupTokens:     signupTokens,
		siteURL:          strings.TrimRight(siteURL, "/"),
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register creates a USER account with the configured free tokens.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Phone:        validator.NormalizeTurkishPhone(req.Phone),
		Role:         models.UserRoleUser,
		Tokens:       s.signupTokens,
		IsActive:     true,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("User registered", "user_id", user.ID)
	s.notifier.SendEmail(user.Email, email.TemplateWelcome, email.TemplateData{
		"Name":   user.Name,
		"Tokens": user.Tokens,
	})

	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(db, user.ID, now); err != nil {
		logger.Warn("Failed to update last login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	resp, err := s.buildUserResponse(db, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: resp}, nil
}

func (s *AuthServiceImpl) Me(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	return s.buildUserResponse(db, user)
}

func (s *AuthServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = validator.NormalizeTurkishPhone(*req.Phone)
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.buildUserResponse(db, user)
}

func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return handleUserError(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ValidationError(map[string]string{"new_password": err.Error()})
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateFields(db, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// ForgotPassword never reveals whether the address is registered.
func (s *AuthServiceImpl) ForgotPassword(db *gorm.DB, req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.DatabaseError(err)
	}
	if !user.IsActive {
		return nil
	}

	plain, digest, err := auth.NewResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	expires := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{
		"reset_token":     digest,
		"reset_token_exp": expires,
	}); err != nil {
		return apperrors.DatabaseError(err)
	}

	s.notifier.SendEmail(user.Email, email.TemplatePasswordReset, email.TemplateData{
		"Name":     user.Name,
		"ResetURL": s.siteURL + "/sifre-sifirla?token=" + plain,
		"ValidFor": "1 saat",
	})
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByResetToken(db, auth.HashResetToken(req.Token))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.DatabaseError(err)
	}
	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidToken
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}
	return wrapDB(s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{
		"password_hash":   hash,
		"reset_token":     "",
		"reset_token_exp": nil,
	}))
}

// buildUserResponse attaches the current subscription and premium flag.
func (s *AuthServiceImpl) buildUserResponse(db *gorm.DB, user *models.User) (*dto.UserResponse, error) {
	return userResponseWithSubscription(db, s.subscriptionRepo, user)
}

func userResponseWithSubscription(db *gorm.DB, subs repositories.SubscriptionRepository, user *models.User) (*dto.UserResponse, error) {
	resp := dto.NewUserResponse(user)
	active, err := subs.FindActiveByUser(db, user.ID, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return resp, nil
		}
		return nil, apperrors.DatabaseError(err)
	}
	resp.ActiveSubscription = active
	resp.IsPremium = active.IsPremium
	return resp, nil
}

func handleUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.DatabaseError(err)
}

func wrapDB(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.DatabaseError(err)
}
