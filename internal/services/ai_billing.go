package services

import (
	"errors"

	"gorm.io/gorm"

	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

// AICosts is the token price of each AI operation.
type AICosts struct {
	CVAnalysis int
	CVParse    int
	Improve    int
	JobMatch   int
}

// tokenMeter checks balances before an AI call and charges after a successful one.
type tokenMeter struct {
	userRepo repositories.UserRepository
}

func (m tokenMeter) ensure(db *gorm.DB, userID string, cost int) error {
	user, err := requireActiveUser(db, m.userRepo, userID)
	if err != nil {
		return err
	}
	if user.Tokens < cost {
		return apperrors.ErrInsufficientTokens
	}
	return nil
}

func (m tokenMeter) charge(db *gorm.DB, userID string, cost int) error {
	if cost <= 0 {
		return nil
	}
	if err := m.userRepo.AdjustBalance(db, userID, 0, -cost); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return apperrors.ErrInsufficientTokens
		}
		return handleUserError(err)
	}
	logger.Debug("AI tokens charged", "user_id", userID, "tokens", cost)
	return nil
}

func aiError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	logger.Error("AI request failed", "error", err)
	return apperrors.ErrAIUnavailable.WithError(err)
}
