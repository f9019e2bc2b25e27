// Package testutil opens throwaway databases and seeds fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/models"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the shared in-memory database alive and serialises writers.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...), "automigrate")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

const DefaultPassword = "password123"

// CreateUser inserts an active user with DefaultPassword.
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test " + string(role),
		Email:        email,
		PasswordHash: hash,
		Phone:        "905321234567",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error, "create user %s", email)
	return user
}

// SetBalance overwrites credits and tokens.
func SetBalance(t *testing.T, db *gorm.DB, userID string, credits, tokens int) {
	t.Helper()
	err := db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"credits": credits, "tokens": tokens}).Error
	require.NoError(t, err)
}
