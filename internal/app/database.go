package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/config"
	"kariyer_backend/internal/jobfeed"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/internal/services"
)

const sampleJobCount = 30

// OpenDB connects to the configured database and checks it answers.
func OpenDB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	default:
		dialector = postgres.Open(cfg.Database.DSN)
	}

	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Database.Driver, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	logger.Info("Database connected", "driver", cfg.Database.Driver)
	return gormDB, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	logger.Info("Database schema is up to date")
	return nil
}

// Seed writes the default site settings, media categories, sample jobs and the
// first admin account. Existing rows are never overwritten.
func Seed(db *gorm.DB, cfg *config.Config) error {
	settings := services.NewSettingsService(
		repositories.NewSettingsRepository(),
		services.NewAuditService(repositories.NewAdminLogRepository()),
	)
	written, err := settings.EnsureDefaults(db)
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if written > 0 {
		logger.Info("Default settings written", "count", written)
	}

	if err := seedMediaCategories(db); err != nil {
		return err
	}
	if err := seedJobs(db); err != nil {
		return err
	}
	return SeedFirstAdmin(db, cfg)
}

var defaultMediaCategories = []models.MediaCategory{
	{Name: "Genel", Slug: "genel"},
	{Name: "Blog", Slug: "blog"},
	{Name: "Danışmanlar", Slug: "danismanlar"},
}

func seedMediaCategories(db *gorm.DB) error {
	repo := repositories.NewMediaRepository()
	for _, cat := range defaultMediaCategories {
		exists, err := repo.SlugExists(db, cat.Slug, "")
		if err != nil {
			return fmt.Errorf("seed media categories: %w", err)
		}
		if exists {
			continue
		}
		c := cat
		if err := repo.CreateCategory(db, &c); err != nil {
			return fmt.Errorf("seed media category %s: %w", cat.Slug, err)
		}
	}
	return nil
}

// seedJobs fills an empty listing table with today's feed.
func seedJobs(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.JobListing{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed jobs: %w", err)
	}
	if count > 0 {
		return nil
	}

	jobs := jobfeed.NewGenerator(jobFeedSeed).Generate(sampleJobCount, time.Now())
	n, err := repositories.NewJobRepository().UpsertByExternalID(db, jobs)
	if err != nil {
		return fmt.Errorf("seed jobs: %w", err)
	}
	logger.Info("Sample job listings written", "count", n)
	return nil
}

// SeedFirstAdmin creates an ADMIN account from FIRST_ADMIN_EMAIL and
// FIRST_ADMIN_PASSWORD. An existing account with that email is left untouched.
func SeedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.FirstAdminEmail))
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}
