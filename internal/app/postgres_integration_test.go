//go:build integration
// +build integration

package app_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"kariyer_backend/internal/app"
	"kariyer_backend/internal/config"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/ws"
)

// setupPostgres starts a disposable PostgreSQL container and returns a config pointing at it.
func setupPostgres(t *testing.T) *config.Config {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("kariyer_test"),
		postgres.WithUsername("kariyer"),
		postgres.WithPassword("kariyer"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = connStr
	cfg.Storage.BasePath = t.TempDir()
	cfg.FirstAdminEmail = adminEmail
	cfg.FirstAdminPassword = adminPassword
	return cfg
}

func TestPostgres_MigrateSeedAndServe(t *testing.T) {
	cfg := setupPostgres(t)
	ctx := context.Background()

	db, err := app.OpenDB(ctx, cfg)
	require.NoError(t, err)

	// Both steps are safe to repeat on every deploy.
	for i := 0; i < 2; i++ {
		require.NoError(t, app.Migrate(db))
		require.NoError(t, app.Seed(db, cfg))
	}

	var admins int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)

	infra, err := app.NewInfrastructure(ctx, cfg, nil, nil)
	require.NoError(t, err)
	router, container := app.SetupRouter(cfg, db, infra, ws.NewHub())
	s := &testServer{router: router, db: db}

	register := dto.RegisterRequest{Name: "Mehmet Kaya", Email: "mehmet@example.com", Password: "password123"}
	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", register)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/auth/register", "", register)
	assert.Equal(t, http.StatusConflict, rec.Code, "unique violation maps to 409 on postgres too")

	rec = s.do(t, http.MethodGet, "/api/v1/settings/public/plans", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	actor := dto.Actor{UserID: "system", Role: models.UserRoleAdmin}
	var seeded int64
	require.NoError(t, db.Model(&models.JobListing{}).Count(&seeded).Error)
	assert.Positive(t, seeded, "seed writes sample listings")

	first, err := container.JobService.Generate(db, actor, 10)
	require.NoError(t, err)
	var afterFirst int64
	require.NoError(t, db.Model(&models.JobListing{}).Count(&afterFirst).Error)

	second, err := container.JobService.Generate(db, actor, 10)
	require.NoError(t, err)
	assert.Equal(t, first.Generated, second.Generated)

	var afterSecond int64
	require.NoError(t, db.Model(&models.JobListing{}).Count(&afterSecond).Error)
	assert.Equal(t, afterFirst, afterSecond, "same-day feed upserts by external id")

	var categories int64
	require.NoError(t, db.Model(&models.MediaCategory{}).Count(&categories).Error)
	assert.Equal(t, int64(3), categories)

	rec = s.do(t, http.MethodGet, "/api/v1/jobs?q=a&page_size=5", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
