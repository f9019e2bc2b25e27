package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/testutil"
	"kariyer_backend/pkg/apperrors"
)

func TestJobs_GenerateIsIdempotentPerDay(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.JobService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)

	resp, err := svc.Generate(env.db, adminActor(admin), 15)
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Generated)

	_, err = svc.Generate(env.db, adminActor(admin), 15)
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.JobListing{}).Count(&count).Error)
	assert.Equal(t, int64(15), count)

	page, err := svc.List(env.db, dto.JobListQuery{PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	filters, err := svc.Filters(env.db)
	require.NoError(t, err)
	assert.NotEmpty(t, filters.Cities)
	assert.NotEmpty(t, filters.Categories)
}

func TestJobs_ManualCRUDAndDeadlines(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.JobService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	actor := adminActor(admin)

	past := time.Now().Add(-48 * time.Hour)
	job, err := svc.Create(env.db, actor, &dto.JobRequest{
		Title:       "Veri Analisti",
		Institution: "TÜİK",
		City:        "Ankara",
		Sector:      models.JobSectorPublic,
		Type:        models.JobTypeFullTime,
		Deadline:    &past,
	})
	require.NoError(t, err)
	assert.Contains(t, job.ExternalID, "admin-")
	assert.Equal(t, 1, job.Positions)

	n, err := svc.DeactivateExpired(env.db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.Get(env.db, job.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound, "inactive listings are hidden from the public")
	_, err = svc.Get(env.db, job.ID, true)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(env.db, actor, job.ID))
	_, err = svc.Get(env.db, job.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestJobs_Match(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.JobService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	u := testutil.CreateUser(t, env.db, "aday@example.com", models.UserRoleUser)
	other := testutil.CreateUser(t, env.db, "baska@example.com", models.UserRoleUser)

	job, err := svc.Create(env.db, adminActor(admin), &dto.JobRequest{
		Title: "Backend Geliştirici", Institution: "Acme", Sector: models.JobSectorPrivate, Type: models.JobTypeFullTime,
	})
	require.NoError(t, err)
	cv, err := env.services.CVService.Create(env.db, u.ID, &dto.CVRequest{Title: "CV", Data: json.RawMessage(`{"skills":["SQL"]}`)})
	require.NoError(t, err)

	testutil.SetBalance(t, env.db, other.ID, 0, 100)
	_, err = svc.Match(context.Background(), env.db, other.ID, job.ID, &dto.JobMatchRequest{CVID: cv.ID})
	assert.ErrorIs(t, err, apperrors.ErrCVNotFound)

	_, err = svc.Match(context.Background(), env.db, u.ID, job.ID, &dto.JobMatchRequest{CVID: cv.ID})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientTokens)

	testutil.SetBalance(t, env.db, u.ID, 0, testCosts.JobMatch)
	match, err := svc.Match(context.Background(), env.db, u.ID, job.ID, &dto.JobMatchRequest{CVID: cv.ID})
	require.NoError(t, err)
	assert.Equal(t, 64, match.MatchScore)

	var user models.User
	require.NoError(t, env.db.First(&user, "id = ?", u.ID).Error)
	assert.Zero(t, user.Tokens)
}
