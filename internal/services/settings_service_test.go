package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/testutil"
	"kariyer_backend/pkg/apperrors"
)

func TestSettings_EnsureDefaultsOnlyFillsGaps(t *testing.T) {
	env := newTestEnv(t)

	n, err := env.services.SettingsService.EnsureDefaults(env.db)
	require.NoError(t, err)
	assert.Zero(t, n, "defaults were written by the fixture")

	info, err := env.services.SettingsService.GetPaymentInfo(env.db)
	require.NoError(t, err)
	assert.NotEmpty(t, info.Instructions)
}

func TestSettings_PublicWhitelist(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SettingsService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)

	_, err := svc.Set(env.db, adminActor(admin), "internal.notes", json.RawMessage(`{"secret":true}`))
	require.NoError(t, err)

	_, err = svc.GetPublic(env.db, "internal.notes")
	assert.ErrorIs(t, err, apperrors.ErrSettingNotPublic)

	raw, err := svc.GetPublic(env.db, SettingSite)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Kariyer Kamulog")

	_, err = svc.Set(env.db, adminActor(admin), "Bad Key!", json.RawMessage(`1`))
	assert.Error(t, err)

	var logs []models.AdminLog
	require.NoError(t, env.db.Where("action = ?", ActionSettingUpdate).Find(&logs).Error)
	assert.Len(t, logs, 1)
}

func TestSettings_PlanValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SettingsService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)

	_, err := svc.UpdatePlans(env.db, adminActor(admin), []dto.Plan{
		{ID: "a", Name: "A", Currency: "TRY", DurationDays: 30},
		{ID: "a", Name: "B", Currency: "TRY", DurationDays: 0, Price: -1},
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "plans[1].id")
	assert.Contains(t, details, "plans[1].price")
	assert.Contains(t, details, "plans[1].duration_days")

	_, err = svc.Set(env.db, adminActor(admin), SettingPlans, json.RawMessage(`[{"id":"x","name":"X","currency":"TRY","duration_days":-5}]`))
	assert.ErrorIs(t, err, apperrors.ValidationError(nil))

	plans, err := svc.UpdatePlans(env.db, adminActor(admin), []dto.Plan{
		{ID: "yearly", Name: "Yıllık", Price: 1999, Currency: "try", DurationDays: 365, Tokens: 1000, IsActive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "TRY", plans[0].Currency)

	found, err := svc.FindPlan(env.db, "yearly")
	require.NoError(t, err)
	assert.Equal(t, 365, found.DurationDays)
}

func TestSettings_Pages(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SettingsService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)

	_, err := svc.GetPage(env.db, "kvkk")
	assert.ErrorIs(t, err, apperrors.ErrPageNotFound)

	_, err = svc.SetPage(env.db, adminActor(admin), "Kötü Slug", dto.Page{Title: "x", Content: "y"})
	assert.Error(t, err)

	saved, err := svc.SetPage(env.db, adminActor(admin), "kvkk", dto.Page{Title: "KVKK Aydınlatma Metni", Content: "<p>Metin</p>"})
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.IsZero())

	page, err := svc.GetPage(env.db, "kvkk")
	require.NoError(t, err)
	assert.Equal(t, "KVKK Aydınlatma Metni", page.Title)

	setting, err := svc.Get(env.db, "pages.kvkk")
	require.NoError(t, err)
	require.NotNil(t, setting.UpdatedBy)
	assert.Equal(t, admin.ID, *setting.UpdatedBy)
}
