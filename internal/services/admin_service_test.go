package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/testutil"
	"kariyer_backend/pkg/apperrors"
)

func TestAdmin_DashboardAndSales(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	premium := testutil.CreateUser(t, env.db, "premium@example.com", models.UserRoleUser)
	basic := testutil.CreateUser(t, env.db, "basic@example.com", models.UserRoleUser)
	waiting := testutil.CreateUser(t, env.db, "waiting@example.com", models.UserRoleUser)

	env.activePremium(t, premium, admin)
	created, err := env.services.SubscriptionService.Create(env.db, basic.ID, &dto.CreateSubscriptionRequest{PlanID: "basic"})
	require.NoError(t, err)
	_, err = env.services.SubscriptionService.Approve(env.db, adminActor(admin), created.Subscription.ID)
	require.NoError(t, err)
	_, err = env.services.SubscriptionService.Create(env.db, waiting.ID, &dto.CreateSubscriptionRequest{PlanID: "premium"})
	require.NoError(t, err)

	now := time.Now()
	stats, err := env.services.AdminService.Dashboard(env.db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Users)
	assert.Equal(t, int64(1), stats.PremiumUsers)
	assert.Equal(t, int64(1), stats.PendingSubscriptions)
	assert.Equal(t, int64(2), stats.ActiveSubscriptions)
	assert.Equal(t, 698.0, stats.RevenueTotal)
	assert.Equal(t, 698.0, stats.RevenueThisMonth)

	from := now.Add(-time.Hour)
	to := now.Add(time.Hour)
	sales, err := env.services.AdminService.SalesStats(env.db, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sales.TotalCount)
	require.Len(t, sales.ByPlan, 2)
	assert.Equal(t, "premium", sales.ByPlan[0].Key, "largest revenue first")
	assert.Equal(t, 698.0, sales.ByCurrency["TRY"])
	require.Len(t, sales.ByMonth, 1)

	list, err := env.services.AdminService.ListSales(env.db, dto.SalesQuery{From: from, To: to})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)

	_, err = env.services.AdminService.SalesStats(env.db, to, from)
	assert.ErrorIs(t, err, apperrors.ValidationError(nil))

	logs, err := env.services.AuditService.List(env.db, dto.AdminLogQuery{Action: ActionSubscriptionApprove})
	require.NoError(t, err)
	assert.Equal(t, int64(2), logs.Total)
}
