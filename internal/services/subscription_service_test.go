package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/email"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/testutil"
	"kariyer_backend/pkg/apperrors"
)

var orderCodePattern = regexp.MustCompile(`^KK-[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{8}$`)

func TestSubscription_CreatePending(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SubscriptionService
	user := testutil.CreateUser(t, env.db, "ayse@example.com", models.UserRoleUser)

	resp, err := svc.Create(env.db, user.ID, &dto.CreateSubscriptionRequest{PlanID: "basic"})
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusPending, resp.Subscription.Status)
	assert.Regexp(t, orderCodePattern, resp.Subscription.OrderCode)
	assert.Equal(t, 199.0, resp.Subscription.Amount)
	require.NotNil(t, resp.PaymentInfo)

	_, err = svc.Create(env.db, user.ID, &dto.CreateSubscriptionRequest{PlanID: "premium"})
	assert.ErrorIs(t, err, apperrors.ErrPendingSubscriptionExists)

	_, err = svc.Create(env.db, user.ID, &dto.CreateSubscriptionRequest{PlanID: "gold"})
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)

	env.services.NotificationService.Wait()
	var logs []models.WhatsAppLog
	require.NoError(t, env.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, WhatsAppKindSubscriptionPending, logs[0].Kind)
	assert.Equal(t, models.WhatsAppLogSent, logs[0].Status)
	assert.Contains(t, logs[0].Message, resp.Subscription.OrderCode)
	assert.Contains(t, env.mail.subjects(), email.Subject(email.TemplateSubscriptionPending))
}

func TestSubscription_ApproveGrantsBalanceAndRecordsSale(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SubscriptionService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	user := testutil.CreateUser(t, env.db, "mehmet@example.com", models.UserRoleUser)

	created, err := svc.Create(env.db, user.ID, &dto.CreateSubscriptionRequest{PlanID: "premium"})
	require.NoError(t, err)

	before := time.Now()
	sub, err := svc.Approve(env.db, adminActor(admin), created.Subscription.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	require.NotNil(t, sub.ExpiresAt)
	assert.WithinDuration(t, before.AddDate(0, 0, 30), *sub.ExpiresAt, time.Minute)
	require.NotNil(t, sub.ApprovedBy)
	assert.Equal(t, admin.ID, *sub.ApprovedBy)

	var reloaded models.User
	require.NoError(t, env.db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, 5, reloaded.Credits)
	assert.Equal(t, 200, reloaded.Tokens)

	var sales []models.SalesRecord
	require.NoError(t, env.db.Find(&sales).Error)
	require.Len(t, sales, 1)
	assert.Equal(t, sub.OrderCode, sales[0].OrderCode)
	assert.Equal(t, models.PaymentMethodBankTransfer, sales[0].PaymentMethod)

	var logs []models.AdminLog
	require.NoError(t, env.db.Where("action = ?", ActionSubscriptionApprove).Find(&logs).Error)
	assert.Len(t, logs, 1)

	_, err = svc.Approve(env.db, adminActor(admin), sub.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionNotPending)

	me, err := env.services.AuthService.Me(env.db, user.ID)
	require.NoError(t, err)
	assert.True(t, me.IsPremium)
}

func TestSubscription_ApproveDowngradeIsQueuedBehindPremium(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SubscriptionService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	user := testutil.CreateUser(t, env.db, "zeynep@example.com", models.UserRoleUser)

	premium := env.activePremium(t, user, admin)

	created, err := svc.Create(env.db, user.ID, &dto.CreateSubscriptionRequest{PlanID: "basic"})
	require.NoError(t, err)
	basic, err := svc.Approve(env.db, adminActor(admin), created.Subscription.ID)
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionStatusActive, basic.Status)
	require.NotNil(t, basic.StartsAt)
	assert.WithinDuration(t, *premium.ExpiresAt, *basic.StartsAt, time.Second)
	assert.WithinDuration(t, premium.ExpiresAt.AddDate(0, 0, 30), *basic.ExpiresAt, time.Second)
	assert.False(t, basic.IsCurrent(time.Now()))
	assert.True(t, basic.IsCurrent(premium.ExpiresAt.Add(time.Hour)))

	kept, err := svc.Get(env.db, premium.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, kept.Status, "paid premium time is not cut short")

	mine, err := svc.MySubscriptions(env.db, user.ID)
	require.NoError(t, err)
	require.NotNil(t, mine.Active)
	assert.Equal(t, premium.ID, mine.Active.ID)

	me, err := env.services.AuthService.Me(env.db, user.ID)
	require.NoError(t, err)
	assert.True(t, me.IsPremium)

	// Once premium runs out the worker expires it and the queued plan takes over.
	n, err := svc.ExpireDue(env.db, premium.ExpiresAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	next, err := env.services.AuthService.Me(env.db, user.ID)
	require.NoError(t, err)
	assert.False(t, next.IsPremium)
}

func TestSubscription_ApproveUpgradeTakesOverCurrentPeriod(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SubscriptionService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	user := testutil.CreateUser(t, env.db, "emre@example.com", models.UserRoleUser)

	created, err := svc.Create(env.db, user.ID, &dto.CreateSubscriptionRequest{PlanID: "basic"})
	require.NoError(t, err)
	basic, err := svc.Approve(env.db, adminActor(admin), created.Subscription.ID)
	require.NoError(t, err)

	premium := env.activePremium(t, user, admin)
	assert.WithinDuration(t, basic.ExpiresAt.AddDate(0, 0, 30), *premium.ExpiresAt, time.Second)
	assert.True(t, premium.IsCurrent(time.Now()))

	old, err := svc.Get(env.db, basic.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusExpired, old.Status)
	assert.Contains(t, old.Note, premium.OrderCode)

	var active int64
	require.NoError(t, env.db.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ?", user.ID, models.SubscriptionStatusActive).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)

	me, err := env.services.AuthService.Me(env.db, user.ID)
	require.NoError(t, err)
	assert.True(t, me.IsPremium)
}

func TestSubscription_CancelOwn(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SubscriptionService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	user := testutil.CreateUser(t, env.db, "can@example.com", models.UserRoleUser)
	other := testutil.CreateUser(t, env.db, "other@example.com", models.UserRoleUser)

	created, err := svc.Create(env.db, user.ID, &dto.CreateSubscriptionRequest{PlanID: "basic"})
	require.NoError(t, err)

	_, err = svc.CancelOwn(env.db, other.ID, created.Subscription.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionNotFound)

	cancelled, err := svc.CancelOwn(env.db, user.ID, created.Subscription.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	active := env.activePremium(t, user, admin)
	_, err = svc.CancelOwn(env.db, user.ID, active.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionNotPending)
}

func TestSubscription_AdminTransitions(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SubscriptionService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	user := testutil.CreateUser(t, env.db, "deniz@example.com", models.UserRoleUser)
	actor := adminActor(admin)

	pending, err := svc.Create(env.db, user.ID, &dto.CreateSubscriptionRequest{PlanID: "basic"})
	require.NoError(t, err)

	_, err = svc.Extend(env.db, actor, pending.Subscription.ID, 10)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionNotActive)
	_, err = svc.Cancel(env.db, actor, pending.Subscription.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionNotActive)

	rejected, err := svc.Reject(env.db, actor, pending.Subscription.ID, "Ödeme bulunamadı")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, rejected.Status)
	assert.Equal(t, "Ödeme bulunamadı", rejected.Note)

	_, err = svc.Approve(env.db, actor, rejected.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionNotPending)

	active := env.activePremium(t, user, admin)
	extended, err := svc.Extend(env.db, actor, active.ID, 10)
	require.NoError(t, err)
	assert.WithinDuration(t, active.ExpiresAt.AddDate(0, 0, 10), *extended.ExpiresAt, time.Second)

	cancelled, err := svc.Cancel(env.db, actor, active.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, cancelled.Status)

	var u models.User
	require.NoError(t, env.db.First(&u, "id = ?", user.ID).Error)
	assert.Equal(t, 5, u.Credits, "balances survive cancellation")
}

func TestSubscription_ExpireDue(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SubscriptionService
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)
	user := testutil.CreateUser(t, env.db, "ece@example.com", models.UserRoleUser)

	sub := env.activePremium(t, user, admin)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, env.db.Model(&models.Subscription{}).Where("id = ?", sub.ID).Update("expires_at", past).Error)

	n, err := svc.ExpireDue(env.db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expired, err := svc.Get(env.db, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusExpired, expired.Status)

	n, err = svc.ExpireDue(env.db, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	env.services.NotificationService.Wait()
	var logs []models.WhatsAppLog
	require.NoError(t, env.db.Where("kind = ?", WhatsAppKindSubscriptionExpired).Find(&logs).Error)
	assert.Len(t, logs, 1)
}

func TestSubscription_ListPlansHidesInactive(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin)

	plans, err := env.services.SettingsService.GetPlans(env.db, false)
	require.NoError(t, err)
	plans[0].IsActive = false
	_, err = env.services.SettingsService.UpdatePlans(env.db, adminActor(admin), plans)
	require.NoError(t, err)

	public, err := env.services.SubscriptionService.ListPlans(env.db)
	require.NoError(t, err)
	require.Len(t, public, len(plans)-1)
	for _, p := range public {
		assert.NotEqual(t, plans[0].ID, p.ID)
	}
}
