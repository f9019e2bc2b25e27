package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/email"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

const (
	orderCodePrefix   = "KK-"
	orderCodeLength   = 8
	orderCodeAttempts = 5
)

type SubscriptionService interface {
	ListPlans(db *gorm.DB) ([]dto.Plan, error)
	PaymentInfo(db *gorm.DB) (*dto.PaymentInfo, error)

	Create(db *gorm.DB, userID string, req *dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error)
	MySubscriptions(db *gorm.DB, userID string) (*dto.MySubscriptionsResponse, error)
	CancelOwn(db *gorm.DB, userID, subscriptionID string) (*models.Subscription, error)

	List(db *gorm.DB, query dto.SubscriptionListQuery) (*dto.PaginatedResponse, error)
	Get(db *gorm.DB, subscriptionID string) (*models.Subscription, error)
	Approve(db *gorm.DB, actor dto.Actor, subscriptionID string) (*models.Subscription, error)
	Reject(db *gorm.DB, actor dto.Actor, subscriptionID, note string) (*models.Subscription, error)
	Cancel(db *gorm.DB, actor dto.Actor, subscriptionID string) (*models.Subscription, error)
	Extend(db *gorm.DB, actor dto.Actor, subscriptionID string, days int) (*models.Subscription, error)

	ExpireDue(db *gorm.DB, now time.Time) (int, error)
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
	salesRepo        repositories.SalesRepository
	settings         SettingsService
	audit            AuditService
	notifier         NotificationService
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	salesRepo repositories.SalesRepository,
	settings SettingsService,
	audit AuditService,
	notifier NotificationService,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		salesRepo:        salesRepo,
		settings:         settings,
		audit:            audit,
		notifier:         notifier,
	}
}

func (s *subscriptionService) ListPlans(db *gorm.DB) ([]dto.Plan, error) {
	return s.settings.GetPlans(db, true)
}

func (s *subscriptionService) PaymentInfo(db *gorm.DB) (*dto.PaymentInfo, error) {
	return s.settings.GetPaymentInfo(db)
}

// Create opens a PENDING order for the plan. A user has at most one PENDING order.
func (s *subscriptionService) Create(db *gorm.DB, userID string, req *dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error) {
	plan, err := s.settings.FindPlan(db, req.PlanID)
	if err != nil {
		return nil, err
	}
	info, err := s.settings.GetPaymentInfo(db)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	user, err := requireActiveUser(tx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.subscriptionRepo.FindPendingByUser(tx, userID); err == nil {
		return nil, apperrors.ErrPendingSubscriptionExists
	} else if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, apperrors.DatabaseError(err)
	}

	code, err := s.newOrderCode(tx)
	if err != nil {
		return nil, err
	}

	sub := &models.Subscription{
		UserID:       userID,
		PlanID:       plan.ID,
		PlanName:     plan.Name,
		Amount:       plan.Price,
		Currency:     plan.Currency,
		IsPremium:    plan.IsPremium,
		Credits:      plan.Credits,
		Tokens:       plan.Tokens,
		DurationDays: plan.DurationDays,
		Status:       models.SubscriptionStatusPending,
		OrderCode:    code,
	}
	if err := s.subscriptionRepo.Create(tx, sub); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("Subscription order created", "user_id", userID, "order_code", code, "plan_id", plan.ID)
	s.notifier.Notify(db, user, email.TemplateSubscriptionPending, email.TemplateData{
		"PlanName":  plan.Name,
		"OrderCode": code,
		"Amount":    plan.Price,
		"Currency":  plan.Currency,
		"Payment":   info,
	}, WhatsAppKindSubscriptionPending, fmt.Sprintf(
		"Kariyer Kamulog: %s paketi için siparişiniz alındı. Sipariş kodunuz %s. Tutar: %s %s. Havale açıklamasına sipariş kodunu yazmayı unutmayın.",
		plan.Name, code, formatAmount(plan.Price), plan.Currency,
	))

	return &dto.CreateSubscriptionResponse{Subscription: sub, PaymentInfo: info}, nil
}

func (s *subscriptionService) newOrderCode(db *gorm.DB) (string, error) {
	for i := 0; i < orderCodeAttempts; i++ {
		suffix, err := randomCode(orderCodeLength)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		code := orderCodePrefix + suffix
		exists, err := s.subscriptionRepo.OrderCodeExists(db, code)
		if err != nil {
			return "", apperrors.DatabaseError(err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperrors.InternalError(errors.New("could not allocate a unique order code"))
}

func (s *subscriptionService) MySubscriptions(db *gorm.DB, userID string) (*dto.MySubscriptionsResponse, error) {
	history, err := s.subscriptionRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if history == nil {
		history = []models.Subscription{}
	}

	resp := &dto.MySubscriptionsResponse{History: history}
	now := time.Now()
	for i := range history {
		if history[i].IsCurrent(now) && (resp.Active == nil || outranks(&history[i], resp.Active)) {
			resp.Active = &history[i]
		}
	}
	return resp, nil
}

// outranks orders overlapping current subscriptions the same way
// FindActiveByUser does: premium first, then the later expiry.
func outranks(a, b *models.Subscription) bool {
	if a.IsPremium != b.IsPremium {
		return a.IsPremium
	}
	return a.ExpiresAt.After(*b.ExpiresAt)
}

// CancelOwn lets a user withdraw an order that has not been paid yet.
func (s *subscriptionService) CancelOwn(db *gorm.DB, userID, subscriptionID string) (*models.Subscription, error) {
	sub, err := s.find(db, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, apperrors.ErrSubscriptionNotFound
	}
	if sub.Status != models.SubscriptionStatusPending {
		return nil, apperrors.ErrSubscriptionNotPending
	}

	now := time.Now()
	err = s.subscriptionRepo.TransitionStatus(db, sub.ID, models.SubscriptionStatusPending, models.SubscriptionStatusCancelled, map[string]interface{}{
		"cancelled_at": now,
		"note":         "Kullanıcı tarafından iptal edildi",
	})
	if err != nil {
		return nil, s.transitionError(err, apperrors.ErrSubscriptionNotPending)
	}
	return s.find(db, sub.ID)
}

func (s *subscriptionService) List(db *gorm.DB, query dto.SubscriptionListQuery) (*dto.PaginatedResponse, error) {
	items, total, err := s.subscriptionRepo.List(db, repositories.SubscriptionFilter{
		Status:   query.Status,
		Query:    query.Query,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	page, size := pageOrDefault(query.Page, query.PageSize)
	return dto.NewPaginatedResponse(items, total, page, size), nil
}

func (s *subscriptionService) Get(db *gorm.DB, subscriptionID string) (*models.Subscription, error) {
	return s.find(db, subscriptionID)
}

// Approve confirms a bank transfer. Without an ACTIVE subscription the new
// one starts now. Otherwise its period is appended after the last ACTIVE one:
// when it covers the entitlements of the one in effect, it takes over at once
// and that row is closed as EXPIRED; when it does not (premium to basic), it is
// queued and starts when the last ACTIVE period ends.
func (s *subscriptionService) Approve(db *gorm.DB, actor dto.Actor, subscriptionID string) (*models.Subscription, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	sub, err := s.find(tx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !sub.Status.CanTransitionTo(models.SubscriptionStatusActive) {
		return nil, apperrors.ErrSubscriptionNotPending
	}

	now := time.Now()
	current, err := s.activeSubscription(tx, sub.UserID, now, s.subscriptionRepo.FindActiveByUser)
	if err != nil {
		return nil, err
	}
	last, err := s.activeSubscription(tx, sub.UserID, now, s.subscriptionRepo.FindLastActiveByUser)
	if err != nil {
		return nil, err
	}

	starts, base := now, now
	if last != nil && last.ExpiresAt != nil {
		starts, base = *last.ExpiresAt, *last.ExpiresAt
	}
	if current != nil && sub.Covers(current) {
		starts = now
		if err := s.subscriptionRepo.TransitionStatus(tx, current.ID, models.SubscriptionStatusActive, models.SubscriptionStatusExpired, map[string]interface{}{
			"note": "Superseded by " + sub.OrderCode,
		}); err != nil {
			return nil, s.transitionError(err, apperrors.ErrSubscriptionNotActive)
		}
	}
	expires := base.AddDate(0, 0, sub.DurationDays)

	err = s.subscriptionRepo.TransitionStatus(tx, sub.ID, models.SubscriptionStatusPending, models.SubscriptionStatusActive, map[string]interface{}{
		"starts_at":   starts,
		"expires_at":  expires,
		"approved_by": actor.UserID,
	})
	if err != nil {
		return nil, s.transitionError(err, apperrors.ErrSubscriptionNotPending)
	}

	if err := s.userRepo.AdjustBalance(tx, sub.UserID, sub.Credits, sub.Tokens); err != nil {
		return nil, handleUserError(err)
	}

	if err := s.salesRepo.Create(tx, &models.SalesRecord{
		UserID:         sub.UserID,
		SubscriptionID: sub.ID,
		PlanID:         sub.PlanID,
		PlanName:       sub.PlanName,
		Amount:         sub.Amount,
		Currency:       sub.Currency,
		OrderCode:      sub.OrderCode,
		PaymentMethod:  models.PaymentMethodBankTransfer,
		RecordedBy:     actor.UserID,
	}); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	if err := s.audit.Record(tx, actor, ActionSubscriptionApprove, "subscription", sub.ID, map[string]interface{}{
		"order_code": sub.OrderCode,
		"amount":     sub.Amount,
		"expires_at": expires,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	approved, err := s.find(db, sub.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("Subscription approved", "subscription_id", sub.ID, "order_code", sub.OrderCode, "admin_id", actor.UserID)
	s.notifier.Notify(db, approved.User, email.TemplateSubscriptionApproved, email.TemplateData{
		"OrderCode": approved.OrderCode,
		"PlanName":  approved.PlanName,
		"ExpiresAt": expires.Format("02.01.2006"),
		"Credits":   approved.Credits,
		"Tokens":    approved.Tokens,
	}, WhatsAppKindSubscriptionApproved, fmt.Sprintf(
		"Kariyer Kamulog: %s siparişiniz onaylandı. %s paketiniz %s tarihine kadar aktiftir.",
		approved.OrderCode, approved.PlanName, expires.Format("02.01.2006"),
	))
	return approved, nil
}

func (s *subscriptionService) activeSubscription(
	db *gorm.DB, userID string, now time.Time,
	find func(*gorm.DB, string, time.Time) (*models.Subscription, error),
) (*models.Subscription, error) {
	sub, err := find(db, userID, now)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, apperrors.DatabaseError(err)
	}
	return sub, nil
}

func (s *subscriptionService) Reject(db *gorm.DB, actor dto.Actor, subscriptionID, note string) (*models.Subscription, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	sub, err := s.find(tx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubscriptionStatusPending {
		return nil, apperrors.ErrSubscriptionNotPending
	}

	err = s.subscriptionRepo.TransitionStatus(tx, sub.ID, models.SubscriptionStatusPending, models.SubscriptionStatusCancelled, map[string]interface{}{
		"cancelled_at": time.Now(),
		"note":         note,
	})
	if err != nil {
		return nil, s.transitionError(err, apperrors.ErrSubscriptionNotPending)
	}
	if err := s.audit.Record(tx, actor, ActionSubscriptionReject, "subscription", sub.ID, map[string]string{
		"order_code": sub.OrderCode,
		"note":       note,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	rejected, err := s.find(db, sub.ID)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(db, rejected.User, email.TemplateSubscriptionRejected, email.TemplateData{
		"OrderCode": rejected.OrderCode,
		"Note":      note,
	}, WhatsAppKindSubscriptionRejected, fmt.Sprintf(
		"Kariyer Kamulog: %s siparişiniz iptal edildi. Sorularınız için bizimle iletişime geçebilirsiniz.",
		rejected.OrderCode,
	))
	return rejected, nil
}

// Cancel ends an ACTIVE subscription early. Granted balances are kept.
func (s *subscriptionService) Cancel(db *gorm.DB, actor dto.Actor, subscriptionID string) (*models.Subscription, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	sub, err := s.find(tx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubscriptionStatusActive {
		return nil, apperrors.ErrSubscriptionNotActive
	}

	err = s.subscriptionRepo.TransitionStatus(tx, sub.ID, models.SubscriptionStatusActive, models.SubscriptionStatusCancelled, map[string]interface{}{
		"cancelled_at": time.Now(),
	})
	if err != nil {
		return nil, s.transitionError(err, apperrors.ErrSubscriptionNotActive)
	}
	if err := s.audit.Record(tx, actor, ActionSubscriptionCancel, "subscription", sub.ID, map[string]string{
		"order_code": sub.OrderCode,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.find(db, sub.ID)
}

func (s *subscriptionService) Extend(db *gorm.DB, actor dto.Actor, subscriptionID string, days int) (*models.Subscription, error) {
	if days <= 0 {
		return nil, apperrors.NewBadRequestError("days must be positive")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	sub, err := s.find(tx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubscriptionStatusActive || sub.ExpiresAt == nil {
		return nil, apperrors.ErrSubscriptionNotActive
	}

	expires := sub.ExpiresAt.AddDate(0, 0, days)
	if err := s.subscriptionRepo.UpdateFields(tx, sub.ID, map[string]interface{}{"expires_at": expires}); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if err := s.audit.Record(tx, actor, ActionSubscriptionExtend, "subscription", sub.ID, map[string]interface{}{
		"days":       days,
		"expires_at": expires,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.find(db, sub.ID)
}

// ExpireDue moves ACTIVE subscriptions past their expiry to EXPIRED and notifies the owners.
func (s *subscriptionService) ExpireDue(db *gorm.DB, now time.Time) (int, error) {
	due, err := s.subscriptionRepo.FindExpired(db, now)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}

	expired := 0
	for i := range due {
		sub := &due[i]
		err := s.subscriptionRepo.TransitionStatus(db, sub.ID, models.SubscriptionStatusActive, models.SubscriptionStatusExpired, nil)
		if err != nil {
			if errors.Is(err, repositories.ErrStatusChanged) {
				continue
			}
			return expired, apperrors.DatabaseError(err)
		}
		expired++

		if sub.User == nil {
			logger.Warn("Expired subscription has no owner", "subscription_id", sub.ID)
			continue
		}
		s.notifier.Notify(db, sub.User, email.TemplateSubscriptionExpired, email.TemplateData{
			"PlanName": sub.PlanName,
		}, WhatsAppKindSubscriptionExpired, fmt.Sprintf(
			"Kariyer Kamulog: %s paketinizin süresi doldu. Yenilemek için hesabınıza giriş yapabilirsiniz.",
			sub.PlanName,
		))
	}
	return expired, nil
}

func (s *subscriptionService) find(db *gorm.DB, id string) (*models.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return sub, nil
}

func (s *subscriptionService) transitionError(err error, onRace error) error {
	switch {
	case errors.Is(err, repositories.ErrStatusChanged):
		return onRace
	case errors.Is(err, repositories.ErrSubscriptionNotFound):
		return apperrors.ErrSubscriptionNotFound
	default:
		return apperrors.DatabaseError(err)
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
