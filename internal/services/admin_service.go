package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

// AdminService serves the back-office reporting endpoints.
type AdminService interface {
	Dashboard(db *gorm.DB, now time.Time) (*dto.DashboardStats, error)
	ListSales(db *gorm.DB, query dto.SalesQuery) (*dto.PaginatedResponse, error)
	SalesStats(db *gorm.DB, from, to time.Time) (*dto.SalesStats, error)
}

type AdminServiceImpl struct {
	userRepo         repositories.UserRepository
	subscriptionRepo repositories.SubscriptionRepository
	chatRepo         repositories.ChatRepository
	jobRepo          repositories.JobRepository
	cvRepo           repositories.CVRepository
	salesRepo        repositories.SalesRepository
	waLogRepo        repositories.WhatsAppLogRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	chatRepo repositories.ChatRepository,
	jobRepo repositories.JobRepository,
	cvRepo repositories.CVRepository,
	salesRepo repositories.SalesRepository,
	waLogRepo repositories.WhatsAppLogRepository,
) AdminService {
	return &AdminServiceImpl{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		chatRepo:         chatRepo,
		jobRepo:          jobRepo,
		cvRepo:           cvRepo,
		salesRepo:        salesRepo,
		waLogRepo:        waLogRepo,
	}
}

func (s *AdminServiceImpl) Dashboard(db *gorm.DB, now time.Time) (*dto.DashboardStats, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	stats := &dto.DashboardStats{}

	counters := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&stats.Users, func() (int64, error) { return s.userRepo.Count(db) }},
		{&stats.NewUsersThisMonth, func() (int64, error) { return s.userRepo.CountSince(db, monthStart) }},
		{&stats.PremiumUsers, func() (int64, error) { return s.subscriptionRepo.CountPremiumUsers(db, now) }},
		{&stats.PendingSubscriptions, func() (int64, error) {
			return s.subscriptionRepo.CountByStatus(db, models.SubscriptionStatusPending)
		}},
		{&stats.ActiveSubscriptions, func() (int64, error) {
			return s.subscriptionRepo.CountByStatus(db, models.SubscriptionStatusActive)
		}},
		{&stats.ActiveChatRooms, func() (int64, error) { return s.chatRepo.CountActiveRooms(db) }},
		{&stats.ActiveJobs, func() (int64, error) { return s.jobRepo.CountActive(db) }},
		{&stats.CVs, func() (int64, error) { return s.cvRepo.Count(db) }},
		{&stats.WhatsAppFailedLast24h, func() (int64, error) {
			return s.waLogRepo.CountFailedSince(db, now.Add(-24*time.Hour))
		}},
	}
	for _, c := range counters {
		n, err := c.fn()
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		*c.dst = n
	}

	var err error
	if stats.RevenueThisMonth, err = s.salesRepo.SumAmount(db, &monthStart, &now); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if stats.RevenueTotal, err = s.salesRepo.SumAmount(db, nil, nil); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return stats, nil
}

func (s *AdminServiceImpl) ListSales(db *gorm.DB, query dto.SalesQuery) (*dto.PaginatedResponse, error) {
	if query.To.Before(query.From) {
		return nil, apperrors.ValidationError(map[string]string{"to": "end date must be after start date"})
	}
	page, size := pageOrDefault(query.Page, query.PageSize)
	records, total, err := s.salesRepo.List(db, query.From, query.To, page, size)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if records == nil {
		records = []models.SalesRecord{}
	}
	return dto.NewPaginatedResponse(records, total, page, size), nil
}

// SalesStats groups the records of the range by plan, month and currency.
func (s *AdminServiceImpl) SalesStats(db *gorm.DB, from, to time.Time) (*dto.SalesStats, error) {
	if to.Before(from) {
		return nil, apperrors.ValidationError(map[string]string{"to": "end date must be after start date"})
	}
	records, err := s.salesRepo.ListRange(db, from, to)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	stats := &dto.SalesStats{
		From:       from,
		To:         to,
		ByPlan:     []dto.SalesBucket{},
		ByMonth:    []dto.SalesBucket{},
		ByCurrency: map[string]float64{},
	}
	plans := map[string]*dto.SalesBucket{}
	months := map[string]*dto.SalesBucket{}

	for _, rec := range records {
		stats.TotalCount++
		stats.TotalAmount += rec.Amount
		stats.ByCurrency[rec.Currency] += rec.Amount

		p, ok := plans[rec.PlanID]
		if !ok {
			p = &dto.SalesBucket{Key: rec.PlanID, Label: rec.PlanName}
			plans[rec.PlanID] = p
		}
		p.Count++
		p.Amount += rec.Amount

		key := rec.CreatedAt.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &dto.SalesBucket{Key: key}
			months[key] = m
		}
		m.Count++
		m.Amount += rec.Amount
	}

	for _, b := range plans {
		stats.ByPlan = append(stats.ByPlan, *b)
	}
	sort.Slice(stats.ByPlan, func(i, j int) bool {
		if stats.ByPlan[i].Amount != stats.ByPlan[j].Amount {
			return stats.ByPlan[i].Amount > stats.ByPlan[j].Amount
		}
		return stats.ByPlan[i].Key < stats.ByPlan[j].Key
	})
	for _, b := range months {
		stats.ByMonth = append(stats.ByMonth, *b)
	}
	sort.Slice(stats.ByMonth, func(i, j int) bool { return stats.ByMonth[i].Key < stats.ByMonth[j].Key })

	return stats, nil
}
