package services

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

// Well-known setting keys.
const (
	SettingSite        = "site"
	SettingPlans       = "plans"
	SettingPaymentInfo = "payment_info"
	SettingContact     = "contact"
	SettingHome        = "home"
	pagePrefix         = "pages."
)

var publicSettings = map[string]bool{
	SettingSite:        true,
	SettingPlans:       true,
	SettingPaymentInfo: true,
	SettingContact:     true,
	SettingHome:        true,
}

var (
	settingKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,119}$`)
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

type SettingsService interface {
	Get(db *gorm.DB, key string) (*models.SiteSetting, error)
	List(db *gorm.DB) ([]models.SiteSetting, error)
	Set(db *gorm.DB, actor dto.Actor, key string, value json.RawMessage) (*models.SiteSetting, error)
	Delete(db *gorm.DB, actor dto.Actor, key string) error
	GetPublic(db *gorm.DB, key string) (json.RawMessage, error)

	GetPlans(db *gorm.DB, activeOnly bool) ([]dto.Plan, error)
	FindPlan(db *gorm.DB, id string) (*dto.Plan, error)
	UpdatePlans(db *gorm.DB, actor dto.Actor, plans []dto.Plan) ([]dto.Plan, error)
	GetPaymentInfo(db *gorm.DB) (*dto.PaymentInfo, error)

	GetPage(db *gorm.DB, slug string) (*dto.Page, error)
	SetPage(db *gorm.DB, actor dto.Actor, slug string, page dto.Page) (*dto.Page, error)

	EnsureDefaults(db *gorm.DB) (int, error)
}

type settingsService struct {
	settings repositories.SettingsRepository
	audit    AuditService
}

func NewSettingsService(settings repositories.SettingsRepository, audit AuditService) SettingsService {
	return &settingsService{settings: settings, audit: audit}
}

func (s *settingsService) Get(db *gorm.DB, key string) (*models.SiteSetting, error) {
	setting, err := s.settings.Get(db, key)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingNotFound) {
			return nil, apperrors.ErrSettingNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return setting, nil
}

func (s *settingsService) List(db *gorm.DB) ([]models.SiteSetting, error) {
	items, err := s.settings.List(db, "")
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return items, nil
}

func (s *settingsService) Set(db *gorm.DB, actor dto.Actor, key string, value json.RawMessage) (*models.SiteSetting, error) {
	key = strings.TrimSpace(key)
	if !settingKeyPattern.MatchString(key) {
		return nil, apperrors.NewBadRequestError("Invalid setting key")
	}
	if !json.Valid(value) {
		return nil, apperrors.NewBadRequestError("Setting value must be valid JSON")
	}

	if key == SettingPlans {
		var plans []dto.Plan
		if err := json.Unmarshal(value, &plans); err != nil {
			return nil, apperrors.NewBadRequestError("plans must be a list of plan objects")
		}
		if err := validatePlans(plans); err != nil {
			return nil, err
		}
	}

	return s.write(db, actor, key, value)
}

func (s *settingsService) write(db *gorm.DB, actor dto.Actor, key string, value json.RawMessage) (*models.SiteSetting, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	var updatedBy *string
	if actor.UserID != "" {
		id := actor.UserID
		updatedBy = &id
	}
	setting, err := s.settings.Upsert(tx, key, datatypes.JSON(value), updatedBy)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if actor.UserID != "" {
		if err := s.audit.Record(tx, actor, ActionSettingUpdate, "setting", key, nil); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return setting, nil
}

func (s *settingsService) Delete(db *gorm.DB, actor dto.Actor, key string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.settings.Delete(tx, key); err != nil {
		if errors.Is(err, repositories.ErrSettingNotFound) {
			return apperrors.ErrSettingNotFound
		}
		return apperrors.DatabaseError(err)
	}
	if err := s.audit.Record(tx, actor, ActionSettingDelete, "setting", key, nil); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// GetPublic returns the raw value of a whitelisted key; plans are filtered to active ones.
func (s *settingsService) GetPublic(db *gorm.DB, key string) (json.RawMessage, error) {
	if !publicSettings[key] {
		return nil, apperrors.ErrSettingNotPublic
	}
	if key == SettingPlans {
		plans, err := s.GetPlans(db, true)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(plans)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return raw, nil
	}

	setting, err := s.Get(db, key)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(setting.Value), nil
}

// GetPlans reads the plan list; a missing setting is an empty list.
func (s *settingsService) GetPlans(db *gorm.DB, activeOnly bool) ([]dto.Plan, error) {
	plans := []dto.Plan{}
	setting, err := s.settings.Get(db, SettingPlans)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingNotFound) {
			return plans, nil
		}
		return nil, apperrors.DatabaseError(err)
	}
	if err := json.Unmarshal(setting.Value, &plans); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !activeOnly {
		return plans, nil
	}

	active := make([]dto.Plan, 0, len(plans))
	for _, p := range plans {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

// FindPlan returns an active plan by id.
func (s *settingsService) FindPlan(db *gorm.DB, id string) (*dto.Plan, error) {
	plans, err := s.GetPlans(db, true)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].ID == id {
			return &plans[i], nil
		}
	}
	return nil, apperrors.ErrPlanNotFound
}

func (s *settingsService) UpdatePlans(db *gorm.DB, actor dto.Actor, plans []dto.Plan) ([]dto.Plan, error) {
	if err := validatePlans(plans); err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].Currency = strings.ToUpper(plans[i].Currency)
		if plans[i].Features == nil {
			plans[i].Features = []string{}
		}
	}
	raw, err := json.Marshal(plans)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.write(db, actor, SettingPlans, raw); err != nil {
		return nil, err
	}
	return plans, nil
}

func validatePlans(plans []dto.Plan) error {
	seen := make(map[string]bool, len(plans))
	problems := map[string]string{}
	for i, p := range plans {
		field := "plans[" + strconv.Itoa(i) + "]"
		switch {
		case strings.TrimSpace(p.ID) == "":
			problems[field+".id"] = "id is required"
		case seen[p.ID]:
			problems[field+".id"] = "duplicate plan id " + p.ID
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Name) == "" {
			problems[field+".name"] = "name is required"
		}
		if p.Price < 0 {
			problems[field+".price"] = "price must be zero or greater"
		}
		if p.DurationDays <= 0 {
			problems[field+".duration_days"] = "duration_days must be positive"
		}
		if p.Credits < 0 || p.Tokens < 0 {
			problems[field+".grants"] = "credits and tokens cannot be negative"
		}
		if len(p.Currency) != 3 {
			problems[field+".currency"] = "currency must be a 3-letter code"
		}
	}
	if len(problems) > 0 {
		return apperrors.ValidationError(problems)
	}
	return nil
}

// GetPaymentInfo returns the bank details; a missing setting yields an empty value.
func (s *settingsService) GetPaymentInfo(db *gorm.DB) (*dto.PaymentInfo, error) {
	info := &dto.PaymentInfo{}
	setting, err := s.settings.Get(db, SettingPaymentInfo)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingNotFound) {
			return info, nil
		}
		return nil, apperrors.DatabaseError(err)
	}
	if err := json.Unmarshal(setting.Value, info); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return info, nil
}

func (s *settingsService) GetPage(db *gorm.DB, slug string) (*dto.Page, error) {
	if !slugPattern.MatchString(slug) {
		return nil, apperrors.ErrPageNotFound
	}
	setting, err := s.settings.Get(db, pagePrefix+slug)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingNotFound) {
			return nil, apperrors.ErrPageNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	var page dto.Page
	if err := json.Unmarshal(setting.Value, &page); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = setting.UpdatedAt
	}
	return &page, nil
}

func (s *settingsService) SetPage(db *gorm.DB, actor dto.Actor, slug string, page dto.Page) (*dto.Page, error) {
	if !slugPattern.MatchString(slug) {
		return nil, apperrors.NewBadRequestError("Invalid page slug")
	}
	page.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.write(db, actor, pagePrefix+slug, raw); err != nil {
		return nil, err
	}
	return &page, nil
}

// EnsureDefaults writes the default value of every well-known key that is missing.
func (s *settingsService) EnsureDefaults(db *gorm.DB) (int, error) {
	created := 0
	for _, key := range defaultSettingKeys {
		if _, err := s.settings.Get(db, key); err == nil {
			continue
		} else if !errors.Is(err, repositories.ErrSettingNotFound) {
			return created, apperrors.DatabaseError(err)
		}
		raw, err := json.Marshal(defaultSettings[key])
		if err != nil {
			return created, apperrors.InternalError(err)
		}
		if _, err := s.settings.Upsert(db, key, datatypes.JSON(raw), nil); err != nil {
			return created, apperrors.DatabaseError(err)
		}
		created++
	}
	return created, nil
}
