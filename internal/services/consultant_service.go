package services

import (
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

type ConsultantService interface {
	List(db *gorm.DB, includeInactive bool) ([]models.Consultant, error)
	Get(db *gorm.DB, id string, includeInactive bool) (*models.Consultant, error)
	Create(db *gorm.DB, actor dto.Actor, req *dto.ConsultantRequest) (*models.Consultant, error)
	Update(db *gorm.DB, actor dto.Actor, id string, req *dto.ConsultantRequest) (*models.Consultant, error)
	Delete(db *gorm.DB, actor dto.Actor, id string) error
}

type consultantService struct {
	consultantRepo repositories.ConsultantRepository
	userRepo       repositories.UserRepository
	audit          AuditService
}

func NewConsultantService(consultantRepo repositories.ConsultantRepository, userRepo repositories.UserRepository, audit AuditService) ConsultantService {
	return &consultantService{consultantRepo: consultantRepo, userRepo: userRepo, audit: audit}
}

func (s *consultantService) List(db *gorm.DB, includeInactive bool) ([]models.Consultant, error) {
	list, err := s.consultantRepo.List(db, !includeInactive)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if list == nil {
		list = []models.Consultant{}
	}
	return list, nil
}

func (s *consultantService) Get(db *gorm.DB, id string, includeInactive bool) (*models.Consultant, error) {
	c, err := s.consultantRepo.FindByID(db, id)
	if err != nil {
		return nil, handleConsultantError(err)
	}
	if !c.IsActive && !includeInactive {
		return nil, apperrors.ErrConsultantNotFound
	}
	return c, nil
}

func (s *consultantService) Create(db *gorm.DB, actor dto.Actor, req *dto.ConsultantRequest) (*models.Consultant, error) {
	c := &models.Consultant{IsActive: true}
	if err := s.apply(db, c, req); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.consultantRepo.Create(tx, c); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if err := s.audit.Record(tx, actor, ActionConsultantCreate, "consultant", c.ID, map[string]string{"name": c.Name}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return c, nil
}

func (s *consultantService) Update(db *gorm.DB, actor dto.Actor, id string, req *dto.ConsultantRequest) (*models.Consultant, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	c, err := s.consultantRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleConsultantError(err)
	}
	if err := s.apply(tx, c, req); err != nil {
		return nil, err
	}
	if err := s.consultantRepo.Update(tx, c); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if err := s.audit.Record(tx, actor, ActionConsultantUpdate, "consultant", c.ID, map[string]interface{}{
		"name":      c.Name,
		"is_active": c.IsActive,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return c, nil
}

func (s *consultantService) Delete(db *gorm.DB, actor dto.Actor, id string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.consultantRepo.Delete(tx, id); err != nil {
		return handleConsultantError(err)
	}
	if err := s.audit.Record(tx, actor, ActionConsultantDelete, "consultant", id, nil); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// apply copies the request onto c after checking the linked user.
func (s *consultantService) apply(db *gorm.DB, c *models.Consultant, req *dto.ConsultantRequest) error {
	if req.UserID != nil && *req.UserID != "" {
		if _, err := s.userRepo.FindByID(db, *req.UserID); err != nil {
			return handleUserError(err)
		}
		userID := *req.UserID
		c.UserID = &userID
	} else {
		c.UserID = nil
	}

	expertise := make([]string, 0, len(req.Expertise))
	for _, e := range req.Expertise {
		if e = strings.TrimSpace(e); e != "" {
			expertise = append(expertise, e)
		}
	}
	raw, err := json.Marshal(expertise)
	if err != nil {
		return apperrors.InternalError(err)
	}

	c.Name = strings.TrimSpace(req.Name)
	c.Title = req.Title
	c.Bio = req.Bio
	c.Expertise = datatypes.JSON(raw)
	c.AvatarURL = req.AvatarURL
	c.SortOrder = req.SortOrder
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return nil
}

func handleConsultantError(err error) error {
	if errors.Is(err, repositories.ErrConsultantNotFound) {
		return apperrors.ErrConsultantNotFound
	}
	return apperrors.DatabaseError(err)
}
