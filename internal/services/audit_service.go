package services

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

// Admin log actions.
const (
	ActionUserUpdate          = "user.update"
	ActionUserBalance         = "user.balance"
	ActionUserDelete          = "user.delete"
	ActionSubscriptionApprove = "subscription.approve"
	ActionSubscriptionReject  = "subscription.reject"
	ActionSubscriptionCancel  = "subscription.cancel"
	ActionSubscriptionExtend  = "subscription.extend"
	ActionConsultantCreate    = "consultant.create"
	ActionConsultantUpdate    = "consultant.update"
	ActionConsultantDelete    = "consultant.delete"
	ActionJobCreate           = "job.create"
	ActionJobUpdate           = "job.update"
	ActionJobDelete           = "job.delete"
	ActionJobGenerate         = "job.generate"
	ActionMediaUpload         = "media.upload"
	ActionMediaUpdate         = "media.update"
	ActionMediaDelete         = "media.delete"
	ActionCategoryCreate      = "media_category.create"
	ActionCategoryUpdate      = "media_category.update"
	ActionCategoryDelete      = "media_category.delete"
	ActionSettingUpdate       = "setting.update"
	ActionSettingDelete       = "setting.delete"
	ActionWhatsAppSend        = "whatsapp.send"
	ActionWhatsAppLogout      = "whatsapp.logout"
)

type AuditService interface {
	Record(db *gorm.DB, actor dto.Actor, action, entityType, entityID string, details interface{}) error
	List(db *gorm.DB, query dto.AdminLogQuery) (*dto.PaginatedResponse, error)
}

type auditService struct {
	logs repositories.AdminLogRepository
}

func NewAuditService(logs repositories.AdminLogRepository) AuditService {
	return &auditService{logs: logs}
}

// Record writes one AdminLog row. Call it with the transaction of the change it describes.
func (s *auditService) Record(db *gorm.DB, actor dto.Actor, action, entityType, entityID string, details interface{}) error {
	entry := &models.AdminLog{
		AdminID:    actor.UserID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IP:         actor.IP,
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return apperrors.InternalError(err)
		}
		entry.Details = datatypes.JSON(raw)
	}
	if err := s.logs.Create(db, entry); err != nil {
		logger.Error("Failed to write admin log", "action", action, "entity_id", entityID, "error", err)
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *auditService) List(db *gorm.DB, query dto.AdminLogQuery) (*dto.PaginatedResponse, error) {
	items, total, err := s.logs.List(db, repositories.AdminLogFilter{
		AdminID:    query.AdminID,
		Action:     query.Action,
		EntityType: query.EntityType,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	page, size := pageOrDefault(query.Page, query.PageSize)
	return dto.NewPaginatedResponse(items, total, page, size), nil
}
