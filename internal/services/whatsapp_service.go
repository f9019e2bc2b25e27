package services

import (
	"context"

	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

const qrImageSize = 320

// WhatsAppService is the admin surface over the WhatsApp session.
type WhatsAppService interface {
	Status() dto.WhatsAppStatus
	QRCode() (string, error)
	QRCodePNG() ([]byte, error)
	Logout(ctx context.Context, db *gorm.DB, actor dto.Actor) error
	Send(db *gorm.DB, actor dto.Actor, req *dto.WhatsAppSendRequest) error
	Logs(db *gorm.DB, query dto.WhatsAppLogQuery) (*dto.PaginatedResponse, error)
}

type whatsAppService struct {
	gateway  WhatsAppGateway
	notifier NotificationService
	logs     repositories.WhatsAppLogRepository
	audit    AuditService
}

func NewWhatsAppService(gateway WhatsAppGateway, notifier NotificationService, logs repositories.WhatsAppLogRepository, audit AuditService) WhatsAppService {
	if gateway == nil {
		gateway = DisabledWhatsApp{}
	}
	return &whatsAppService{gateway: gateway, notifier: notifier, logs: logs, audit: audit}
}

func (s *whatsAppService) Status() dto.WhatsAppStatus {
	return s.gateway.Status()
}

// QRCode returns the current pairing code. Paired or disabled sessions have none.
func (s *whatsAppService) QRCode() (string, error) {
	if !s.gateway.Status().Enabled {
		return "", apperrors.ErrWhatsAppDisabled
	}
	code := s.gateway.QRCode()
	if code == "" {
		return "", apperrors.ErrNoQRCode
	}
	return code, nil
}

func (s *whatsAppService) QRCodePNG() ([]byte, error) {
	code, err := s.QRCode()
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(code, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return png, nil
}

func (s *whatsAppService) Logout(ctx context.Context, db *gorm.DB, actor dto.Actor) error {
	if err := s.gateway.Logout(ctx); err != nil {
		return err
	}
	return s.audit.Record(db, actor, ActionWhatsAppLogout, "whatsapp", "", nil)
}

// Send delivers a manual message; the attempt is logged whether or not it succeeds.
func (s *whatsAppService) Send(db *gorm.DB, actor dto.Actor, req *dto.WhatsAppSendRequest) error {
	sendErr := s.notifier.SendWhatsApp(db, nil, req.Phone, WhatsAppKindManual, req.Message)

	details := map[string]interface{}{"phone": req.Phone, "sent": sendErr == nil}
	if err := s.audit.Record(db, actor, ActionWhatsAppSend, "whatsapp", req.Phone, details); err != nil {
		return err
	}
	return sendErr
}

func (s *whatsAppService) Logs(db *gorm.DB, query dto.WhatsAppLogQuery) (*dto.PaginatedResponse, error) {
	items, total, err := s.logs.List(db, repositories.WhatsAppLogFilter{
		Status:   models.WhatsAppLogStatus(query.Status),
		Phone:    query.Phone,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if items == nil {
		items = []models.WhatsAppLog{}
	}
	page, size := pageOrDefault(query.Page, query.PageSize)
	return dto.NewPaginatedResponse(items, total, page, size), nil
}
