package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/email"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
)

// WhatsApp message kinds stored on WhatsAppLog rows.
const (
	WhatsAppKindSubscriptionPending  = "subscription_pending"
	WhatsAppKindSubscriptionApproved = "subscription_approved"
	WhatsAppKindSubscriptionRejected = "subscription_rejected"
	WhatsAppKindSubscriptionExpired  = "subscription_expired"
	WhatsAppKindManual               = "manual"
)

const notificationTimeout = 30 * time.Second

// NotificationService fans user-facing events out to email and WhatsApp.
// Delivery failures are logged and never returned to the caller.
type NotificationService interface {
	SendEmail(to, templateName string, data email.TemplateData)
	SendWhatsApp(db *gorm.DB, userID *string, phone, kind, text string) error
	Notify(db *gorm.DB, user *models.User, templateName string, data email.TemplateData, kind, text string)
	Wait()
}

type notificationService struct {
	mailer  *email.Mailer
	wa      WhatsAppGateway
	waLogs  repositories.WhatsAppLogRepository
	pending sync.WaitGroup
}

func NewNotificationService(mailer *email.Mailer, wa WhatsAppGateway, waLogs repositories.WhatsAppLogRepository) NotificationService {
	if wa == nil {
		wa = DisabledWhatsApp{}
	}
	return &notificationService{mailer: mailer, wa: wa, waLogs: waLogs}
}

// SendEmail renders and sends in the background.
func (s *notificationService) SendEmail(to, templateName string, data email.TemplateData) {
	if s.mailer == nil || to == "" {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
		defer cancel()
		if err := s.mailer.SendTemplate(ctx, to, templateName, data); err != nil {
			logger.Error("Failed to send email", "template", templateName, "to", to, "error", err)
			return
		}
		logger.Info("Email sent", "template", templateName, "to", to)
	}()
}

// SendWhatsApp sends one message synchronously and records the attempt.
func (s *notificationService) SendWhatsApp(db *gorm.DB, userID *string, phone, kind, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()
	return s.sendWhatsApp(ctx, db, userID, phone, kind, text)
}

func (s *notificationService) sendWhatsApp(ctx context.Context, db *gorm.DB, userID *string, phone, kind, text string) error {
	sendErr := s.wa.SendText(ctx, phone, text)

	entry := &models.WhatsAppLog{
		UserID:  userID,
		Phone:   phone,
		Message: text,
		Kind:    kind,
		Status:  models.WhatsAppLogSent,
	}
	if sendErr != nil {
		entry.Status = models.WhatsAppLogFailed
		entry.Error = sendErr.Error()
		logger.Warn("WhatsApp send failed", "kind", kind, "phone", phone, "error", sendErr)
	}
	if err := s.waLogs.Create(db.WithContext(ctx), entry); err != nil {
		logger.Error("Failed to write WhatsApp log", "kind", kind, "error", err)
	}
	return sendErr
}

// Notify emails the user and, when a phone number is on file, messages them on WhatsApp.
// Both deliveries run in the background.
func (s *notificationService) Notify(db *gorm.DB, user *models.User, templateName string, data email.TemplateData, kind, text string) {
	if user == nil {
		return
	}
	if data == nil {
		data = email.TemplateData{}
	}
	if _, ok := data["Name"]; !ok {
		data["Name"] = user.Name
	}
	s.SendEmail(user.Email, templateName, data)

	if user.Phone == "" || text == "" {
		return
	}
	userID, phone := user.ID, user.Phone
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		// The request that triggered the event may be gone by now.
		ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
		defer cancel()
		_ = s.sendWhatsApp(ctx, db, &userID, phone, kind, text)
	}()
}

// Wait blocks until queued emails and WhatsApp messages are handed to their providers.
func (s *notificationService) Wait() {
	s.pending.Wait()
}
