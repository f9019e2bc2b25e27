package services

import (
	"context"

	"kariyer_backend/internal/dto"
	"kariyer_backend/pkg/apperrors"
)

// WhatsAppGateway is the part of the WhatsApp session the services need.
type WhatsAppGateway interface {
	Status() dto.WhatsAppStatus
	QRCode() string
	SendText(ctx context.Context, phone, text string) error
	Logout(ctx context.Context) error
}

// DisabledWhatsApp is used when the integration is switched off in configuration.
type DisabledWhatsApp struct{}

func (DisabledWhatsApp) Status() dto.WhatsAppStatus {
	return dto.WhatsAppStatus{Enabled: false}
}

func (DisabledWhatsApp) QRCode() string { return "" }

func (DisabledWhatsApp) SendText(context.Context, string, string) error {
	return apperrors.ErrWhatsAppDisabled
}

func (DisabledWhatsApp) Logout(context.Context) error {
	return apperrors.ErrWhatsAppDisabled
}
