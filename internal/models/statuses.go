package models

type UserRole string
type SubscriptionStatus string
type ChatRoomStatus string
type SenderType string
type JobSector string
type JobType string
type WhatsAppLogStatus string
type PaymentMethod string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleModerator UserRole = "MODERATOR"
	UserRoleUser      UserRole = "USER"

	SubscriptionStatusPending   SubscriptionStatus = "PENDING"
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"

	ChatRoomStatusActive ChatRoomStatus = "ACTIVE"
	ChatRoomStatusClosed ChatRoomStatus = "CLOSED"

	SenderTypeUser       SenderType = "USER"
	SenderTypeConsultant SenderType = "CONSULTANT"
	SenderTypeAdmin      SenderType = "ADMIN"

	JobSectorPublic  JobSector = "PUBLIC"
	JobSectorPrivate JobSector = "PRIVATE"

	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"

	WhatsAppLogSent   WhatsAppLogStatus = "SENT"
	WhatsAppLogFailed WhatsAppLogStatus = "FAILED"

	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (r UserRole) IsStaff() bool {
	return r == UserRoleAdmin || r == UserRoleModerator
}

// CanTransitionTo reports whether the subscription state machine allows s -> next.
func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	switch s {
	case SubscriptionStatusPending:
		return next == SubscriptionStatusActive || next == SubscriptionStatusCancelled
	case SubscriptionStatusActive:
		return next == SubscriptionStatusExpired || next == SubscriptionStatusCancelled
	default:
		return false
	}
}
