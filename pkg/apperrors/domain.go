package apperrors

import (
	"net/http"
)

// ErrNotFound wraps a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists wraps a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth & users ---

var ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Email already in use", http.StatusConflict)

var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)

// ErrInvalidToken covers session, reset and websocket tokens.
var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

var ErrUserInactive = New(CodeForbidden, "auth", "Your account has been deactivated", http.StatusForbidden)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

var ErrCannotModifySelf = New(CodeForbidden, "user", "Operation on self is not allowed", http.StatusForbidden)

var ErrInsufficientPermissions = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)

var ErrNegativeBalance = New(CodeInvalidOperation, "user", "Balance cannot become negative", http.StatusBadRequest)

// --- Balances ---

var ErrInsufficientTokens = New(CodeLimitExceeded, "billing", "Not enough AI tokens for this operation", http.StatusForbidden)

var ErrInsufficientCredits = New(CodeLimitExceeded, "billing", "Not enough credits for this operation", http.StatusForbidden)

// --- Subscriptions ---

var ErrPlanNotFound = New(CodeNotFound, "subscription", "Plan not found", http.StatusNotFound)

var ErrSubscriptionNotFound = New(CodeNotFound, "subscription", "Subscription not found", http.StatusNotFound)

var ErrPendingSubscriptionExists = New(CodeConflict, "subscription", "You already have a subscription awaiting payment", http.StatusConflict)

var ErrSubscriptionNotPending = New(CodeInvalidStatus, "subscription", "Only pending subscriptions can be changed this way", http.StatusBadRequest)

var ErrSubscriptionNotActive = New(CodeInvalidStatus, "subscription", "Subscription is not active", http.StatusBadRequest)

var ErrPremiumRequired = New(CodeForbidden, "subscription", "An active premium subscription is required", http.StatusForbidden)

// --- Consultants & chat ---

var ErrConsultantNotFound = New(CodeNotFound, "consultant", "Consultant not found", http.StatusNotFound)

var ErrConsultantInactive = New(CodeInvalidOperation, "consultant", "Consultant is not available", http.StatusBadRequest)

var ErrChatRoomNotFound = New(CodeNotFound, "chat", "Chat room not found", http.StatusNotFound)

var ErrChatAccessDenied = New(CodeForbidden, "chat", "Access to chat room denied", http.StatusForbidden)

var ErrChatRoomClosed = New(CodeInvalidStatus, "chat", "Chat room is closed", http.StatusBadRequest)

// --- CVs & AI ---

var ErrCVNotFound = New(CodeNotFound, "cv", "CV not found", http.StatusNotFound)

var ErrCVEmptyText = New(CodeValidationFailed, "cv", "No readable text found in the uploaded document", http.StatusBadRequest)

var ErrAIUnavailable = New(CodeExternalServiceError, "ai", "AI service is unavailable", http.StatusInternalServerError)

// --- Jobs ---

var ErrJobNotFound = New(CodeNotFound, "job", "Job listing not found", http.StatusNotFound)

// --- Media & uploads ---

var ErrMediaNotFound = New(CodeNotFound, "media", "Media not found", http.StatusNotFound)

var ErrMediaCategoryNotFound = New(CodeNotFound, "media", "Media category not found", http.StatusNotFound)

var ErrSlugExists = New(CodeAlreadyExists, "media", "Slug already in use", http.StatusConflict)

var ErrFileTooLarge = New(CodeLimitExceeded, "validation", "File size exceeds the allowed limit", http.StatusRequestEntityTooLarge)

var ErrInvalidFileType = New(CodeValidationFailed, "validation", "The provided file type is not allowed", http.StatusUnsupportedMediaType)

// --- Settings ---

var ErrSettingNotFound = New(CodeNotFound, "settings", "Setting not found", http.StatusNotFound)

var ErrSettingNotPublic = New(CodeForbidden, "settings", "Setting is not public", http.StatusForbidden)

var ErrPageNotFound = New(CodeNotFound, "settings", "Page not found", http.StatusNotFound)

// --- WhatsApp ---

var ErrWhatsAppNotConnected = New(CodeExternalServiceError, "whatsapp", "WhatsApp is not connected", http.StatusInternalServerError)

var ErrWhatsAppDisabled = New(CodeInvalidOperation, "whatsapp", "WhatsApp integration is disabled", http.StatusBadRequest)

var ErrInvalidPhone = New(CodeValidationFailed, "whatsapp", "Invalid phone number", http.StatusBadRequest)

var ErrNoQRCode = New(CodeNotFound, "whatsapp", "No pairing QR code available", http.StatusNotFound)
