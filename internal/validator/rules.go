package validator

import (
	"log"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"kariyer_backend/internal/models"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", oneOf(
		string(models.UserRoleAdmin),
		string(models.UserRoleModerator),
		string(models.UserRoleUser),
	))
	mustRegister("is-subscription-status", oneOf(
		string(models.SubscriptionStatusPending),
		string(models.SubscriptionStatusActive),
		string(models.SubscriptionStatusExpired),
		string(models.SubscriptionStatusCancelled),
	))
	mustRegister("is-chat-status", oneOf(
		string(models.ChatRoomStatusActive),
		string(models.ChatRoomStatusClosed),
	))
	mustRegister("is-job-sector", oneOf(
		string(models.JobSectorPublic),
		string(models.JobSectorPrivate),
	))
	mustRegister("is-job-type", oneOf(
		string(models.JobTypeFullTime),
		string(models.JobTypePartTime),
		string(models.JobTypeContract),
		string(models.JobTypeInternship),
	))
	mustRegister("phone-tr", validateTurkishPhone)
}

// oneOf accepts empty values; "required" handles presence.
func oneOf(allowed ...string) validator.Func {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, ok := set[value]
		return ok
	}
}

var nonDigits = regexp.MustCompile(`\D`)

func validateTurkishPhone(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	return NormalizeTurkishPhone(value) != ""
}

// NormalizeTurkishPhone converts 05xx..., 5xx..., +90 5xx... and 0090 5xx...
// into the 12-digit international form 905xxxxxxxxx, or "" if not a mobile number.
func NormalizeTurkishPhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	digits = strings.TrimPrefix(digits, "00")

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "905"):
		return digits
	case len(digits) == 11 && strings.HasPrefix(digits, "05"):
		return "9" + digits
	case len(digits) == 10 && strings.HasPrefix(digits, "5"):
		return "90" + digits
	default:
		return ""
	}
}
