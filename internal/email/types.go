package email

type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

type Email struct {
	To          []string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// TemplateData is the value passed to email templates.
type TemplateData map[string]interface{}

// Template names shipped with the service.
const (
	TemplateWelcome              = "welcome"
	TemplatePasswordReset        = "password_reset"
	TemplateSubscriptionPending  = "subscription_pending"
	TemplateSubscriptionApproved = "subscription_approved"
	TemplateSubscriptionRejected = "subscription_rejected"
	TemplateSubscriptionExpired  = "subscription_expired"
)

var subjects = map[string]string{
	TemplateWelcome:              "Kariyer Kamulog'a hoş geldiniz",
	TemplatePasswordReset:        "Şifre sıfırlama talebiniz",
	TemplateSubscriptionPending:  "Siparişiniz alındı",
	TemplateSubscriptionApproved: "Aboneliğiniz aktifleştirildi",
	TemplateSubscriptionRejected: "Sipariş talebiniz iptal edildi",
	TemplateSubscriptionExpired:  "Aboneliğinizin süresi doldu",
}

// Subject returns the subject line for a template name.
func Subject(templateName string) string {
	if s, ok := subjects[templateName]; ok {
		return s
	}
	return "Kariyer Kamulog"
}
