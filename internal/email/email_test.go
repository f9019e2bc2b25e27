package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureProvider struct {
	sent []*Email
}

func (c *captureProvider) Send(_ context.Context, e *Email) error {
	c.sent = append(c.sent, e)
	return nil
}
func (c *captureProvider) Validate() error { return nil }
func (c *captureProvider) Close() error    { return nil }

func TestTemplateManager_LoadsEmbeddedTemplates(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	names := tm.TemplateNames()
	for _, n := range []string{
		TemplateWelcome, TemplatePasswordReset, TemplateSubscriptionPending,
		TemplateSubscriptionApproved, TemplateSubscriptionRejected, TemplateSubscriptionExpired,
	} {
		assert.Contains(t, names, n)
	}
	assert.NotContains(t, names, layoutName)
}

func TestMailer_RendersAndEscapes(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)
	cp := &captureProvider{}
	m := NewMailer(cp, tm, "https://kariyerkamulog.com")

	err = m.SendTemplate(context.Background(), "ali@example.com", TemplateSubscriptionPending, TemplateData{
		"Name":      "<b>Ali</b>",
		"PlanName":  "Premium",
		"OrderCode": "KK-AB12CD34",
		"Amount":    499.0,
		"Currency":  "TRY",
		"Payment":   map[string]string{"BankName": "Ziraat", "AccountHolder": "KK Ltd", "IBAN": "TR00"},
	})
	require.NoError(t, err)
	require.Len(t, cp.sent, 1)

	msg := cp.sent[0]
	assert.Equal(t, []string{"ali@example.com"}, msg.To)
	assert.Equal(t, Subject(TemplateSubscriptionPending), msg.Subject)
	assert.Contains(t, msg.HTMLBody, "KK-AB12CD34")
	assert.Contains(t, msg.HTMLBody, "499.00 TRY")
	assert.Contains(t, msg.HTMLBody, "Ziraat")
	assert.Contains(t, msg.HTMLBody, "https://kariyerkamulog.com")
	assert.NotContains(t, msg.HTMLBody, "<b>Ali</b>")
}

func TestMailer_UnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)
	m := NewMailer(&captureProvider{}, tm, "")
	assert.Error(t, m.SendTemplate(context.Background(), "a@b.c", "nope", nil))
	assert.Error(t, m.SendTemplate(context.Background(), "", TemplateWelcome, nil))
}

func TestNewProviderFromConfig(t *testing.T) {
	assert.IsType(t, &LogProvider{}, NewProviderFromConfig(&SMTPConfig{}))
	p := NewProviderFromConfig(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "no-reply@example.com"})
	assert.IsType(t, &SMTPProvider{}, p)
	assert.NoError(t, p.Validate())
}

func TestSMTPConfigDefaults(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", FromEmail: "no-reply@example.com"})
	assert.Equal(t, 587, p.config.Port)
	assert.Equal(t, 30*time.Second, p.config.Timeout)

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 465, Timeout: time.Second})
	assert.Equal(t, 465, p.config.Port)
	assert.Equal(t, time.Second, p.config.Timeout)
}
