package email

import (
	"context"
	"fmt"
)

// Mailer renders a named template and hands the result to a Provider.
type Mailer struct {
	provider Provider
	renderer TemplateRenderer
	siteURL  string
}

func NewMailer(provider Provider, renderer TemplateRenderer, siteURL string) *Mailer {
	return &Mailer{provider: provider, renderer: renderer, siteURL: siteURL}
}

func (m *Mailer) SendTemplate(ctx context.Context, to, templateName string, data TemplateData) error {
	if to == "" {
		return fmt.Errorf("email: empty recipient")
	}
	if data == nil {
		data = TemplateData{}
	}
	if _, ok := data["SiteURL"]; !ok {
		data["SiteURL"] = m.siteURL
	}

	html, err := m.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return m.provider.Send(ctx, &Email{
		To:       []string{to},
		Subject:  Subject(templateName),
		HTMLBody: html,
	})
}

// NewProviderFromConfig picks SMTP when a host is configured and the log provider otherwise.
func NewProviderFromConfig(cfg *SMTPConfig) Provider {
	if cfg == nil || cfg.Host == "" {
		return NewLogProvider()
	}
	return NewSMTPProvider(cfg)
}
