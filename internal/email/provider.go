package email

import (
	"context"

	"kariyer_backend/internal/logger"
)

// Provider delivers a fully rendered message.
type Provider interface {
	Send(ctx context.Context, email *Email) error
	Validate() error
	Close() error
}

type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}

// LogProvider is used when no SMTP host is configured; it only logs.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "email (log only)", "to", email.To, "subject", email.Subject, "html_bytes", len(email.HTMLBody))
	return nil
}

func (p *LogProvider) Validate() error { return nil }

func (p *LogProvider) Close() error { return nil }
