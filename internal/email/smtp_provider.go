package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// SMTPProvider sends mail through gomail.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(cfg *SMTPConfig) *SMTPProvider {
	config := cfg.withDefaults()
	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	// Port 465 is implicit TLS; other ports negotiate STARTTLS when the server offers it.
	d.SSL = config.UseTLS && config.Port == 465
	d.TLSConfig = &tls.Config{ServerName: config.Host}

	return &SMTPProvider{config: config, dialer: d}
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}

	for _, a := range email.Attachments {
		content := a.Content
		m.Attach(a.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}

	// gomail has no dial deadline, so the send is bounded by Timeout here.
	sendCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-sendCtx.Done():
		return fmt.Errorf("smtp send: %w", sendCtx.Err())
	}
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	return nil
}
