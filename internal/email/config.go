package email

import "time"

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// withDefaults fills the submission port and a dial timeout when they are unset.
func (c SMTPConfig) withDefaults() *SMTPConfig {
	if c.Port == 0 {
		c.Port = 587
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return &c
}
