// Package mail delivers plain-text email through an authenticated SMTP relay.
package mail

import (
	"context"
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/dtanque/shirt-orders/internal/platform/timeouts"
)

// Message is one plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Config holds SMTP relay settings.
type Config struct {
	Host     string `env:"SHIRT_ORDERS_SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SHIRT_ORDERS_SMTP_PORT" envDefault:"587"`
	Username string `env:"SHIRT_ORDERS_SMTP_USER"`
	Password string `env:"SHIRT_ORDERS_SMTP_PASS"`
}

// Client sends messages through one configured SMTP relay.
type Client struct {
	smtp *gomail.Client
}

// New creates an SMTP client for the given relay. Delivery is bounded by
// timeouts.MailSend so a stalled relay cannot pin a committed request.
func New(cfg Config) (*Client, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(timeouts.MailSend),
	}
	if strings.TrimSpace(cfg.Username) != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	smtp, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("build smtp client: %w", err)
	}
	return &Client{smtp: smtp}, nil
}

// Send delivers one message, best effort. The caller decides whether a
// failure is fatal; this client only reports it.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil || c.smtp == nil {
		return fmt.Errorf("mail client is not configured")
	}
	if err := validate(msg); err != nil {
		return err
	}

	email := gomail.NewMsg()
	if err := email.From(msg.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := email.To(msg.To); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	email.Subject(msg.Subject)
	email.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := c.smtp.DialAndSendWithContext(ctx, email); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func validate(msg Message) error {
	if strings.TrimSpace(msg.From) == "" {
		return fmt.Errorf("from address is required")
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("to address is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	return nil
}
