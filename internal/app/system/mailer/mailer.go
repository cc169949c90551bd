// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/pantry/email"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Email is one outgoing message. At least one of TextBody and HTMLBody
// should be set.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers email.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Enabled reports whether an SMTP host is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

// ErrNoRecipient is returned for an Email without a To address.
var ErrNoRecipient = errors.New("email has no recipient")

// New returns an SMTP mailer when cfg names a host, and a LogMailer otherwise.
func New(cfg Config, logger *zap.Logger) Mailer {
	if !cfg.Enabled() {
		logger.Warn("SMTP not configured; outgoing email will only be logged")
		return &LogMailer{Log: logger}
	}
	return &SMTPMailer{sender: email.NewSender(senderConfig(cfg))}
}

// senderConfig maps Config onto the waffle sender. Port 465 selects implicit
// TLS; any other port requires STARTTLS.
func senderConfig(cfg Config) email.Config {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	return email.Config{
		Host:        cfg.Host,
		Port:        port,
		Username:    cfg.Username,
		Password:    cfg.Password,
		FromAddress: cfg.From,
		FromName:    cfg.FromName,
		UseSSL:      port == 465,
		UseTLS:      port != 465,
	}
}

// sender is the part of *email.Sender that SMTPMailer uses.
type sender interface {
	Send(ctx context.Context, msg email.Message) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	sender sender
}

func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	if strings.TrimSpace(e.To) == "" {
		return ErrNoRecipient
	}
	return m.sender.Send(ctx, email.Message{
		To:       []string{e.To},
		Subject:  e.Subject,
		TextBody: e.TextBody,
		HTMLBody: e.HTMLBody,
	})
}

// LogMailer logs instead of sending. It is used when SMTP is not configured.
type LogMailer struct {
	Log *zap.Logger
}

func (m *LogMailer) Send(_ context.Context, e Email) error {
	if strings.TrimSpace(e.To) == "" {
		return ErrNoRecipient
	}
	m.Log.Info("email (not sent; SMTP disabled)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject))
	return nil
}

// SendAll delivers emails with at most limit sends in flight. It returns the
// first delivery error; once a send fails, sends not yet started are skipped.
func SendAll(ctx context.Context, m Mailer, emails []Email, limit int) error {
	if limit <= 0 {
		limit = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, e := range emails {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := m.Send(gctx, e); err != nil {
				return fmt.Errorf("send to %s: %w", e.To, err)
			}
			return nil
		})
	}
	return g.Wait()
}
