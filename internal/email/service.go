package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Sender dispatches transactional mail.
type Sender interface {
	SendPasswordResetCode(ctx context.Context, to, code string) error
}

// SMTPConfig holds mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type gomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender creates a gomail-backed sender.
func NewSender(cfg SMTPConfig) Sender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &gomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

func (s *gomailSender) SendPasswordResetCode(_ context.Context, to, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password Reset OTP - Health Hub")
	m.SetBody("text/html", resetBody(code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

func resetBody(code string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h1 style="color: #3869EB;">Health Hub</h1>
			<h2>Password Reset Request</h2>
			<p>We received a request to reset your password. Use the OTP below to proceed:</p>
			<div style="border: 2px dashed #3869EB; border-radius: 8px; padding: 20px; text-align: center; margin: 25px 0;">
				<h1 style="color: #3869EB; font-size: 36px; letter-spacing: 8px; margin: 0;">%s</h1>
			</div>
			<p>This OTP is valid for <strong>5 minutes</strong>. If you didn't request this, please ignore this email.</p>
			<p style="color: #999; font-size: 12px;">© %d Health Hub. All rights reserved.</p>
		</div>`, code, time.Now().Year())
}
