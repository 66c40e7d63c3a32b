package service

import (
	"context"
	"fmt"

	"roomi/internal/entity"

	"gopkg.in/gomail.v2"
)

// SMTPNotifier delivers verification codes over plain SMTP, for
// deployments without a Resend account.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (n *SMTPNotifier) SendVerificationCode(ctx context.Context, email, code string, purpose entity.VerificationPurpose) error {
	subject := "Verify Your Roomi.pk Account"
	if purpose == entity.PurposeEmailUpdate {
		subject = "Confirm Your New Email Address"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Roomi.pk</h2>
		<p>Your verification code is:</p>
		<p style="font-size:32px;font-weight:bold;letter-spacing:8px;font-family:monospace;">%s</p>
		<p>If you did not request this code, you can ignore this email.</p>
	`, code))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
