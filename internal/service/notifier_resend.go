package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roomi/internal/entity"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier delivers verification codes through the Resend API.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

func NewResendNotifier(apiKey, from string) *ResendNotifier {
	if strings.TrimSpace(apiKey) == "" {
		return &ResendNotifier{}
	}
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (n *ResendNotifier) SendVerificationCode(ctx context.Context, email, code string, purpose entity.VerificationPurpose) error {
	if n.client == nil {
		return errors.New("resend notifier not configured")
	}

	subject := "Verify Your Roomi.pk Account"
	intro := "Use this verification code to finish signing up:"
	expiry := "8 minutes"
	if purpose == entity.PurposeEmailUpdate {
		subject = "Confirm Your New Email Address"
		intro = "Use this verification code to confirm your email change:"
		expiry = "10 minutes"
	}

	html := fmt.Sprintf(`
		<h2>Roomi.pk</h2>
		<p>%s</p>
		<p style="font-size:32px;font-weight:bold;letter-spacing:8px;font-family:monospace;">%s</p>
		<p>This code expires in %s. If you did not request it, you can ignore this email.</p>
	`, intro, code, expiry)
	text := fmt.Sprintf("%s %s (expires in %s)", intro, code, expiry)

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{email},
		Subject: subject,
		Html:    html,
		Text:    text,
	}
	if _, err := n.client.Emails.Send(params); err != nil {
		return err
	}
	return nil
}
