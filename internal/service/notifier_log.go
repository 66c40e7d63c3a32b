package service

import (
	"context"

	"roomi/internal/entity"

	"github.com/sirupsen/logrus"
)

// LogNotifier writes the code to the server log instead of sending
// mail. Development fallback only: the code stays server-side and is
// never exposed through the API.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) SendVerificationCode(ctx context.Context, email, code string, purpose entity.VerificationPurpose) error {
	logger := n.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithFields(logrus.Fields{
		"email":   email,
		"code":    code,
		"purpose": purpose,
	}).Info("verification code issued (log notifier)")
	return nil
}
