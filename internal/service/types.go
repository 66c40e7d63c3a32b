package service

import (
	"context"
	"time"

	"roomi/internal/entity"

	"golang.org/x/crypto/bcrypt"
)

// Notifier delivers a verification code to an email address. Delivery
// outcome is the only contract; message content belongs to the
// implementation.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string, purpose entity.VerificationPurpose) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
