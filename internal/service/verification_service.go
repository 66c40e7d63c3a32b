package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roomi/internal/entity"
	"roomi/internal/repository"
	"roomi/internal/utils"

	"gorm.io/datatypes"
)

// maxVerifyAttempts is the lockout threshold: once the attempt counter
// reaches it, the code is deleted and the caller must request a new one.
const maxVerifyAttempts = 5

type codeParams struct {
	digits int
	ttl    time.Duration
}

var purposeParams = map[entity.VerificationPurpose]codeParams{
	entity.PurposeRegistration: {digits: 6, ttl: 8 * time.Minute},
	entity.PurposeEmailUpdate:  {digits: 4, ttl: 10 * time.Minute},
}

// VerificationService owns the verification code lifecycle shared by
// registration, email change and owner upgrade. Per (email, purpose)
// key a code moves NONE -> PENDING -> consumed, locked out, or expired;
// expiry is observed lazily at read time.
type VerificationService struct {
	codes    repository.VerificationCodeRepository
	notifier Notifier
	clock    Clock
	audits   repository.AuditLogRepository
}

func NewVerificationService(
	codes repository.VerificationCodeRepository,
	notifier Notifier,
	clock Clock,
) *VerificationService {
	return &VerificationService{
		codes:    codes,
		notifier: notifier,
		clock:    clock,
	}
}

// WithAuditLog enables audit records for lockout events.
func (s *VerificationService) WithAuditLog(audits repository.AuditLogRepository) *VerificationService {
	s.audits = audits
	return s
}

// RequestCode generates a fresh code for the key, superseding any
// existing one, and hands it to the notifier. A notifier failure is
// reported as ErrNotifierUnavailable but does not roll back the stored
// code; the caller may simply request again.
func (s *VerificationService) RequestCode(ctx context.Context, email string, purpose entity.VerificationPurpose) error {
	params, ok := purposeParams[purpose]
	if !ok {
		return ErrInvalidInput
	}
	email = utils.NormalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	code, err := utils.GenerateNumericCode(params.digits)
	if err != nil {
		return err
	}

	now := s.now()
	record := &entity.VerificationCode{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		Attempts:  0,
		CreatedAt: now,
		ExpiresAt: now.Add(params.ttl),
	}
	if err := s.codes.Replace(ctx, record); err != nil {
		return err
	}

	if err := s.notifier.SendVerificationCode(ctx, email, code, purpose); err != nil {
		return fmt.Errorf("%w: %v", ErrNotifierUnavailable, err)
	}
	return nil
}

// ResendCode issues a replacement code. There is no server-side
// cooldown; the HTTP layer rate-limits code requests per IP.
func (s *VerificationService) ResendCode(ctx context.Context, email string, purpose entity.VerificationPurpose) error {
	return s.RequestCode(ctx, email, purpose)
}

// VerifyCode checks a submitted code against the live record for the
// key. A match consumes the record: it is deleted before returning, so
// a code can never be replayed. A mismatch increments the attempt
// counter; reaching the lockout threshold deletes the record.
func (s *VerificationService) VerifyCode(ctx context.Context, email string, purpose entity.VerificationPurpose, submitted string) error {
	email = utils.NormalizeEmail(email)
	if email == "" || submitted == "" {
		return ErrInvalidInput
	}

	record, err := s.codes.FindLive(ctx, email, purpose, s.now())
	if err != nil {
		return err
	}
	if record == nil {
		return ErrCodeNotFoundOrExpired
	}

	if record.Code != submitted {
		attempts, err := s.codes.IncrementAttempts(ctx, email, purpose)
		if err != nil {
			return err
		}
		if attempts >= maxVerifyAttempts {
			if err := s.codes.Delete(ctx, email, purpose); err != nil {
				return err
			}
			s.auditLockout(ctx, email, purpose)
			return ErrTooManyAttempts
		}
		return ErrInvalidCode
	}

	return s.codes.Delete(ctx, email, purpose)
}

func (s *VerificationService) auditLockout(ctx context.Context, email string, purpose entity.VerificationPurpose) {
	if s.audits == nil {
		return
	}
	metadata, err := json.Marshal(map[string]string{
		"email":   email,
		"purpose": string(purpose),
	})
	if err != nil {
		return
	}
	_ = s.audits.Log(ctx, &entity.AuditLog{
		Action:   entity.VerificationLocked,
		Metadata: datatypes.JSON(metadata),
	})
}

func (s *VerificationService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
