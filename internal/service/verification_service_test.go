package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomi/internal/entity"
	"roomi/internal/repository"
)

func timeClose(got, want time.Time) bool {
	d := got.Sub(want)
	if d < 0 {
		d = -d
	}
	return d < time.Second
}

func newVerificationFixture(t *testing.T) (*VerificationService, *fakeNotifier, *fixedClock, repository.VerificationCodeRepository) {
	t.Helper()
	db := newServiceDBForTest(t)
	codes := repository.NewVerificationCodeRepository(db)
	notifier := &fakeNotifier{}
	clock := &fixedClock{now: time.Now().UTC()}
	return NewVerificationService(codes, notifier, clock), notifier, clock, codes
}

func TestRequestCodeGeneratesPurposeShapedCodes(t *testing.T) {
	svc, notifier, clock, codes := newVerificationFixture(t)
	ctx := context.Background()

	if err := svc.RequestCode(ctx, "A@X.com", entity.PurposeRegistration); err != nil {
		t.Fatalf("request registration code: %v", err)
	}
	sent := notifier.last(t)
	if sent.email != "a@x.com" {
		t.Fatalf("email not normalized: %q", sent.email)
	}
	if len(sent.code) != 6 {
		t.Fatalf("registration code length = %d, want 6", len(sent.code))
	}
	for _, r := range sent.code {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit in code %q", sent.code)
		}
	}

	record, err := codes.FindLive(ctx, "a@x.com", entity.PurposeRegistration, clock.Now())
	if err != nil {
		t.Fatalf("find live: %v", err)
	}
	if record == nil || record.Code != sent.code {
		t.Fatalf("stored code differs from sent code: %+v vs %q", record, sent.code)
	}
	if want := clock.Now().Add(8 * time.Minute); !timeClose(record.ExpiresAt, want) {
		t.Fatalf("registration ttl: want expiry %v, got %v", want, record.ExpiresAt)
	}

	if err := svc.RequestCode(ctx, "a@x.com", entity.PurposeEmailUpdate); err != nil {
		t.Fatalf("request email-update code: %v", err)
	}
	sent = notifier.last(t)
	if len(sent.code) != 4 {
		t.Fatalf("email-update code length = %d, want 4", len(sent.code))
	}
	record, err = codes.FindLive(ctx, "a@x.com", entity.PurposeEmailUpdate, clock.Now())
	if err != nil {
		t.Fatalf("find live: %v", err)
	}
	if want := clock.Now().Add(10 * time.Minute); !timeClose(record.ExpiresAt, want) {
		t.Fatalf("email-update ttl: want expiry %v, got %v", want, record.ExpiresAt)
	}
}

func TestRequestCodeUnknownPurpose(t *testing.T) {
	svc, _, _, _ := newVerificationFixture(t)
	if err := svc.RequestCode(context.Background(), "a@x.com", "password_reset"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVerifyCodeOneShotConsumption(t *testing.T) {
	svc, notifier, _, _ := newVerificationFixture(t)
	ctx := context.Background()

	if err := svc.RequestCode(ctx, "a@x.com", entity.PurposeRegistration); err != nil {
		t.Fatalf("request: %v", err)
	}
	code := notifier.last(t).code

	if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, code); err != nil {
		t.Fatalf("first verify must succeed: %v", err)
	}
	if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, code); !errors.Is(err, ErrCodeNotFoundOrExpired) {
		t.Fatalf("replayed code must fail with ErrCodeNotFoundOrExpired, got %v", err)
	}
}

func TestVerifyCodeNeverRequested(t *testing.T) {
	svc, _, _, _ := newVerificationFixture(t)
	err := svc.VerifyCode(context.Background(), "nobody@x.com", entity.PurposeRegistration, "123456")
	if !errors.Is(err, ErrCodeNotFoundOrExpired) {
		t.Fatalf("expected ErrCodeNotFoundOrExpired, got %v", err)
	}
}

func TestVerifyCodeMismatchIncrementsAttempts(t *testing.T) {
	svc, notifier, clock, codes := newVerificationFixture(t)
	ctx := context.Background()

	if err := svc.RequestCode(ctx, "a@x.com", entity.PurposeRegistration); err != nil {
		t.Fatalf("request: %v", err)
	}
	real := notifier.last(t).code
	wrong := "000000"
	if wrong == real {
		wrong = "000001"
	}

	if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, wrong); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}

	record, err := codes.FindLive(ctx, "a@x.com", entity.PurposeRegistration, clock.Now())
	if err != nil {
		t.Fatalf("find live: %v", err)
	}
	if record == nil {
		t.Fatal("code must stay live after a single mismatch")
	}
	if record.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", record.Attempts)
	}
}

func TestVerifyCodeSucceedsOnFifthAttempt(t *testing.T) {
	svc, notifier, _, _ := newVerificationFixture(t)
	ctx := context.Background()

	if err := svc.RequestCode(ctx, "a@x.com", entity.PurposeRegistration); err != nil {
		t.Fatalf("request: %v", err)
	}
	real := notifier.last(t).code
	wrong := "000000"
	if wrong == real {
		wrong = "000001"
	}

	for i := 0; i < 4; i++ {
		if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, wrong); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("wrong attempt %d: expected ErrInvalidCode, got %v", i+1, err)
		}
	}
	if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, real); err != nil {
		t.Fatalf("correct code after 4 misses must still succeed: %v", err)
	}
}

func TestVerifyCodeLockoutOnFifthMiss(t *testing.T) {
	svc, notifier, _, _ := newVerificationFixture(t)
	ctx := context.Background()

	if err := svc.RequestCode(ctx, "a@x.com", entity.PurposeRegistration); err != nil {
		t.Fatalf("request: %v", err)
	}
	real := notifier.last(t).code
	wrong := "000000"
	if wrong == real {
		wrong = "000001"
	}

	for i := 0; i < 4; i++ {
		if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, wrong); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("wrong attempt %d: expected ErrInvalidCode, got %v", i+1, err)
		}
	}
	if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, wrong); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("fifth miss: expected ErrTooManyAttempts, got %v", err)
	}

	// The record is gone; even the real code now reads as never requested.
	if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, real); !errors.Is(err, ErrCodeNotFoundOrExpired) {
		t.Fatalf("after lockout: expected ErrCodeNotFoundOrExpired, got %v", err)
	}
}

func TestVerifyCodeExpiry(t *testing.T) {
	svc, notifier, clock, _ := newVerificationFixture(t)
	ctx := context.Background()

	if err := svc.RequestCode(ctx, "a@x.com", entity.PurposeRegistration); err != nil {
		t.Fatalf("request: %v", err)
	}
	code := notifier.last(t).code

	clock.advance(8*time.Minute + time.Second)
	if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, code); !errors.Is(err, ErrCodeNotFoundOrExpired) {
		t.Fatalf("expired code: expected ErrCodeNotFoundOrExpired, got %v", err)
	}
}

func TestResendSupersedesPriorCode(t *testing.T) {
	svc, notifier, clock, codes := newVerificationFixture(t)
	ctx := context.Background()

	if err := svc.RequestCode(ctx, "a@x.com", entity.PurposeRegistration); err != nil {
		t.Fatalf("first request: %v", err)
	}
	first := notifier.last(t).code

	clock.advance(time.Minute)
	if err := svc.ResendCode(ctx, "a@x.com", entity.PurposeRegistration); err != nil {
		t.Fatalf("resend: %v", err)
	}
	second := notifier.last(t).code

	record, err := codes.FindLive(ctx, "a@x.com", entity.PurposeRegistration, clock.Now())
	if err != nil {
		t.Fatalf("find live: %v", err)
	}
	if record == nil || record.Code != second {
		t.Fatalf("live record should hold the resent code, got %+v", record)
	}
	if record.Attempts != 0 {
		t.Fatalf("resend must reset attempts, got %d", record.Attempts)
	}

	if first != second {
		if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, first); err == nil {
			t.Fatal("superseded code must no longer verify")
		}
	}
	if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, second); err != nil {
		t.Fatalf("resent code must verify: %v", err)
	}
}

func TestLockoutWritesAuditRecord(t *testing.T) {
	db := newServiceDBForTest(t)
	codes := repository.NewVerificationCodeRepository(db)
	audits := repository.NewAuditLogRepository(db)
	notifier := &fakeNotifier{}
	svc := NewVerificationService(codes, notifier, &fixedClock{now: time.Now().UTC()}).WithAuditLog(audits)
	ctx := context.Background()

	if err := svc.RequestCode(ctx, "a@x.com", entity.PurposeRegistration); err != nil {
		t.Fatalf("request: %v", err)
	}
	wrong := "000000"
	if wrong == notifier.last(t).code {
		wrong = "000001"
	}
	for i := 0; i < 5; i++ {
		_ = svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, wrong)
	}

	var logged []entity.AuditLog
	if err := db.Where("action = ?", entity.VerificationLocked).Find(&logged).Error; err != nil {
		t.Fatalf("query audit logs: %v", err)
	}
	if len(logged) != 1 {
		t.Fatalf("lockout audit records = %d, want 1", len(logged))
	}
}

func TestNotifierFailureKeepsCodeLive(t *testing.T) {
	svc, notifier, clock, codes := newVerificationFixture(t)
	ctx := context.Background()

	notifier.err = errors.New("smtp down")
	err := svc.RequestCode(ctx, "a@x.com", entity.PurposeRegistration)
	if !errors.Is(err, ErrNotifierUnavailable) {
		t.Fatalf("expected ErrNotifierUnavailable, got %v", err)
	}

	// The stored code survives the delivery failure and still verifies.
	record, err := codes.FindLive(ctx, "a@x.com", entity.PurposeRegistration, clock.Now())
	if err != nil {
		t.Fatalf("find live: %v", err)
	}
	if record == nil {
		t.Fatal("code row must survive a notifier failure")
	}
	if err := svc.VerifyCode(ctx, "a@x.com", entity.PurposeRegistration, record.Code); err != nil {
		t.Fatalf("code must still verify after notifier failure: %v", err)
	}
}
