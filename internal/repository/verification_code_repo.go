package repository

import (
	"context"
	"errors"
	"time"

	"roomi/internal/entity"

	"gorm.io/gorm"
)

// VerificationCodeRepository persists at most one live verification
// code per (email, purpose). Expiry is enforced lazily: FindLive purges
// stale rows on every read, there is no background sweeper.
type VerificationCodeRepository interface {
	// Replace deletes any existing rows for the key and inserts the
	// given record in one transaction, so two live codes never coexist
	// for the same (email, purpose).
	Replace(ctx context.Context, code *entity.VerificationCode) error
	// FindLive returns the non-expired record for the key, or nil. A
	// record is live through its expiry instant inclusive; rows with
	// expires_at strictly before now are deleted first.
	FindLive(ctx context.Context, email string, purpose entity.VerificationPurpose, now time.Time) (*entity.VerificationCode, error)
	// IncrementAttempts adds 1 to attempts via a SQL-side increment and
	// returns the new value. Returns 0 when no row exists for the key.
	IncrementAttempts(ctx context.Context, email string, purpose entity.VerificationPurpose) (int, error)
	// Delete removes the rows for the key. An absent key is not an error.
	Delete(ctx context.Context, email string, purpose entity.VerificationPurpose) error
}

type verificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Replace(ctx context.Context, code *entity.VerificationCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("email = ? AND purpose = ?", code.Email, code.Purpose).
			Delete(&entity.VerificationCode{}).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

func (r *verificationCodeRepository) FindLive(
	ctx context.Context,
	email string,
	purpose entity.VerificationPurpose,
	now time.Time,
) (*entity.VerificationCode, error) {

	if err := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&entity.VerificationCode{}).Error; err != nil {
		return nil, err
	}

	var code entity.VerificationCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND purpose = ? AND expires_at >= ?", email, purpose, now).
		First(&code).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *verificationCodeRepository) IncrementAttempts(
	ctx context.Context,
	email string,
	purpose entity.VerificationPurpose,
) (int, error) {

	var attempts int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.VerificationCode{}).
			Where("email = ? AND purpose = ?", email, purpose).
			UpdateColumn("attempts", gorm.Expr("attempts + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		var code entity.VerificationCode
		if err := tx.
			Where("email = ? AND purpose = ?", email, purpose).
			First(&code).Error; err != nil {
			return err
		}
		attempts = code.Attempts
		return nil
	})
	return attempts, err
}

func (r *verificationCodeRepository) Delete(
	ctx context.Context,
	email string,
	purpose entity.VerificationPurpose,
) error {
	return r.db.WithContext(ctx).
		Where("email = ? AND purpose = ?", email, purpose).
		Delete(&entity.VerificationCode{}).Error
}
