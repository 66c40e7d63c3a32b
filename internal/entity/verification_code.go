package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationPurpose string

const (
	// PurposeRegistration covers both sign-up and the owner-upgrade
	// flow, which reuses the same 6-digit / 8-minute code shape.
	PurposeRegistration VerificationPurpose = "registration"
	PurposeEmailUpdate  VerificationPurpose = "email_update"
)

// VerificationCode is a short-lived numeric credential proving control
// of an email address. At most one non-expired row exists per
// (email, purpose); a new request supersedes any prior row for the key.
type VerificationCode struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Email   string              `gorm:"type:varchar(255);not null;index:idx_verification_key"`
	Purpose VerificationPurpose `gorm:"type:varchar(20);not null;index:idx_verification_key"`
	Code    string              `gorm:"type:varchar(10);not null"`

	Attempts int `gorm:"default:0;not null"`

	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

func (v *VerificationCode) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
