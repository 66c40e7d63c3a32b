package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditAction string

const (
	LoginSuccess        AuditAction = "login_success"
	LoginFailed         AuditAction = "login_failed"
	Registration        AuditAction = "registration"
	EmailChanged        AuditAction = "email_changed"
	OwnerUpgraded       AuditAction = "owner_upgraded"
	VerificationLocked  AuditAction = "verification_locked"
	AccountDeactivation AuditAction = "account_deactivated"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string     `gorm:"type:varchar(45)"`
	Action    AuditAction `gorm:"type:varchar(30);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
