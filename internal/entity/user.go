package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeSimple      UserType = "simple_user"
	UserTypeHostelOwner UserType = "hostel_owner"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	UserType     UserType  `gorm:"type:varchar(20);default:'simple_user';not null"`

	IsVerified bool `gorm:"default:false"`
	IsActive   bool `gorm:"default:true"`

	FullName string `gorm:"type:varchar(100)"`
	Age      *int
	Gender   string `gorm:"type:varchar(20)"`
	Phone    string `gorm:"type:varchar(20)"`

	// Hostel owners may list at most this many hostels.
	MaxHostels int `gorm:"default:2"`

	Preferences datatypes.JSON

	LoginCount  int `gorm:"default:0"`
	LastLoginAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Hostels []Hostel `gorm:"foreignKey:OwnerID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
