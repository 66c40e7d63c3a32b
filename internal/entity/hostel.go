package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Hostel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name         string `gorm:"type:varchar(100);not null"`
	City         string `gorm:"type:varchar(50);not null;index"`
	Address      string `gorm:"type:text"`
	Description  string `gorm:"type:text"`
	GenderPolicy string `gorm:"type:varchar(20)"`
	MonthlyRent  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (h *Hostel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
