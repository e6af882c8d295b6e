package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking has no uniqueness on (professional, slot); the same slot can be
// booked more than once.
type Booking struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID    `gorm:"type:uuid;index;not null" json:"user_id"`
	User           User         `gorm:"constraint:OnUpdate:CASCADE" json:"-"`
	ProfessionalID uint         `gorm:"index;not null" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE" json:"professional"`
	Slot           string       `gorm:"size:50;not null" json:"slot"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID, err = uuid.NewV7()
	}
	return
}
