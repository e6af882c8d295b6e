package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Story struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	User       User           `gorm:"constraint:OnUpdate:CASCADE" json:"-"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Parameters datatypes.JSON `json:"parameters"` // JSON null, never SQL NULL
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// BeforeCreate uses v7 ids so that stories created in the same instant still
// sort by creation order.
func (s *Story) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
