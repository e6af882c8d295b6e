package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProfessionStudent      = "Student"
	ProfessionProfessional = "Professional"
	ProfessionOther        = "Other"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Profession   string    `gorm:"size:50;not null" json:"profession"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Phone        string    `gorm:"size:30;not null" json:"phone"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
