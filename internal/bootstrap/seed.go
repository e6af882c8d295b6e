package bootstrap

import (
	"log"

	"anoa.com/storyassistant/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoUsername = "demo"
	demoPassword = "demo1234"
)

// SeedDemoUser creates a login for local development. It is a no-op when the
// account already exists.
func SeedDemoUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("username = ?", demoUsername).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Demo user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demoUser := entity.User{
		FirstName:    "Demo",
		LastName:     "Writer",
		Email:        "demo@storyteller.local",
		Profession:   entity.ProfessionOther,
		Username:     demoUsername,
		Phone:        "000",
		PasswordHash: string(hashedPasswordBytes),
	}

	if err := db.Create(&demoUser).Error; err != nil {
		return err
	}

	log.Println("✅ Demo user seeded successfully")
	log.Printf("   Username: %s", demoUsername)
	log.Printf("   Password: %s", demoPassword)

	return nil
}
