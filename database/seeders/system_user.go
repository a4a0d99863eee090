package seeders

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"attendee.link/configs"
	"attendee.link/configs/configslog"
	"attendee.link/models"
)

// SeedSystemUser makes sure the back-office admin account exists. The
// password only applies on first creation; later changes go through the
// normal password flow.
func SeedSystemUser(db *gorm.DB) error {
	email := configs.GetEnv("SYSTEM_USER_EMAIL", "admin@attendee.link")

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := configs.GetEnv("SYSTEM_USER_PASSWORD", "changeme")
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	user := models.User{
		Name:          "System Admin",
		Email:         email,
		PersonalEmail: email,
		Password:      string(hashed),
		Phone:         "N/A",
		IsSystem:      true,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	configslog.SLog.Infof("system user seeded: %s", email)
	return nil
}
