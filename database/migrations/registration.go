package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendee.link/configs/configslog"
	"attendee.link/models"
)

func MigrateRegistrationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating event_registrations table...")
	if err := db.AutoMigrate(&models.EventRegistration{}); err != nil {
		configslog.Log.Error("Failed to migrate event_registrations table", zap.Error(err))
		return err
	}
	return nil
}
