package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendee.link/configs/configslog"
	"attendee.link/models"
)

func MigrateEventsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating events table...")
	if err := db.AutoMigrate(&models.Event{}); err != nil {
		configslog.Log.Error("Failed to migrate events table", zap.Error(err))
		return err
	}
	return nil
}
