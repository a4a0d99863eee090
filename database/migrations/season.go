package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendee.link/configs/configslog"
	"attendee.link/models"
)

func MigrateSeasonsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating seasons & season_memberships tables...")
	if err := db.AutoMigrate(&models.Season{}, &models.SeasonMembership{}); err != nil {
		configslog.Log.Error("Failed to migrate seasons tables", zap.Error(err))
		return err
	}
	return nil
}
