package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendee.link/configs/configslog"
	"attendee.link/models"
)

func MigrateFormsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating custom_forms & custom_form_fields tables...")
	if err := db.AutoMigrate(&models.CustomForm{}, &models.CustomFormField{}); err != nil {
		configslog.Log.Error("Failed to migrate custom form tables", zap.Error(err))
		return err
	}
	return nil
}

func MigrateSubmissionsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating custom_form_submissions & custom_form_responses tables...")
	if err := db.AutoMigrate(&models.CustomFormSubmission{}, &models.CustomFormResponse{}); err != nil {
		configslog.Log.Error("Failed to migrate submission tables", zap.Error(err))
		return err
	}
	return nil
}
