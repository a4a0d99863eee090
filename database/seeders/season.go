package seeders

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"attendee.link/configs/configslog"
	"attendee.link/models"
)

// SeedCurrentSeason creates a season covering today when none exists, so
// identity resolution always has a season to attach attendees to.
func SeedCurrentSeason(db *gorm.DB) error {
	now := time.Now().UTC()

	var count int64
	err := db.Model(&models.Season{}).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// Season year runs September through August.
	startYear := now.Year()
	if now.Month() < time.September {
		startYear--
	}
	season := models.Season{
		Name:      fmt.Sprintf("%d-%d", startYear, startYear+1),
		StartDate: time.Date(startYear, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(startYear+1, time.August, 31, 23, 59, 59, 0, time.UTC),
	}
	if err := db.Create(&season).Error; err != nil {
		return err
	}
	configslog.SLog.Infof("season seeded: %s", season.Name)
	return nil
}
