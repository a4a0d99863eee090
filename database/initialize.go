package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendee.link/configs/configslog"
	"attendee.link/database/migrations"
	"attendee.link/database/seeders"
)

// Initialize runs migrations and/or seeders inside one transaction.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("neither migrate nor seed requested, nothing to do")
		return
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("running migrations...")
			if err := RunMigrationsInOrder(tx); err != nil {
				return err
			}
			configslog.SLog.Info("migrations complete")
		}
		if seed {
			configslog.SLog.Info("running seeders...")
			if err := RunSeeders(tx); err != nil {
				return err
			}
			configslog.SLog.Info("seeders complete")
		}
		return nil
	})
	if txErr != nil {
		configslog.Log.Fatal("database initialisation failed", zap.Error(txErr))
	}

	configslog.SLog.Info("database initialisation finished")
}

// RunMigrationsInOrder migrates tables respecting FK dependencies: users and
// seasons first, forms before events (events reference the registration
// form), registrations last.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"users", migrations.MigrateUsersTable},
		{"seasons", migrations.MigrateSeasonsTables},
		{"forms", migrations.MigrateFormsTables},
		{"events", migrations.MigrateEventsTable},
		{"submissions", migrations.MigrateSubmissionsTables},
		{"registrations", migrations.MigrateRegistrationsTable},
	}
	for _, step := range steps {
		if err := step.run(db); err != nil {
			configslog.Log.Error("migration step failed", zap.String("step", step.name), zap.Error(err))
			return err
		}
	}
	return nil
}

// RunSeeders installs the baseline rows the app cannot run without.
func RunSeeders(db *gorm.DB) error {
	if err := seeders.SeedSystemUser(db); err != nil {
		configslog.Log.Error("system user seeding failed", zap.Error(err))
		return err
	}
	if err := seeders.SeedCurrentSeason(db); err != nil {
		configslog.Log.Error("season seeding failed", zap.Error(err))
		return err
	}
	return nil
}
