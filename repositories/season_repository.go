package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"attendee.link/configs/configsdatabase"
	"attendee.link/models"
)

// ISeasonRepository provides current-season lookup.
type ISeasonRepository interface {
	FindCurrent(ctx context.Context, at time.Time) (*models.Season, error)
	FindLatest(ctx context.Context) (*models.Season, error)
}

// SeasonRepository is the GORM implementation of ISeasonRepository.
type SeasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository() ISeasonRepository {
	return NewSeasonRepositoryTx(configsdatabase.GetDB())
}

func NewSeasonRepositoryTx(tx *gorm.DB) ISeasonRepository {
	return &SeasonRepository{db: tx}
}

// FindCurrent returns the season whose date window contains at.
func (r *SeasonRepository) FindCurrent(ctx context.Context, at time.Time) (*models.Season, error) {
	var season models.Season
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", at, at).
		First(&season).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &season, nil
}

// FindLatest returns the most recently started season, the fallback when no
// window matches.
func (r *SeasonRepository) FindLatest(ctx context.Context) (*models.Season, error) {
	var season models.Season
	err := r.db.WithContext(ctx).Order("start_date DESC").First(&season).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &season, nil
}

var _ ISeasonRepository = (*SeasonRepository)(nil)
