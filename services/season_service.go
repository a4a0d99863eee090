package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"attendee.link/models"
	"attendee.link/repositories"
)

// ErrNoActiveSeason means no season covers today and none exists to fall
// back to.
var ErrNoActiveSeason = errors.New("no active season found")

const seasonCacheTTL = 5 * time.Minute

// ISeasonService resolves the current organisational season.
type ISeasonService interface {
	GetCurrentSeason(ctx context.Context) (*models.Season, error)
}

// SeasonService caches the current season for a few minutes; season
// boundaries move rarely and the lookup sits on the registration hot path.
type SeasonService struct {
	repo repositories.ISeasonRepository

	mu        sync.Mutex
	cached    *models.Season
	fetchedAt time.Time
}

func NewSeasonService() ISeasonService {
	return &SeasonService{repo: repositories.NewSeasonRepository()}
}

// GetCurrentSeason returns the season whose window contains now, falling
// back to the most recently started one.
func (s *SeasonService) GetCurrentSeason(ctx context.Context) (*models.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.fetchedAt) < seasonCacheTTL {
		return s.cached, nil
	}

	season, err := s.repo.FindCurrent(ctx, time.Now().UTC())
	if errors.Is(err, repositories.ErrNotFound) {
		season, err = s.repo.FindLatest(ctx)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}

	s.cached = season
	s.fetchedAt = time.Now()
	return season, nil
}

var _ ISeasonService = (*SeasonService)(nil)
