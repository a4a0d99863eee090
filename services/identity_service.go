package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"attendee.link/configs/configslog"
	"attendee.link/models"
	"attendee.link/repositories"
	"attendee.link/utils"
)

// AttendeeEmailDomain is the domain of synthetic login handles assigned to
// generated attendee accounts.
const AttendeeEmailDomain = "attendee.com"

const generatedPasswordLength = 10

// IIdentityService resolves a registrant to a user account, creating a
// lightweight attendee account when nothing matches.
type IIdentityService interface {
	ResolveOrCreate(ctx context.Context, name, email string, authenticated *models.User) (*models.User, error)
}

// IdentityService implements IIdentityService.
type IdentityService struct {
	userRepo      repositories.IUserRepository
	seasonService ISeasonService
}

func NewIdentityService() IIdentityService {
	return &IdentityService{
		userRepo:      repositories.NewUserRepository(),
		seasonService: NewSeasonService(),
	}
}

// ResolveOrCreate applies the rules in order: an authenticated user wins
// outright; otherwise the provided email is tried as a login email; otherwise
// a new attendee account is generated.
//
// The lookup key is the *personal* email the registrant typed, while
// generated accounts log in under their synthetic handle. A returning
// generated attendee therefore misses the lookup and gets a second account.
// This matches the behaviour the back office depends on today; do not change
// the key without a product decision.
func (s *IdentityService) ResolveOrCreate(ctx context.Context, name, email string, authenticated *models.User) (*models.User, error) {
	if authenticated != nil {
		return authenticated, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	return s.createGeneratedUser(ctx, name, email)
}

// generateHandle derives a free synthetic login handle from the name,
// regenerating the suffix until no user holds it. The collision probability
// shrinks with every attempt, so the loop is probabilistically bounded.
func (s *IdentityService) generateHandle(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "attendee"
	}
	for {
		handle := fmt.Sprintf("%s-%s", base, utils.UniqueSuffix())
		taken, err := s.userRepo.ExistsByEmail(ctx, handle+"@"+AttendeeEmailDomain)
		if err != nil {
			return "", err
		}
		if !taken {
			return handle, nil
		}
	}
}

// createGeneratedUser creates the attendee account plus its current-season
// membership in one transaction.
func (s *IdentityService) createGeneratedUser(ctx context.Context, name, personalEmail string) (*models.User, error) {
	handle, err := s.generateHandle(ctx, name)
	if err != nil {
		return nil, err
	}

	password := utils.RandomPassword(generatedPasswordLength)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	season, err := s.seasonService.GetCurrentSeason(ctx)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:          name,
		Email:         handle + "@" + AttendeeEmailDomain,
		PersonalEmail: personalEmail,
		Password:      string(hashed),
		Phone:         "N/A",
		SeasonMemberships: []models.SeasonMembership{{
			SeasonID: season.ID,
			Role:     models.SeasonalRoleAttendee,
			JoinedAt: time.Now().UTC(),
		}},
	}

	// Create inserts the user and its membership association in a single
	// GORM-managed transaction.
	if err := s.userRepo.Create(ctx, &user); err != nil {
		configslog.Log.Error("generated user creation failed",
			zap.String("handle", handle), zap.Error(err))
		return nil, err
	}

	configslog.SLog.Infof("generated attendee account: id=%d email=%s", user.ID, user.Email)
	return &user, nil
}

var _ IIdentityService = (*IdentityService)(nil)
